package catalog

import (
	"strings"

	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// Filter narrows the catalog grid. The zero value matches everything.
type Filter struct {
	// Rarity, when set, must equal the record's rarity.
	Rarity unit.Rarity
	// Targets, when non-empty, must share at least one tag with the record.
	Targets []unit.Target
	// Query is a case-insensitive substring of the record's name or code.
	Query string
}

// ToggleRarity selects r, or clears the selection if r is already selected.
func (f *Filter) ToggleRarity(r unit.Rarity) {
	if f.Rarity == r {
		f.Rarity = ""
		return
	}
	f.Rarity = r
}

// ToggleTarget adds t to the selection, or removes it if present.
// Selection order is preserved.
func (f *Filter) ToggleTarget(t unit.Target) {
	for i, v := range f.Targets {
		if v == t {
			f.Targets = append(f.Targets[:i:i], f.Targets[i+1:]...)
			return
		}
	}
	f.Targets = append(f.Targets, t)
}

// Reset clears every facet and the query.
func (f *Filter) Reset() {
	*f = Filter{}
}

// Active reports whether any facet or query is set.
func (f Filter) Active() bool {
	return f.Rarity != "" || len(f.Targets) > 0 || strings.TrimSpace(f.Query) != ""
}

// Matches reports whether r passes every set facet.
func (f Filter) Matches(r *unit.Record) bool {
	if f.Rarity != "" && r.Rarity != f.Rarity {
		return false
	}
	if len(f.Targets) > 0 {
		hit := false
		for _, t := range f.Targets {
			if r.HasTarget(t) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Code), q)
}
