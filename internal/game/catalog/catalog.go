// Package catalog holds the ordered, immutable collection of unit records and
// the loaders and filters that operate on it.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// ErrInvalidRecord is returned by New when a record fails validation.
var ErrInvalidRecord = errors.New("invalid catalog record")

// ErrDuplicateCode is returned by New when two records share a code, ignoring case.
var ErrDuplicateCode = errors.New("duplicate unit code")

// Catalog is an ordered set of records indexed by code. It is read-only after
// construction and safe for concurrent use.
type Catalog struct {
	records []*unit.Record
	// byCode is keyed by upper-cased code.
	byCode map[string]*unit.Record
}

// New validates records and builds a Catalog preserving their order.
//
// Precondition: records may be empty.
// Postcondition: Returns a Catalog, or an error wrapping ErrInvalidRecord or
// ErrDuplicateCode that names the offending code.
func New(records []*unit.Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]*unit.Record, 0, len(records)),
		byCode:  make(map[string]*unit.Record, len(records)),
	}
	for i, r := range records {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		key := codeKey(r.Code)
		if prev, exists := c.byCode[key]; exists {
			return nil, fmt.Errorf("%w: %q conflicts with %q", ErrDuplicateCode, r.Code, prev.Code)
		}
		c.byCode[key] = r
		c.records = append(c.records, r)
	}
	return c, nil
}

func validate(r *unit.Record) error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	var errs []string
	if strings.TrimSpace(r.Code) == "" {
		errs = append(errs, "code must not be empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if !r.Tier.Valid() {
		errs = append(errs, fmt.Sprintf("growth_tier %q is not a growth tier", r.Tier))
	}
	if r.Rarity != "" && !r.Rarity.Valid() {
		errs = append(errs, fmt.Sprintf("rarity %q is not a rarity tag", r.Rarity))
	}
	for _, t := range r.Targets {
		if !t.Valid() {
			errs = append(errs, fmt.Sprintf("target %q is not a target tag", t))
		}
	}
	// An empty list entry in YAML decodes to a zero Form.
	for i, f := range r.Forms {
		if f.Stats.HP <= 0 {
			errs = append(errs, fmt.Sprintf("forms[%d] has no stats (hp %d)", i, f.Stats.HP))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidRecord, r.Code, strings.Join(errs, "; "))
	}
	return nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// All returns every record in catalog order.
//
// Postcondition: The returned slice is a copy; records themselves are shared
// and must not be modified.
func (c *Catalog) All() []*unit.Record {
	out := make([]*unit.Record, len(c.records))
	copy(out, c.records)
	return out
}

// At returns the record at position i.
//
// Postcondition: Returns (record, true) when 0 <= i < Len(), else (nil, false).
func (c *Catalog) At(i int) (*unit.Record, bool) {
	if i < 0 || i >= len(c.records) {
		return nil, false
	}
	return c.records[i], true
}

// ByCode looks up a record by its code. Lookup is case-insensitive.
//
// Postcondition: Returns (record, true) if found, else (nil, false).
func (c *Catalog) ByCode(code string) (*unit.Record, bool) {
	r, ok := c.byCode[codeKey(code)]
	return r, ok
}

func codeKey(code string) string {
	return strings.ToUpper(code)
}

// Filter returns the records matching f in catalog order.
func (c *Catalog) Filter(f Filter) []*unit.Record {
	out := make([]*unit.Record, 0, len(c.records))
	for _, r := range c.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
