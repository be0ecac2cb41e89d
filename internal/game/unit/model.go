// Package unit defines the catalog data model: growth tiers, filter tags,
// stat bundles, and unit records.
package unit

import (
	"errors"
	"fmt"
)

// Tier classifies a unit's level growth curve.
type Tier string

// Growth tiers. No other value is a valid engine input.
const (
	TierBasic          Tier = "basic"
	TierEX             Tier = "ex"
	TierRareGacha      Tier = "rare_gacha"
	TierBahamut        Tier = "bahamut"
	TierRare           Tier = "rare"
	TierSuperRare      Tier = "super_rare"
	TierUltraSuperRare Tier = "ultra_super_rare"
	TierMadness        Tier = "madness"
)

var allTiers = []Tier{
	TierBasic, TierEX, TierRareGacha, TierBahamut,
	TierRare, TierSuperRare, TierUltraSuperRare, TierMadness,
}

// ErrUnknownTier is returned by ParseTier for strings outside the tier enum.
var ErrUnknownTier = errors.New("unknown growth tier")

// AllTiers returns every growth tier in declaration order.
//
// Postcondition: Returns a fresh slice of length 8.
func AllTiers() []Tier {
	out := make([]Tier, len(allTiers))
	copy(out, allTiers)
	return out
}

// Valid reports whether t is one of the eight growth tiers.
func (t Tier) Valid() bool {
	for _, v := range allTiers {
		if t == v {
			return true
		}
	}
	return false
}

// ParseTier converts s into a Tier.
//
// Postcondition: Returns a valid Tier, or ErrUnknownTier wrapped with s.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

// Rarity is the rarity facet shown in the catalog filter. It is unrelated to Tier.
type Rarity string

// Rarity filter tags.
const (
	RarityBasic      Rarity = "basic"
	RarityEX         Rarity = "ex"
	RarityRare       Rarity = "rare"
	RaritySuperRare  Rarity = "super-rare"
	RarityUltraRare  Rarity = "ultra-rare"
	RarityLegendRare Rarity = "legend-rare"
)

// Rarities lists the rarity tags in display order.
var Rarities = []Rarity{
	RarityBasic, RarityEX, RarityRare, RaritySuperRare, RarityUltraRare, RarityLegendRare,
}

// Valid reports whether r is a known rarity tag.
func (r Rarity) Valid() bool {
	for _, v := range Rarities {
		if r == v {
			return true
		}
	}
	return false
}

// Target is an enemy-trait facet a unit specializes against.
type Target string

// Target filter tags.
const (
	TargetRed      Target = "red"
	TargetFloating Target = "floating"
	TargetBlack    Target = "black"
	TargetMetal    Target = "metal"
	TargetAngel    Target = "angel"
	TargetAlien    Target = "alien"
	TargetZombie   Target = "zombie"
	TargetRelic    Target = "relic"
	TargetDemon    Target = "demon"
	TargetUntyped  Target = "untyped"
)

// Targets lists the target tags in display order.
var Targets = []Target{
	TargetRed, TargetFloating, TargetBlack, TargetMetal, TargetAngel,
	TargetAlien, TargetZombie, TargetRelic, TargetDemon, TargetUntyped,
}

// Valid reports whether t is a known target tag.
func (t Target) Valid() bool {
	for _, v := range Targets {
		if t == v {
			return true
		}
	}
	return false
}

// StatBundle holds one evolution stage's stats at level 1, plus-level 0.
// Only HP, Attack, and DPS scale with level.
type StatBundle struct {
	HP            int      `yaml:"hp" json:"hp"`
	Attack        int      `yaml:"attack" json:"attack"`
	DPS           int      `yaml:"dps" json:"dps"`
	AttackSpeed   float64  `yaml:"attack_speed" json:"attack_speed"`
	InitialDelay  float64  `yaml:"initial_delay" json:"initial_delay"`
	MovementSpeed int      `yaml:"movement_speed" json:"movement_speed"`
	Range         int      `yaml:"range" json:"range"`
	HitBack       int      `yaml:"hit_back" json:"hit_back"`
	Cost          int      `yaml:"cost" json:"cost"`
	Cooldown      *float64 `yaml:"cooldown" json:"cooldown,omitempty"` // nil = no data
	AfterDelay    *float64 `yaml:"after_delay" json:"after_delay,omitempty"`
	FinishTime    float64  `yaml:"finish_time" json:"finish_time"`
}

// Clone returns a deep copy of s; optional fields are not aliased.
func (s StatBundle) Clone() StatBundle {
	out := s
	if s.Cooldown != nil {
		v := *s.Cooldown
		out.Cooldown = &v
	}
	if s.AfterDelay != nil {
		v := *s.AfterDelay
		out.AfterDelay = &v
	}
	return out
}

// Seconds returns a pointer to v, for populating optional StatBundle fields.
func Seconds(v float64) *float64 {
	return &v
}

// Form is a later evolution stage of a unit.
type Form struct {
	Name  string     `yaml:"name" json:"name"`
	Image string     `yaml:"image" json:"image"`
	Stats StatBundle `yaml:"stats" json:"stats"`
}

// Record is one catalog entry. Records are immutable once loaded.
type Record struct {
	Name         string     `yaml:"name"`
	Code         string     `yaml:"code"`
	Image        string     `yaml:"image"`
	Tier         Tier       `yaml:"growth_tier"`
	Rarity       Rarity     `yaml:"rarity"`
	Targets      []Target   `yaml:"targets"`
	BaseStats    StatBundle `yaml:"base_stats"`
	Forms        []Form     `yaml:"forms"`
	ObtainedFrom string     `yaml:"obtained_from"`
}

// FormCount returns the number of evolution stages, counting the first.
//
// Postcondition: Returns >= 1.
func (r *Record) FormCount() int {
	return 1 + len(r.Forms)
}

// StatsForForm returns the base stats of evolution stage i (0 = first stage).
//
// Postcondition: Returns (stats, true) for 0 <= i < FormCount(), else (zero, false).
func (r *Record) StatsForForm(i int) (StatBundle, bool) {
	switch {
	case i == 0:
		return r.BaseStats, true
	case i > 0 && i <= len(r.Forms):
		return r.Forms[i-1].Stats, true
	default:
		return StatBundle{}, false
	}
}

// FormName returns the display name of stage i, falling back to the unit name.
func (r *Record) FormName(i int) string {
	if i > 0 && i <= len(r.Forms) && r.Forms[i-1].Name != "" {
		return r.Forms[i-1].Name
	}
	return r.Name
}

// HasTarget reports whether the record lists t among its targets.
func (r *Record) HasTarget(t Target) bool {
	for _, v := range r.Targets {
		if v == t {
			return true
		}
	}
	return false
}
