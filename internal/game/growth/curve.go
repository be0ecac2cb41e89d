// Package growth computes a unit's effective stats at a given level and
// plus-level from its base stats and growth tier.
package growth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// ErrInvalidGrowthTier is returned when a tier is outside the growth tier enum.
var ErrInvalidGrowthTier = errors.New("invalid growth tier")

// Phase is one linear segment of a growth curve. The multiplier grows by Slope
// per level for every total level after the previous phase's Through, up to and
// including this phase's Through.
type Phase struct {
	Through int
	Slope   float64
}

// unbounded marks the final phase of a curve.
const unbounded = math.MaxInt

// curves maps each tier to its ordered phases. Breakpoints and slopes are the
// game's leveling tables and must match exactly.
var curves = map[unit.Tier][]Phase{
	unit.TierBasic:          {{60, 0.20}, {unbounded, 0.10}},
	unit.TierEX:             {{60, 0.20}, {unbounded, 0.10}},
	unit.TierRareGacha:      {{20, 0.20}, {30, 0.60}, {40, 1.20}, {unbounded, 1.80}},
	unit.TierBahamut:        {{30, 0.20}, {unbounded, 0.10}},
	unit.TierRare:           {{70, 0.20}, {90, 0.10}, {unbounded, 0.05}},
	unit.TierSuperRare:      {{60, 0.20}, {80, 0.10}, {unbounded, 0.05}},
	unit.TierUltraSuperRare: {{60, 0.20}, {80, 0.10}, {unbounded, 0.05}},
	unit.TierMadness:        {{20, 0.20}, {unbounded, 0.10}},
}

// Curve returns the phases for tier.
//
// Postcondition: Returns a fresh, non-empty slice whose last Through is unbounded,
// or ErrInvalidGrowthTier.
func Curve(tier unit.Tier) ([]Phase, error) {
	phases, ok := curves[tier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGrowthTier, tier)
	}
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out, nil
}

// Multiplier returns the stat multiplier at totalLevel for tier.
//
// Precondition: none on totalLevel; values below 1 yield 1.0.
// Postcondition: Returns exactly 1.0 at totalLevel 1, non-decreasing in totalLevel,
// or ErrInvalidGrowthTier.
func Multiplier(totalLevel int, tier unit.Tier) (float64, error) {
	phases, ok := curves[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrowthTier, tier)
	}
	return evaluate(phases, totalLevel), nil
}

func evaluate(phases []Phase, totalLevel int) float64 {
	m := 1.0
	prev := 1
	for _, p := range phases {
		if totalLevel <= prev {
			break
		}
		spent := min(totalLevel, p.Through) - prev
		if spent > 0 {
			m += p.Slope * float64(spent)
		}
		prev = p.Through
	}
	return m
}
