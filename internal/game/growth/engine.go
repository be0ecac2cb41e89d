package growth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// ComputeEffectiveStats returns base scaled to level+plusLevel on tier's curve.
// HP, Attack, and DPS are multiplied and rounded half away from zero; every other
// field is copied from base unchanged.
//
// Precondition: level and plusLevel are already clamped by the caller; the engine
// only sums them.
// Postcondition: Returns a new StatBundle sharing no pointers with base, or
// ErrInvalidGrowthTier. base is never modified.
func ComputeEffectiveStats(base unit.StatBundle, level, plusLevel int, tier unit.Tier) (unit.StatBundle, error) {
	m, err := Multiplier(level+plusLevel, tier)
	if err != nil {
		return unit.StatBundle{}, err
	}
	out := base.Clone()
	out.HP = scale(base.HP, m)
	out.Attack = scale(base.Attack, m)
	out.DPS = scale(base.DPS, m)
	return out, nil
}

func scale(v int, m float64) int {
	return int(math.Round(float64(v) * m))
}

// MaxTableRows caps the number of rows Table builds in one call.
const MaxTableRows = 1000

// ErrTableRange is returned by Table when [from, to] spans more than MaxTableRows levels.
var ErrTableRange = errors.New("growth table range too wide")

// Row is one line of a growth table.
type Row struct {
	TotalLevel int
	Multiplier float64
	Stats      unit.StatBundle
}

// Table returns effective stats for every total level in [from, to].
//
// Precondition: from <= to.
// Postcondition: Returns to-from+1 rows in ascending level order, an empty slice
// when from > to, ErrTableRange when the range exceeds MaxTableRows, or
// ErrInvalidGrowthTier.
func Table(tier unit.Tier, base unit.StatBundle, from, to int) ([]Row, error) {
	phases, err := Curve(tier)
	if err != nil {
		return nil, err
	}
	if from > to {
		return []Row{}, nil
	}
	// to-from wraps negative when the true span exceeds MaxInt.
	if span := to - from; span < 0 || span >= MaxTableRows {
		return nil, fmt.Errorf("%w: %d..%d", ErrTableRange, from, to)
	}
	rows := make([]Row, 0, to-from+1)
	for lv := from; lv <= to; lv++ {
		m := evaluate(phases, lv)
		s := base.Clone()
		s.HP = scale(base.HP, m)
		s.Attack = scale(base.Attack, m)
		s.DPS = scale(base.DPS, m)
		rows = append(rows, Row{TotalLevel: lv, Multiplier: m, Stats: s})
	}
	return rows, nil
}
