// Package session holds per-connection catalog browser state.
package session

import (
	"errors"

	"github.com/cory-johannsen/nyanko/internal/game/catalog"
	"github.com/cory-johannsen/nyanko/internal/game/growth"
	"github.com/cory-johannsen/nyanko/internal/game/levelinput"
	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// ErrNoSelection is returned by stat panel operations when no unit is open.
var ErrNoSelection = errors.New("no unit selected")

// ErrFormOutOfRange is returned when a form index does not exist on the open unit.
var ErrFormOutOfRange = errors.New("form out of range")

// View is the browser state of one connection: the grid filter and the stat
// panel. A View is owned by a single session goroutine and is not safe for
// concurrent use.
type View struct {
	// Filter narrows the grid.
	Filter catalog.Filter

	selected *unit.Record
	level    int
	plus     int
	form     int
}

// NewView returns a View with no unit selected and default levels.
func NewView() *View {
	return &View{
		level: levelinput.LevelBounds.Default,
		plus:  levelinput.PlusBounds.Default,
	}
}

// Selected returns the open unit, or nil.
func (v *View) Selected() *unit.Record { return v.selected }

// Level returns the panel's level.
func (v *View) Level() int { return v.level }

// PlusLevel returns the panel's plus level.
func (v *View) PlusLevel() int { return v.plus }

// Form returns the zero-based evolution form shown in the panel.
func (v *View) Form() int { return v.form }

// TotalLevel returns Level + PlusLevel.
func (v *View) TotalLevel() int { return v.level + v.plus }

// Select opens the stat panel for rec.
//
// Precondition: rec must be non-nil.
// Postcondition: Level is 1, PlusLevel is 0, and Form is 0, whatever was open before.
func (v *View) Select(rec *unit.Record) {
	if rec == nil {
		panic("session: Select called with nil record")
	}
	v.selected = rec
	v.level = levelinput.LevelBounds.Default
	v.plus = levelinput.PlusBounds.Default
	v.form = 0
}

// Close dismisses the stat panel.
func (v *View) Close() {
	v.selected = nil
	v.level = levelinput.LevelBounds.Default
	v.plus = levelinput.PlusBounds.Default
	v.form = 0
}

// SetLevel applies a raw level edit.
//
// Postcondition: Returns the new level in [1, 20], or ErrNoSelection.
func (v *View) SetLevel(raw string) (int, error) {
	if v.selected == nil {
		return v.level, ErrNoSelection
	}
	v.level = levelinput.ParseLevel(raw, v.level)
	return v.level, nil
}

// SetPlusLevel applies a raw plus level edit.
//
// Postcondition: Returns the new plus level in [0, 90], or ErrNoSelection.
func (v *View) SetPlusLevel(raw string) (int, error) {
	if v.selected == nil {
		return v.plus, ErrNoSelection
	}
	v.plus = levelinput.ParsePlusLevel(raw, v.plus)
	return v.plus, nil
}

// StepLevel moves the level by delta, clamped to its bounds.
func (v *View) StepLevel(delta int) (int, error) {
	if v.selected == nil {
		return v.level, ErrNoSelection
	}
	v.level = levelinput.Step(v.level, delta, levelinput.LevelBounds)
	return v.level, nil
}

// StepPlusLevel moves the plus level by delta, clamped to its bounds.
func (v *View) StepPlusLevel(delta int) (int, error) {
	if v.selected == nil {
		return v.plus, ErrNoSelection
	}
	v.plus = levelinput.Step(v.plus, delta, levelinput.PlusBounds)
	return v.plus, nil
}

// SetForm switches to the zero-based evolution form i. Levels are kept.
//
// Postcondition: Returns ErrNoSelection or ErrFormOutOfRange without changing state.
func (v *View) SetForm(i int) error {
	if v.selected == nil {
		return ErrNoSelection
	}
	if i < 0 || i >= v.selected.FormCount() {
		return ErrFormOutOfRange
	}
	v.form = i
	return nil
}

// CycleForm moves delta forms forward, wrapping around the unit's forms.
func (v *View) CycleForm(delta int) (int, error) {
	if v.selected == nil {
		return v.form, ErrNoSelection
	}
	n := v.selected.FormCount()
	v.form = ((v.form+delta)%n + n) % n
	return v.form, nil
}

// BaseStats returns the level-1 stats of the form shown in the panel.
func (v *View) BaseStats() (unit.StatBundle, error) {
	if v.selected == nil {
		return unit.StatBundle{}, ErrNoSelection
	}
	stats, _ := v.selected.StatsForForm(v.form)
	return stats, nil
}

// Effective recomputes the panel's stats through the growth engine.
//
// Postcondition: Returns the effective stats of the open form at the current
// levels, or ErrNoSelection, or an error wrapping growth.ErrInvalidGrowthTier.
func (v *View) Effective() (unit.StatBundle, error) {
	base, err := v.BaseStats()
	if err != nil {
		return unit.StatBundle{}, err
	}
	return growth.ComputeEffectiveStats(base, v.level, v.plus, v.selected.Tier)
}
