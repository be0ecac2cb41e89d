// Package levelinput turns raw level text typed by a user into a level or
// plus-level inside the engine's domain. Invalid text never produces an error
// for the caller; it always resolves to an in-range integer.
package levelinput

import (
	"errors"
	"strconv"
	"strings"
)

// Bounds describes the legal range and empty-input default of one level field.
type Bounds struct {
	Min     int
	Max     int
	Default int
}

var (
	// LevelBounds governs the primary level.
	LevelBounds = Bounds{Min: 1, Max: 20, Default: 1}
	// PlusBounds governs the plus-level.
	PlusBounds = Bounds{Min: 0, Max: 90, Default: 0}
)

// errInvalidLevelInput marks text with no leading integer. It is consumed inside
// this package and never returned.
var errInvalidLevelInput = errors.New("invalid level input")

// Clamp limits v to [b.Min, b.Max].
func (b Bounds) Clamp(v int) int {
	return max(b.Min, min(b.Max, v))
}

// Parse sanitizes raw against b.
//
// Postcondition: Returns b.Default for "", prev for text starting with "00",
// otherwise the leading integer of raw clamped into [b.Min, b.Max], with
// unparseable text mapped to b.Min.
func (b Bounds) Parse(raw string, prev int) int {
	if raw == "" {
		return b.Default
	}
	if strings.HasPrefix(raw, "00") {
		return prev
	}
	v, err := leadingInt(raw)
	if err != nil || v < b.Min {
		return b.Min
	}
	return min(b.Max, v)
}

// ParseLevel sanitizes raw primary-level text. prev is the last accepted value.
func ParseLevel(raw string, prev int) int {
	return LevelBounds.Parse(raw, prev)
}

// ParsePlusLevel sanitizes raw plus-level text. prev is the last accepted value.
func ParsePlusLevel(raw string, prev int) int {
	return PlusBounds.Parse(raw, prev)
}

// Step applies an increment or decrement button press to current.
//
// Postcondition: Returns the same value as parsing the text of current+delta.
func Step(current, delta int, b Bounds) int {
	return b.Parse(strconv.Itoa(current+delta), current)
}

// leadingInt reads an optionally signed decimal integer from the start of s,
// after leading whitespace, ignoring anything that follows the digits.
// Magnitudes beyond int range saturate.
func leadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, errInvalidLevelInput
	}
	digits := s[:end]
	if neg {
		digits = "-" + digits
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// Atoi saturates to MinInt/MaxInt on overflow.
			return v, nil
		}
		return 0, errInvalidLevelInput
	}
	return v, nil
}
