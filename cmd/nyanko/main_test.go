package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/nyanko/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	dir := filepath.Join(testutil.RepoRoot(t), "content", "cats")
	root.SetArgs(append([]string{"--catalog", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CAT_001")
	assert.Contains(t, out, "CAT_644")
	assert.NotContains(t, out, "\033[", "colors are stripped by default")
}

func TestList_Filters(t *testing.T) {
	out, err := execute(t, "list", "--search", "cat_644")
	require.NoError(t, err)
	assert.Contains(t, out, "CAT_644")
	assert.NotContains(t, out, "CAT_001")

	out, err = execute(t, "list", "--rarity", "legend-rare")
	require.NoError(t, err)
	assert.Contains(t, out, "No units match")

	_, err = execute(t, "list", "--rarity", "mythic")
	assert.ErrorContains(t, err, "unknown rarity")

	_, err = execute(t, "list", "--target", "red,purple")
	assert.ErrorContains(t, err, "unknown target")
}

func TestList_Color(t *testing.T) {
	out, err := execute(t, "--color", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "\033[")
}

func TestStats(t *testing.T) {
	out, err := execute(t, "stats", "CAT_644", "--level", "20", "--plus", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Lv 20 + 90", "plus level is clamped")
	assert.Contains(t, out, "(total 110)")
}

func TestStats_Errors(t *testing.T) {
	_, err := execute(t, "stats", "CAT_999")
	assert.ErrorContains(t, err, "no unit")

	_, err = execute(t, "stats", "CAT_001", "--form", "9")
	assert.ErrorContains(t, err, "forms")

	_, err = execute(t, "stats")
	assert.Error(t, err)
}

func TestCurve_Tier(t *testing.T) {
	out, err := execute(t, "curve", "rare_gacha", "--from", "40", "--to", "41")
	require.NoError(t, err)
	assert.Contains(t, out, "rare_gacha phases:")
	assert.Contains(t, out, "+1.80/level")
	assert.Contains(t, out, "22.80")
	assert.Contains(t, out, "24.60")
	assert.Equal(t, 1, strings.Count(out, "     40  "))
	assert.Equal(t, 1, strings.Count(out, "     41  "))
	assert.NotContains(t, out, "     42  ")
}

func TestCurve_PhaseStartsFollowPreviousEnd(t *testing.T) {
	out, err := execute(t, "curve", "rare_gacha", "--from", "1", "--to", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "  1..20 ")
	assert.Contains(t, out, " 21..30 ")
	assert.Contains(t, out, " 31..40 ")
	assert.Contains(t, out, " 41..∞")
	assert.NotContains(t, out, "20..30")
	assert.NotContains(t, out, "40..∞")
}

func TestCurve_RangeIsClamped(t *testing.T) {
	out, err := execute(t, "curve", "--unit", "CAT_001", "--from", "0", "--to", "9223372036854775807")
	require.NoError(t, err)
	assert.Contains(t, out, "12.80")

	out, err = execute(t, "curve", "basic", "--from", "-5", "--to", "9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "      1      1.00"))
	assert.Equal(t, 1, strings.Count(out, "    110  "))
	assert.NotContains(t, out, "    111  ")
}

func TestCurve_Unit(t *testing.T) {
	out, err := execute(t, "curve", "--unit", "CAT_001", "--from", "60", "--to", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "12.80")
	assert.Contains(t, out, "3200")
}

func TestCurve_Errors(t *testing.T) {
	_, err := execute(t, "curve")
	assert.ErrorContains(t, err, "a tier is required")

	_, err = execute(t, "curve", "legendary")
	assert.Error(t, err)
}
