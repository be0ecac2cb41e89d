package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/nyanko/internal/game/catalog"
	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

func filterCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]*unit.Record{
		{Name: "Cat", Code: "CAT_001", Tier: unit.TierBasic, Rarity: unit.RarityBasic},
		{Name: "Tank Cat", Code: "CAT_002", Tier: unit.TierBasic, Rarity: unit.RarityBasic},
		{Name: "Bahamut Cat", Code: "CAT_026", Tier: unit.TierBahamut, Rarity: unit.RarityLegendRare,
			Targets: []unit.Target{unit.TargetAngel}},
		{Name: "Ninja Frog Cat", Code: "CAT_100", Tier: unit.TierRare, Rarity: unit.RarityRare,
			Targets: []unit.Target{unit.TargetRed, unit.TargetFloating}},
	})
	require.NoError(t, err)
	return c
}

func codes(recs []*unit.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Code
	}
	return out
}

func TestFilter_ZeroMatchesAll(t *testing.T) {
	c := filterCatalog(t)
	var f catalog.Filter
	assert.False(t, f.Active())
	assert.Len(t, c.Filter(f), 4)
}

func TestFilter_Rarity(t *testing.T) {
	c := filterCatalog(t)
	f := catalog.Filter{Rarity: unit.RarityBasic}
	assert.Equal(t, []string{"CAT_001", "CAT_002"}, codes(c.Filter(f)))
}

func TestFilter_ToggleRarityIsSingleSelect(t *testing.T) {
	var f catalog.Filter
	f.ToggleRarity(unit.RarityRare)
	f.ToggleRarity(unit.RarityEX)
	assert.Equal(t, unit.RarityEX, f.Rarity)
	f.ToggleRarity(unit.RarityEX)
	assert.Equal(t, unit.Rarity(""), f.Rarity)
}

func TestFilter_TargetsMatchAny(t *testing.T) {
	c := filterCatalog(t)
	var f catalog.Filter
	f.ToggleTarget(unit.TargetAngel)
	f.ToggleTarget(unit.TargetFloating)
	assert.Equal(t, []string{"CAT_026", "CAT_100"}, codes(c.Filter(f)))

	f.ToggleTarget(unit.TargetAngel)
	assert.Equal(t, []unit.Target{unit.TargetFloating}, f.Targets)
	assert.Equal(t, []string{"CAT_100"}, codes(c.Filter(f)))
}

func TestFilter_QueryNameOrCode(t *testing.T) {
	c := filterCatalog(t)
	assert.Equal(t, []string{"CAT_002"}, codes(c.Filter(catalog.Filter{Query: "tank"})))
	assert.Equal(t, []string{"CAT_100"}, codes(c.Filter(catalog.Filter{Query: " cat_1 "})))
	assert.Empty(t, c.Filter(catalog.Filter{Query: "dragon"}))
}

func TestFilter_Combined(t *testing.T) {
	c := filterCatalog(t)
	f := catalog.Filter{Rarity: unit.RarityBasic, Query: "cat_001"}
	assert.Equal(t, []string{"CAT_001"}, codes(c.Filter(f)))
	assert.True(t, f.Active())
	f.Reset()
	assert.False(t, f.Active())
}
