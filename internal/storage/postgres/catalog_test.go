package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/nyanko/internal/game/catalog"
	"github.com/cory-johannsen/nyanko/internal/game/unit"
	"github.com/cory-johannsen/nyanko/internal/storage/postgres"
	"github.com/cory-johannsen/nyanko/internal/testutil"
)

func sampleRecords() []*unit.Record {
	return []*unit.Record{
		{
			Name: "Superfeline", Code: "CAT_644", Image: "basic/644_1.png",
			Tier: unit.TierBasic, Rarity: unit.RarityBasic, ObtainedFrom: "starter",
			BaseStats: unit.StatBundle{
				HP: 250, Attack: 400, DPS: 400, AttackSpeed: 3.33, InitialDelay: 0.7,
				MovementSpeed: 10, Range: 140, HitBack: 1, Cost: 75,
				Cooldown: unit.Seconds(2.5), AfterDelay: unit.Seconds(0.5), FinishTime: 0.33,
			},
		},
		{
			Name: "Bahamut Cat", Code: "CAT_026", Tier: unit.TierBahamut,
			Rarity: unit.RarityLegendRare, Targets: []unit.Target{unit.TargetAngel, unit.TargetRed},
			BaseStats: unit.StatBundle{HP: 1000, Attack: 1200, DPS: 1200},
			Forms: []unit.Form{
				{Name: "Awakened Bahamut Cat", Stats: unit.StatBundle{HP: 2000, Attack: 5000, DPS: 5000, Cooldown: unit.Seconds(65.53)}},
			},
		},
	}
}

func TestCatalogRepository_ReplaceAllAndRecords(t *testing.T) {
	repo := postgres.NewCatalogRepository(testutil.NewPool(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleRecords()))

	recs, err := repo.Records(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, sampleRecords(), recs, "records round-trip in order")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCatalogRepository_ReplaceAllReplaces(t *testing.T) {
	repo := postgres.NewCatalogRepository(testutil.NewPool(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleRecords()))
	require.NoError(t, repo.ReplaceAll(ctx, sampleRecords()[1:]))

	recs, err := repo.Records(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "CAT_026", recs[0].Code)
}

func TestCatalogRepository_InvalidTierRollsBack(t *testing.T) {
	repo := postgres.NewCatalogRepository(testutil.NewPool(t))
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, sampleRecords()))

	bad := sampleRecords()
	bad[1].Tier = "legend"
	err := repo.ReplaceAll(ctx, bad)
	assert.ErrorIs(t, err, postgres.ErrInvalidUnit)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "failed replace leaves the previous catalog")
}

func TestCatalogRepository_OptionalSecondsRoundTrip(t *testing.T) {
	repo := postgres.NewCatalogRepository(testutil.NewPool(t))
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, sampleRecords()))

	recs, err := repo.Records(ctx)
	require.NoError(t, err)
	require.NotNil(t, recs[0].BaseStats.AfterDelay)
	assert.Equal(t, 0.5, *recs[0].BaseStats.AfterDelay)
	assert.Nil(t, recs[1].BaseStats.AfterDelay, "absent stays absent")
}

func TestCatalogRepository_IsCatalogSource(t *testing.T) {
	repo := postgres.NewCatalogRepository(testutil.NewPool(t))
	ctx := context.Background()
	require.NoError(t, repo.ReplaceAll(ctx, sampleRecords()))

	var src catalog.Source = repo
	c, err := catalog.Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}
