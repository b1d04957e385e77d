package strategy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func testMarket() domain.MarketSnapshot {
	return domain.MarketSnapshot{
		Crops: []domain.CropInfo{
			{ID: 3, Type: "lettuce", Name: "Lettuce", MarketPrice: 0.8, GrowTimeMinutes: 10, WaterCost: 2, Efficiency: 0.4},
			{ID: 7, Type: "tomato", Name: "Tomato", MarketPrice: 2.0, GrowTimeMinutes: 30, WaterCost: 8, Efficiency: 0.25},
			{ID: 9, Type: "pumpkin", Name: "Pumpkin", MarketPrice: 6.0, GrowTimeMinutes: 120, WaterCost: 20, Efficiency: 0.3},
		},
		AveragePrice:      2.93,
		HighestPrice:      6.0,
		AverageEfficiency: 0.316,
		BestEfficiency:    0.4,
		FetchedAt:         testNow,
	}
}

func claimedFarm(water int, credits float64, plots []domain.PlotState) domain.FarmSnapshot {
	return domain.FarmSnapshot{
		Water:             water,
		Capacity:          1024,
		Credits:           credits,
		LandClaimed:       true,
		GridSize:          2,
		LandTiles:         len(plots),
		NextExpansionCost: 50,
		Plots:             plots,
		FetchedAt:         testNow,
	}
}

func emptyPlots(n int) []domain.PlotState {
	plots := make([]domain.PlotState, n)
	for i := range plots {
		plots[i] = domain.PlotState{Index: i, Row: i / 2, Col: i % 2}
	}
	return plots
}

func TestReserveThreshold(t *testing.T) {
	policy := NewReferencePolicy(DefaultTuning())

	t.Run("drops to emergency minimum under planting pressure", func(t *testing.T) {
		assert.Equal(t, 1, policy.ReserveThreshold(3, 12))
	})

	t.Run("drops to emergency minimum on low credits alone", func(t *testing.T) {
		assert.Equal(t, 1, policy.ReserveThreshold(1, 10))
	})

	t.Run("halves the reserve with two empty plots", func(t *testing.T) {
		assert.Equal(t, 4, policy.ReserveThreshold(2, 100))
	})

	t.Run("keeps the full reserve when comfortable", func(t *testing.T) {
		assert.Equal(t, 8, policy.ReserveThreshold(1, 100))
	})
}

func TestScoreCrop(t *testing.T) {
	snap := testMarket()

	t.Run("penalizes low-value crops by the configured tier", func(t *testing.T) {
		policy := NewReferencePolicy(DefaultTuning())

		noTiers := DefaultTuning()
		noTiers.PriceTiers = nil
		unpenalized := NewReferencePolicy(noTiers)

		cheap := domain.CropInfo{ID: 1, Type: "radish", MarketPrice: 0.3, GrowTimeMinutes: 10, WaterCost: 2, Efficiency: 0.3}

		got := policy.ScoreCrop(cheap, snap)
		base := unpenalized.ScoreCrop(cheap, snap)
		assert.InDelta(t, base*0.25, got, 1e-9)

		rich := cheap
		rich.MarketPrice = 2.0
		assert.Less(t, got, policy.ScoreCrop(rich, snap))
	})

	t.Run("boosts crops in the premium window", func(t *testing.T) {
		policy := NewReferencePolicy(DefaultTuning())

		premium := domain.CropInfo{ID: 9, Type: "pumpkin", MarketPrice: 6.0, GrowTimeMinutes: 120, WaterCost: 20, Efficiency: 0.3}
		ordinary := premium
		ordinary.MarketPrice = 2.0

		// 6.0 is above 1.1x the average price of 2.93, so the bonus applies.
		assert.Greater(t, policy.ScoreCrop(premium, snap), 3*policy.ScoreCrop(ordinary, snap))
	})

	t.Run("zero for unplantable entries", func(t *testing.T) {
		policy := NewReferencePolicy(DefaultTuning())
		assert.Zero(t, policy.ScoreCrop(domain.CropInfo{MarketPrice: 2, GrowTimeMinutes: 0, WaterCost: 2}, snap))
		assert.Zero(t, policy.ScoreCrop(domain.CropInfo{MarketPrice: 2, GrowTimeMinutes: 30, WaterCost: 0}, snap))
	})
}

func TestExpansionROI(t *testing.T) {
	policy := NewReferencePolicy(DefaultTuning())

	t.Run("zero without claimed land or a priced expansion", func(t *testing.T) {
		assert.Zero(t, policy.ExpansionROI(domain.FarmSnapshot{LandClaimed: false, NextExpansionCost: 50}))
		assert.Zero(t, policy.ExpansionROI(domain.FarmSnapshot{LandClaimed: true, NextExpansionCost: 0}))
	})

	t.Run("scales with tiles gained per water spent", func(t *testing.T) {
		small := claimedFarm(100, 50, emptyPlots(1))
		small.LandTiles = 1
		small.NextExpansionCost = 20

		big := small
		big.NextExpansionCost = 200

		assert.Greater(t, policy.ExpansionROI(small), policy.ExpansionROI(big))

		// 1 tile -> 2x2 adds 3 tiles: 3*0.3*24 / (20*0.02) = 54.
		assert.InDelta(t, 54.0, policy.ExpansionROI(small), 1e-9)
	})
}

func TestEngineDecide(t *testing.T) {
	policy := NewReferencePolicy(DefaultTuning())
	engine := NewEngine(policy, DefaultTuning().ExpansionROIThreshold)
	snap := testMarket()

	t.Run("harvest beats everything else", func(t *testing.T) {
		plots := emptyPlots(4)
		plots[1] = domain.PlotState{
			Index: 1, Row: 0, Col: 1,
			CropType:  "tomato",
			PlantedAt: testNow.Add(-time.Hour),
			MaturesAt: testNow.Add(-30 * time.Minute),
		}
		plots[2] = domain.PlotState{
			Index: 2, Row: 1, Col: 0,
			CropType:  "lettuce",
			PlantedAt: testNow.Add(-20 * time.Minute),
			MaturesAt: testNow.Add(-10 * time.Minute),
		}

		d := engine.Decide(claimedFarm(500, 100, plots), snap, testNow)
		require.Equal(t, domain.DecisionHarvest, d.Kind)
		assert.Len(t, d.HarvestPlots, 2)
	})

	t.Run("claims land before anything else when unclaimed", func(t *testing.T) {
		unclaimed := domain.FarmSnapshot{Water: 10, LandClaimed: false}
		d := engine.Decide(unclaimed, snap, testNow)
		assert.Equal(t, domain.DecisionClaimLand, d.Kind)

		broke := domain.FarmSnapshot{Water: 3, LandClaimed: false}
		d = engine.Decide(broke, snap, testNow)
		assert.Equal(t, domain.DecisionWait, d.Kind)
	})

	t.Run("expands when ROI clears the threshold and cost is covered", func(t *testing.T) {
		f := claimedFarm(500, 100, emptyPlots(1))
		f.LandTiles = 1
		f.NextExpansionCost = 20

		d := engine.Decide(f, snap, testNow)
		assert.Equal(t, domain.DecisionExpandLand, d.Kind)

		f.Water = 10 // ROI still high but cost no longer fits
		d = engine.Decide(f, snap, testNow)
		assert.NotEqual(t, domain.DecisionExpandLand, d.Kind)
	})

	t.Run("plants the best affordable crop within budget", func(t *testing.T) {
		f := claimedFarm(30, 100, emptyPlots(1))
		f.NextExpansionCost = 5000 // ROI below threshold

		d := engine.Decide(f, snap, testNow)
		require.Equal(t, domain.DecisionPlant, d.Kind)
		assert.Equal(t, "lettuce", d.Crop.Type)
		assert.Equal(t, 0, d.Plot.Index)
	})

	t.Run("reserve constrains the planting budget", func(t *testing.T) {
		// One empty plot, generous credits: full reserve of 8 applies, so
		// 9 water leaves a budget of 1 and nothing is affordable.
		f := claimedFarm(9, 100, emptyPlots(1))
		f.NextExpansionCost = 5000

		d := engine.Decide(f, snap, testNow)
		assert.Equal(t, domain.DecisionWait, d.Kind)

		// Under pressure the reserve collapses to 1 and lettuce fits.
		f.Plots = emptyPlots(4)
		f.LandTiles = 4
		d = engine.Decide(f, snap, testNow)
		require.Equal(t, domain.DecisionPlant, d.Kind)
		assert.Equal(t, "lettuce", d.Crop.Type)
	})

	t.Run("waits when the grid is full and nothing is mature", func(t *testing.T) {
		plots := emptyPlots(1)
		plots[0].CropType = "tomato"
		plots[0].PlantedAt = testNow
		plots[0].MaturesAt = testNow.Add(30 * time.Minute)

		f := claimedFarm(500, 100, plots)
		f.NextExpansionCost = 5000

		d := engine.Decide(f, snap, testNow)
		assert.Equal(t, domain.DecisionWait, d.Kind)
	})

	t.Run("waits without market data", func(t *testing.T) {
		f := claimedFarm(500, 100, emptyPlots(1))
		f.NextExpansionCost = 5000

		d := engine.Decide(f, domain.MarketSnapshot{}, testNow)
		assert.Equal(t, domain.DecisionWait, d.Kind)
	})
}

func TestLoadTuning(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		tuning, err := LoadTuning("")
		require.NoError(t, err)
		assert.Equal(t, DefaultTuning(), tuning)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		body := "min_reserve: 12\nexpansion_roi_threshold: 0.4\nprice_tiers:\n  - max_price: 1.0\n    penalty: 0.5\n  - max_price: 0.5\n    penalty: 0.1\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		tuning, err := LoadTuning(path)
		require.NoError(t, err)
		assert.Equal(t, 12, tuning.MinReserve)
		assert.InDelta(t, 0.4, tuning.ExpansionROIThreshold, 1e-9)
		// Untouched fields keep their defaults.
		assert.Equal(t, 1, tuning.EmergencyReserve)
		// Tiers come back sorted by price.
		require.Len(t, tuning.PriceTiers, 2)
		assert.InDelta(t, 0.5, tuning.PriceTiers[0].MaxPrice, 1e-9)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFatal)
	})

	t.Run("malformed file is fatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("min_reserve: [oops"), 0o644))

		_, err := LoadTuning(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFatal)
	})
}
