package farm

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

var testMarket = domain.MarketSnapshot{
	Crops: []domain.CropInfo{
		{ID: 7, Type: "tomato", Name: "Tomato", MarketPrice: 2.0, GrowTimeMinutes: 30, WaterCost: 8, Efficiency: 0.25},
		{ID: 3, Type: "lettuce", Name: "Lettuce", MarketPrice: 0.5, GrowTimeMinutes: 10, WaterCost: 3, Efficiency: 0.17},
	},
}

func TestSyncServerRebuildsPlots(t *testing.T) {
	s := NewState()
	now := time.Now()

	s.SyncServer(ServerView{
		Water:             42,
		Credits:           3.5,
		LandClaimed:       true,
		GridSize:          2,
		LandTiles:         4,
		NextExpansionCost: 60,
		Grid: [][]int{
			{CellEmpty, CellGrowing},
			{7, CellEmpty},
		},
	}, testMarket, now)

	snap := s.Snapshot()
	require.Len(t, snap.Plots, 4)
	assert.Equal(t, 42, snap.Water)
	assert.Equal(t, 3.5, snap.Credits)
	assert.True(t, snap.LandClaimed)

	assert.True(t, snap.Plots[0].Empty())

	growing := snap.Plots[1]
	assert.Equal(t, UnknownCropType, growing.CropType, "unidentified growing crop")
	assert.False(t, growing.Mature(now), "growing plot must not report mature")

	mature := snap.Plots[2]
	assert.Equal(t, "tomato", mature.CropType, "grid ID resolved through market data")
	assert.True(t, mature.Mature(now), "server-reported mature cell must be harvestable")
}

func TestSyncServerCarriesOverPlantingTimes(t *testing.T) {
	s := NewState()
	now := time.Now()

	s.SyncServer(ServerView{
		LandClaimed: true, GridSize: 1, LandTiles: 1,
		Grid: [][]int{{CellEmpty}},
	}, testMarket, now)

	crop, _ := testMarket.CropByType("tomato")
	require.NoError(t, s.ApplyPlant(0, 0, crop, 10, now))
	planted := s.Snapshot().Plots[0]

	// A later sync still reports the plot growing; timestamps must survive.
	s.SyncServer(ServerView{
		LandClaimed: true, GridSize: 1, LandTiles: 1,
		Grid: [][]int{{CellGrowing}},
	}, testMarket, now.Add(time.Minute))

	after := s.Snapshot().Plots[0]
	assert.Equal(t, planted.PlantedAt, after.PlantedAt)
	assert.Equal(t, planted.MaturesAt, after.MaturesAt)
	assert.Equal(t, "tomato", after.CropType)
}

func TestApplyPlant(t *testing.T) {
	t.Run("sets crop and maturity from grow time", func(t *testing.T) {
		s := NewState()
		now := time.Now()
		s.SyncServer(ServerView{LandClaimed: true, GridSize: 1, LandTiles: 1, Grid: [][]int{{CellEmpty}}}, testMarket, now)

		crop, _ := testMarket.CropByType("tomato")
		require.NoError(t, s.ApplyPlant(0, 0, crop, 34, now))

		plot := s.Snapshot().Plots[0]
		assert.Equal(t, "tomato", plot.CropType)
		assert.Equal(t, now, plot.PlantedAt)
		assert.Equal(t, now.Add(30*time.Minute), plot.MaturesAt)
		assert.Equal(t, 34, s.Snapshot().Water)
	})

	t.Run("is idempotent when the same response is processed twice", func(t *testing.T) {
		s := NewState()
		now := time.Now()
		s.SyncServer(ServerView{LandClaimed: true, GridSize: 1, LandTiles: 1, Grid: [][]int{{CellEmpty}}}, testMarket, now)

		crop, _ := testMarket.CropByType("tomato")
		require.NoError(t, s.ApplyPlant(0, 0, crop, 34, now))
		first := s.Snapshot().Plots[0]

		require.NoError(t, s.ApplyPlant(0, 0, crop, 34, now.Add(time.Second)))
		second := s.Snapshot().Plots[0]

		assert.Equal(t, first.PlantedAt, second.PlantedAt, "second application must not move the planting time")
		assert.Equal(t, first.MaturesAt, second.MaturesAt)
	})

	t.Run("rejects planting on an occupied plot", func(t *testing.T) {
		s := NewState()
		now := time.Now()
		s.SyncServer(ServerView{LandClaimed: true, GridSize: 1, LandTiles: 1, Grid: [][]int{{CellEmpty}}}, testMarket, now)

		tomato, _ := testMarket.CropByType("tomato")
		lettuce, _ := testMarket.CropByType("lettuce")
		require.NoError(t, s.ApplyPlant(0, 0, tomato, 34, now))

		err := s.ApplyPlant(0, 0, lettuce, 31, now)
		assert.ErrorIs(t, err, domain.ErrPlotOccupied)
	})

	t.Run("rejects unknown plot", func(t *testing.T) {
		s := NewState()
		crop, _ := testMarket.CropByType("tomato")
		err := s.ApplyPlant(5, 5, crop, 10, time.Now())
		assert.ErrorIs(t, err, domain.ErrPlotNotFound)
	})
}

func TestApplyHarvest(t *testing.T) {
	s := NewState()
	now := time.Now()
	s.SyncServer(ServerView{LandClaimed: true, GridSize: 1, LandTiles: 1, Grid: [][]int{{7}}}, testMarket, now)

	require.NoError(t, s.ApplyHarvest(0, 0, 2.0, now))
	snap := s.Snapshot()
	assert.True(t, snap.Plots[0].Empty())
	assert.Equal(t, 2.0, snap.Credits)

	// Processing the same response twice must not double-count credits.
	require.NoError(t, s.ApplyHarvest(0, 0, 2.0, now))
	assert.Equal(t, 2.0, s.Snapshot().Credits)
}

func TestApplyCollect(t *testing.T) {
	s := NewState()
	s.ApplyCollect(17, time.Now())
	assert.Equal(t, 17, s.Snapshot().Water)
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewState()
	now := time.Now()
	s.SyncServer(ServerView{LandClaimed: true, GridSize: 1, LandTiles: 1, Grid: [][]int{{CellEmpty}}}, testMarket, now)

	snap := s.Snapshot()
	snap.Plots[0].CropType = "mutated"

	assert.True(t, s.Snapshot().Plots[0].Empty(), "mutating a snapshot must not leak into shared state")
}

func TestConcurrentAccess(t *testing.T) {
	s := NewState()
	now := time.Now()
	s.SyncServer(ServerView{LandClaimed: true, GridSize: 2, LandTiles: 4, Grid: [][]int{{0, 0}, {0, 0}}}, testMarket, now)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.ApplyCollect(n, time.Now())
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
}
