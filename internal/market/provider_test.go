package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HarvestBot_Go/internal/api"
	"github.com/osse101/HarvestBot_Go/internal/domain"
)

type fakeFetcher struct {
	calls int
	resp  *api.CropsResponse
	err   error
}

func (f *fakeFetcher) Crops(ctx context.Context) (*api.CropsResponse, error) {
	f.calls++
	return f.resp, f.err
}

func testCropsResponse() *api.CropsResponse {
	return &api.CropsResponse{
		Crops: []api.CropPayload{
			{ID: 7, Type: "tomato", Name: "Tomato", MarketPrice: 2.0, GrowTimeMinutes: 30, WaterCost: 8, Efficiency: 0.25},
			{ID: 3, Type: "lettuce", Name: "Lettuce", MarketPrice: 0.5, GrowTimeMinutes: 10, WaterCost: 3, Efficiency: 0.17},
			{ID: 9, Type: "corn", Name: "Corn", MarketPrice: 3.5, GrowTimeMinutes: 60, WaterCost: 15, Efficiency: 0.23},
		},
		MarketInfo: api.MarketInfoPayload{AveragePrice: 2.0, HighestPrice: 3.5, BestEfficiency: 0.25},
	}
}

func TestProviderCachesWithinRefreshInterval(t *testing.T) {
	f := &fakeFetcher{resp: testCropsResponse()}
	p := NewProvider(f, time.Minute)

	first, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, f.calls, "second snapshot within the TTL must be served from cache")
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
}

func TestProviderRefetchesAfterExpiry(t *testing.T) {
	f := &fakeFetcher{resp: testCropsResponse()}
	p := NewProvider(f, 10*time.Millisecond)

	_, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)
}

func TestProviderComputesAverages(t *testing.T) {
	f := &fakeFetcher{resp: testCropsResponse()}
	p := NewProvider(f, time.Minute)

	snap, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2.0, snap.AveragePrice, "server aggregate preferred")
	assert.InDelta(t, (0.25+0.17+0.23)/3, snap.AverageEfficiency, 1e-9)
	assert.Len(t, snap.Crops, 3)

	crop, ok := snap.CropByID(7)
	require.True(t, ok)
	assert.Equal(t, "tomato", crop.Type)
}

func TestProviderLast(t *testing.T) {
	f := &fakeFetcher{resp: testCropsResponse()}
	p := NewProvider(f, time.Minute)

	_, ok := p.Last()
	assert.False(t, ok, "no snapshot before the first fetch")

	_, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	last, ok := p.Last()
	assert.True(t, ok)
	assert.Len(t, last.Crops, 3)
}

func TestAnalyze(t *testing.T) {
	f := &fakeFetcher{resp: testCropsResponse()}
	p := NewProvider(f, time.Minute)
	snap, err := p.Snapshot(context.Background())
	require.NoError(t, err)

	a := Analyze(snap)

	assert.Equal(t, 3, a.TotalCrops)
	assert.Equal(t, 0.5, a.Price.Min)
	assert.Equal(t, 3.5, a.Price.Max)
	assert.InDelta(t, 2.0, a.Price.Avg, 1e-9)
	require.NotEmpty(t, a.TopEfficiency)
	assert.Equal(t, "tomato", a.TopEfficiency[0].Type)
	assert.Equal(t, "corn", a.BestValue[0].Type)
	assert.Equal(t, "lettuce", a.QuickTurnaround[0].Type)
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	a := Analyze(domain.MarketSnapshot{})
	assert.Equal(t, 0, a.TotalCrops)
	assert.Empty(t, a.TopEfficiency)
}

func TestInPremiumWindow(t *testing.T) {
	snap := domain.MarketSnapshot{AveragePrice: 2.0}

	assert.True(t, InPremiumWindow(domain.CropInfo{MarketPrice: 2.5}, snap, 1.1))
	assert.False(t, InPremiumWindow(domain.CropInfo{MarketPrice: 2.1}, snap, 1.1))
	assert.False(t, InPremiumWindow(domain.CropInfo{MarketPrice: 5}, domain.MarketSnapshot{}, 1.1), "zero average never counts as premium")
}
