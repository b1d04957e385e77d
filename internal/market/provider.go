package market

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/HarvestBot_Go/internal/api"
	"github.com/osse101/HarvestBot_Go/internal/domain"
)

const cacheKey = "crops"

// Fetcher is the /crops call the provider depends on.
type Fetcher interface {
	Crops(ctx context.Context) (*api.CropsResponse, error)
}

// Provider serves market snapshots on the market-refresh cadence. Strategy
// cycles run on their own (intentionally offset) period and always call
// Snapshot; the TTL cache decides whether that turns into a server fetch,
// keeping the two cadences independent.
type Provider struct {
	fetcher Fetcher
	cache   *expirable.LRU[string, domain.MarketSnapshot]

	mu   sync.RWMutex
	last domain.MarketSnapshot
	ok   bool
}

// NewProvider creates a provider that re-fetches at most once per refresh interval.
func NewProvider(fetcher Fetcher, refreshInterval time.Duration) *Provider {
	return &Provider{
		fetcher: fetcher,
		cache:   expirable.NewLRU[string, domain.MarketSnapshot](1, nil, refreshInterval),
	}
}

// Snapshot returns the current market snapshot, fetching from the server
// only when the cached one has aged past the refresh interval.
func (p *Provider) Snapshot(ctx context.Context) (domain.MarketSnapshot, error) {
	if snap, ok := p.cache.Get(cacheKey); ok {
		return snap, nil
	}

	resp, err := p.fetcher.Crops(ctx)
	if err != nil {
		return domain.MarketSnapshot{}, err
	}

	snap := toSnapshot(resp, time.Now())
	p.cache.Add(cacheKey, snap)

	p.mu.Lock()
	p.last = snap
	p.ok = true
	p.mu.Unlock()

	return snap, nil
}

// Last returns the most recently fetched snapshot without fetching, for
// read-only presentation.
func (p *Provider) Last() (domain.MarketSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.ok
}

// toSnapshot converts the wire payload into the immutable snapshot form.
// Server-computed aggregates are used when present; the efficiency average
// is always computed locally since the server does not report it.
func toSnapshot(resp *api.CropsResponse, fetchedAt time.Time) domain.MarketSnapshot {
	snap := domain.MarketSnapshot{
		AveragePrice:   resp.MarketInfo.AveragePrice,
		HighestPrice:   resp.MarketInfo.HighestPrice,
		BestEfficiency: resp.MarketInfo.BestEfficiency,
		FetchedAt:      fetchedAt,
	}

	var priceSum, effSum float64
	for _, c := range resp.Crops {
		snap.Crops = append(snap.Crops, domain.CropInfo{
			ID:              c.ID,
			Type:            c.Type,
			Name:            c.Name,
			MarketPrice:     c.MarketPrice,
			GrowTimeMinutes: c.GrowTimeMinutes,
			WaterCost:       c.WaterCost,
			Efficiency:      c.Efficiency,
		})
		priceSum += c.MarketPrice
		effSum += c.Efficiency
	}

	if n := len(resp.Crops); n > 0 {
		snap.AverageEfficiency = effSum / float64(n)
		if snap.AveragePrice == 0 {
			snap.AveragePrice = priceSum / float64(n)
		}
	}
	return snap
}
