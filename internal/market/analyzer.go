package market

import (
	"sort"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

const topN = 5

// Stats summarizes one numeric dimension of the market.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
}

// Analysis summarizes the market conditions of one snapshot.
type Analysis struct {
	TotalCrops      int               `json:"totalCrops"`
	Price           Stats             `json:"price"`
	Efficiency      Stats             `json:"efficiency"`
	WaterCost       Stats             `json:"waterCost"`
	TopEfficiency   []domain.CropInfo `json:"topEfficiency"`
	BestValue       []domain.CropInfo `json:"bestValue"`
	QuickTurnaround []domain.CropInfo `json:"quickTurnaround"`
}

// Analyze computes summary statistics and top-crop rankings for a snapshot.
func Analyze(snap domain.MarketSnapshot) Analysis {
	a := Analysis{TotalCrops: len(snap.Crops)}
	if len(snap.Crops) == 0 {
		return a
	}

	prices := make([]float64, 0, len(snap.Crops))
	effs := make([]float64, 0, len(snap.Crops))
	costs := make([]float64, 0, len(snap.Crops))
	for _, c := range snap.Crops {
		prices = append(prices, c.MarketPrice)
		effs = append(effs, c.Efficiency)
		costs = append(costs, float64(c.WaterCost))
	}
	a.Price = computeStats(prices)
	a.Efficiency = computeStats(effs)
	a.WaterCost = computeStats(costs)

	a.TopEfficiency = topBy(snap.Crops, func(x, y domain.CropInfo) bool { return x.Efficiency > y.Efficiency })
	a.BestValue = topBy(snap.Crops, func(x, y domain.CropInfo) bool { return x.MarketPrice > y.MarketPrice })
	a.QuickTurnaround = topBy(snap.Crops, func(x, y domain.CropInfo) bool { return x.GrowTimeMinutes < y.GrowTimeMinutes })

	return a
}

// InPremiumWindow reports whether a crop's price exceeds the snapshot's
// average by the given threshold factor (e.g. 1.1 for ten percent above).
func InPremiumWindow(crop domain.CropInfo, snap domain.MarketSnapshot, threshold float64) bool {
	return snap.AveragePrice > 0 && crop.MarketPrice > snap.AveragePrice*threshold
}

func computeStats(values []float64) Stats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return Stats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Avg:    sum / float64(len(sorted)),
		Median: sorted[len(sorted)/2],
	}
}

func topBy(crops []domain.CropInfo, less func(x, y domain.CropInfo) bool) []domain.CropInfo {
	sorted := make([]domain.CropInfo, len(crops))
	copy(sorted, crops)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	return sorted
}
