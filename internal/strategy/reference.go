package strategy

import (
	"github.com/osse101/HarvestBot_Go/internal/domain"
	"github.com/osse101/HarvestBot_Go/internal/market"
)

// ReferencePolicy is the stock heuristic set, driven entirely by Tuning.
type ReferencePolicy struct {
	tuning Tuning
}

// NewReferencePolicy builds the default policy from the given tuning.
func NewReferencePolicy(tuning Tuning) *ReferencePolicy {
	return &ReferencePolicy{tuning: tuning}
}

// Tuning exposes the active parameter set.
func (p *ReferencePolicy) Tuning() Tuning {
	return p.tuning
}

// ReserveThreshold shrinks the water reserve as pressure to plant rises:
// plenty of empty plots or a near-empty credit balance means holding water
// back costs more than it protects against.
func (p *ReferencePolicy) ReserveThreshold(emptyPlots int, credits float64) int {
	urgent := emptyPlots >= 3 || credits <= p.tuning.LowCreditThreshold
	switch {
	case urgent:
		return p.tuning.EmergencyReserve
	case emptyPlots == 2:
		return max(p.tuning.EmergencyReserve, p.tuning.MinReserve/2)
	default:
		return max(p.tuning.EmergencyReserve, p.tuning.MinReserve)
	}
}

// ScoreCrop combines the raw credit rate with how the crop's water
// efficiency compares to the market average, then suppresses low-value
// crops via the price tier penalty.
func (p *ReferencePolicy) ScoreCrop(crop domain.CropInfo, snap domain.MarketSnapshot) float64 {
	if crop.GrowTimeMinutes <= 0 || crop.WaterCost <= 0 {
		return 0
	}

	score := crop.CreditsPerHour()

	if snap.AverageEfficiency > 0 {
		score *= crop.Efficiency / snap.AverageEfficiency
	}

	score *= p.tierPenalty(crop.MarketPrice)

	if market.InPremiumWindow(crop, snap, p.tuning.PremiumThreshold) {
		score *= p.tuning.PremiumBonus
	}
	return score
}

// ExpansionROI projects the credit return of the next expansion over the
// configured horizon, relative to the credit-equivalent of its water cost.
func (p *ReferencePolicy) ExpansionROI(farm domain.FarmSnapshot) float64 {
	if farm.NextExpansionCost <= 0 || !farm.LandClaimed {
		return 0
	}

	extra := addedTiles(farm.LandTiles)
	gainPerHour := float64(extra) * p.tuning.CreditsPerTileHour
	costCredits := float64(farm.NextExpansionCost) * p.tuning.WaterCreditRate
	if costCredits <= 0 {
		return 0
	}
	return gainPerHour * p.tuning.ROIHorizonHours / costCredits
}

// addedTiles estimates how many tiles the next square expansion adds.
func addedTiles(current int) int {
	switch current {
	case 1:
		return 3 // 1x1 -> 2x2
	case 4:
		return 5 // 2x2 -> 3x3
	case 9:
		return 7 // 3x3 -> 4x4
	default:
		if current < 1 {
			return 0
		}
		return current / 2
	}
}

func (p *ReferencePolicy) tierPenalty(price float64) float64 {
	for _, tier := range p.tuning.PriceTiers {
		if price <= tier.MaxPrice {
			return tier.Penalty
		}
	}
	return 1.0
}
