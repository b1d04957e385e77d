package strategy

import (
	"fmt"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/domain"
	"github.com/osse101/HarvestBot_Go/internal/farm"
)

// Engine turns a farm and market snapshot into the single action class to
// take this cycle. Priority is fixed regardless of policy: harvesting
// matured crops always beats spending water, and land comes before crops.
type Engine struct {
	policy       Policy
	roiThreshold float64
}

// NewEngine wires a policy under the fixed decision ordering.
func NewEngine(policy Policy, roiThreshold float64) *Engine {
	return &Engine{policy: policy, roiThreshold: roiThreshold}
}

// Decide evaluates, in order: harvest matured plots, claim the initial
// land, expand when the ROI clears the threshold, plant the best affordable
// crop, otherwise wait. Exactly one decision comes back per cycle.
func (e *Engine) Decide(farmSnap domain.FarmSnapshot, marketSnap domain.MarketSnapshot, now time.Time) domain.Decision {
	if mature := farmSnap.MaturePlots(now); len(mature) > 0 {
		return domain.Decision{
			Kind:         domain.DecisionHarvest,
			HarvestPlots: mature,
			Reason:       fmt.Sprintf(ReasonHarvestReady, len(mature)),
			DecidedAt:    now,
		}
	}

	if !farmSnap.LandClaimed {
		if farmSnap.Water >= farm.LandClaimCost {
			return domain.Decision{
				Kind:      domain.DecisionClaimLand,
				Reason:    fmt.Sprintf(ReasonClaimLand, farmSnap.Water),
				DecidedAt: now,
			}
		}
		return wait(ReasonWaitNoLand, now)
	}

	if roi := e.policy.ExpansionROI(farmSnap); roi > e.roiThreshold && farmSnap.NextExpansionCost > 0 && farmSnap.Water >= farmSnap.NextExpansionCost {
		return domain.Decision{
			Kind:      domain.DecisionExpandLand,
			Reason:    fmt.Sprintf(ReasonExpandLand, roi, e.roiThreshold),
			DecidedAt: now,
		}
	}

	empty := farmSnap.EmptyPlots()
	if len(empty) == 0 {
		return wait(ReasonWaitNoPlots, now)
	}

	if len(marketSnap.Crops) == 0 {
		return wait(ReasonWaitNoMarket, now)
	}

	reserve := e.policy.ReserveThreshold(len(empty), farmSnap.Credits)
	budget := farmSnap.Water - reserve
	if budget <= 0 {
		return wait(fmt.Sprintf(ReasonWaitNoBudget, reserve), now)
	}

	best, score, ok := e.bestCrop(marketSnap, budget)
	if !ok {
		return wait(ReasonWaitNoCrop, now)
	}

	return domain.Decision{
		Kind:      domain.DecisionPlant,
		Crop:      best,
		Plot:      empty[0],
		Reason:    fmt.Sprintf(ReasonPlantCrop, best.Type, score, budget),
		DecidedAt: now,
	}
}

// bestCrop picks the highest-scoring crop whose water cost fits the budget.
func (e *Engine) bestCrop(snap domain.MarketSnapshot, budget int) (domain.CropInfo, float64, bool) {
	var (
		best  domain.CropInfo
		score float64
		found bool
	)
	for _, crop := range snap.Crops {
		if crop.WaterCost > budget {
			continue
		}
		if s := e.policy.ScoreCrop(crop, snap); s > score {
			best, score, found = crop, s, true
		}
	}
	return best, score, found
}

func wait(reason string, now time.Time) domain.Decision {
	return domain.Decision{Kind: domain.DecisionWait, Reason: reason, DecidedAt: now}
}
