package domain

import "time"

// DecisionKind identifies the class of action a strategy cycle executes.
// Only one class runs per cycle; harvest may batch multiple plots.
type DecisionKind string

const (
	DecisionCollectWater DecisionKind = "collect_water"
	DecisionClaimLand    DecisionKind = "claim_land"
	DecisionExpandLand   DecisionKind = "expand_land"
	DecisionPlant        DecisionKind = "plant"
	DecisionHarvest      DecisionKind = "harvest"
	DecisionWait         DecisionKind = "wait"
)

// Decision is the output of one strategy evaluation over a
// (FarmSnapshot, MarketSnapshot) pair.
type Decision struct {
	Kind DecisionKind

	// HarvestPlots holds all matured plots for a harvest decision.
	HarvestPlots []PlotState

	// Crop and Plot identify the planting target for a plant decision.
	Crop CropInfo
	Plot PlotState

	// Reason is a short human-readable justification for logging and the
	// decision history.
	Reason string

	DecidedAt time.Time
}
