package strategy

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

// Policy supplies the tunable heuristics the decision engine is
// parameterized by. The engine owns ordering and safety invariants; the
// policy owns only scoring and thresholds, so the scheduling core stays
// testable independent of any particular formula.
type Policy interface {
	// ReserveThreshold is the minimum water to keep unspent this cycle.
	ReserveThreshold(emptyPlots int, credits float64) int

	// ScoreCrop rates a planting option against the market snapshot.
	// Higher is better; zero or negative means "do not plant".
	ScoreCrop(crop domain.CropInfo, snap domain.MarketSnapshot) float64

	// ExpansionROI is the projected return rate of expanding now.
	ExpansionROI(farm domain.FarmSnapshot) float64
}

// PriceTier is one breakpoint of the low-value penalty curve: crops priced
// at or below MaxPrice have their score multiplied by Penalty.
type PriceTier struct {
	MaxPrice float64 `yaml:"max_price"`
	Penalty  float64 `yaml:"penalty"`
}

// Tuning holds every constant of the reference policy. All values are plain
// parameters; nothing here is consulted by the scheduling logic itself.
type Tuning struct {
	MinReserve         int     `yaml:"min_reserve"`
	EmergencyReserve   int     `yaml:"emergency_reserve"`
	LowCreditThreshold float64 `yaml:"low_credit_threshold"`

	PremiumThreshold float64     `yaml:"premium_threshold"`
	PremiumBonus     float64     `yaml:"premium_bonus"`
	PriceTiers       []PriceTier `yaml:"price_tiers"`

	ExpansionROIThreshold float64 `yaml:"expansion_roi_threshold"`
	CreditsPerTileHour    float64 `yaml:"credits_per_tile_hour"`
	WaterCreditRate       float64 `yaml:"water_credit_rate"`
	ROIHorizonHours       float64 `yaml:"roi_horizon_hours"`
}

// DefaultTuning returns the stock heuristics.
func DefaultTuning() Tuning {
	return Tuning{
		MinReserve:         8,
		EmergencyReserve:   1,
		LowCreditThreshold: 15,
		PremiumThreshold:   1.1,
		PremiumBonus:       1.2,
		PriceTiers: []PriceTier{
			{MaxPrice: 0.5, Penalty: 0.25},
			{MaxPrice: 1.0, Penalty: 0.6},
		},
		ExpansionROIThreshold: 0.15,
		CreditsPerTileHour:    0.3,
		WaterCreditRate:       0.02,
		ROIHorizonHours:       24,
	}
}

// LoadTuning reads a tuning file over the defaults. An empty path returns
// the defaults unchanged; a missing or malformed file is a startup error.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("%w: read policy file %s: %v", domain.ErrFatal, path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("%w: parse policy file %s: %v", domain.ErrFatal, path, err)
	}

	// Penalty lookup walks tiers in ascending price order.
	sort.Slice(t.PriceTiers, func(i, j int) bool { return t.PriceTiers[i].MaxPrice < t.PriceTiers[j].MaxPrice })
	return t, nil
}
