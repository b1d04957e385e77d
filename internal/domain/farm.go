package domain

import "time"

// Credential is the OAuth client-credentials token used for authenticated calls.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Fresh reports whether the token can still be used at instant now, keeping
// the given safety margin before the known expiry.
func (c Credential) Fresh(now time.Time, margin time.Duration) bool {
	return c.AccessToken != "" && now.Before(c.ExpiresAt.Add(-margin))
}

// PlotState describes one plot of the farm grid.
// Lifecycle: empty -> planted -> mature (time-derived) -> empty after harvest.
type PlotState struct {
	Index     int       `json:"index"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	CropType  string    `json:"cropType,omitempty"` // empty string means vacant dirt
	CropName  string    `json:"cropName,omitempty"`
	PlantedAt time.Time `json:"plantedAt,omitzero"`
	MaturesAt time.Time `json:"maturesAt,omitzero"`
}

// Empty reports whether the plot holds no crop.
func (p PlotState) Empty() bool {
	return p.CropType == ""
}

// Mature reports whether the plot's crop is ready for harvest at instant now.
// Maturity is computed from the planting time, not polled from the server;
// harvesting is still confirmed server-side before local state changes.
func (p PlotState) Mature(now time.Time) bool {
	return !p.Empty() && !p.MaturesAt.IsZero() && !now.Before(p.MaturesAt)
}

// FarmSnapshot is the last server-confirmed view of the farm. It is replaced
// wholesale after each successful query, never partially patched.
type FarmSnapshot struct {
	Water             int         `json:"water"`
	Capacity          int         `json:"capacity"`
	Credits           float64     `json:"credits"`
	TotalCalls        int         `json:"totalCalls"`
	LandClaimed       bool        `json:"landClaimed"`
	GridSize          int         `json:"gridSize"`
	LandTiles         int         `json:"landTiles"`
	NextExpansionCost int         `json:"nextExpansionCost"`
	Plots             []PlotState `json:"plots"`
	FetchedAt         time.Time   `json:"fetchedAt"`
}

// EmptyPlots returns the plots currently holding no crop, in grid order.
func (f FarmSnapshot) EmptyPlots() []PlotState {
	var empty []PlotState
	for _, p := range f.Plots {
		if p.Empty() {
			empty = append(empty, p)
		}
	}
	return empty
}

// MaturePlots returns the plots whose crop is ready for harvest at now.
func (f FarmSnapshot) MaturePlots(now time.Time) []PlotState {
	var mature []PlotState
	for _, p := range f.Plots {
		if p.Mature(now) {
			mature = append(mature, p)
		}
	}
	return mature
}

// PlotAt returns the plot at the given grid position.
func (f FarmSnapshot) PlotAt(row, col int) (PlotState, bool) {
	for _, p := range f.Plots {
		if p.Row == row && p.Col == col {
			return p, true
		}
	}
	return PlotState{}, false
}
