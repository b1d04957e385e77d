package farm

import (
	"fmt"
	"sync"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/domain"
	"github.com/osse101/HarvestBot_Go/internal/metrics"
)

// ServerView is the flattened result of a /profile + /land query pair, used
// to rebuild the snapshot wholesale.
type ServerView struct {
	Water             int
	Credits           float64
	TotalCalls        int
	LandClaimed       bool
	GridSize          int
	LandTiles         int
	NextExpansionCost int
	Grid              [][]int // 0 empty, 1 growing, >=2 mature crop ID
}

// State is the single source of truth for the farm: credentials excepted,
// every task reads it and the task that issued a mutating call writes the
// confirmed result back. All access goes through the mutex; Snapshot returns
// a copy so decisions are always derived from a consistent read.
type State struct {
	mu   sync.RWMutex
	snap domain.FarmSnapshot
}

// NewState creates an empty farm state.
func NewState() *State {
	return &State{snap: domain.FarmSnapshot{Capacity: MaxWaterCapacity}}
}

// Snapshot returns a consistent copy of the current snapshot.
func (s *State) Snapshot() domain.FarmSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *State) copyLocked() domain.FarmSnapshot {
	snap := s.snap
	snap.Plots = make([]domain.PlotState, len(s.snap.Plots))
	copy(snap.Plots, s.snap.Plots)
	return snap
}

// SyncServer replaces the snapshot wholesale from a server-confirmed view.
// Planting timestamps are carried over from the previous snapshot for plots
// the server still reports as occupied, since the server does not return
// them; a cell the server reports mature is marked mature regardless of the
// local estimate.
func (s *State) SyncServer(view ServerView, market domain.MarketSnapshot, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snap
	next := domain.FarmSnapshot{
		Water:             view.Water,
		Capacity:          MaxWaterCapacity,
		Credits:           view.Credits,
		TotalCalls:        view.TotalCalls,
		LandClaimed:       view.LandClaimed,
		GridSize:          view.GridSize,
		LandTiles:         view.LandTiles,
		NextExpansionCost: view.NextExpansionCost,
		FetchedAt:         now,
	}

	for row := range view.Grid {
		for col, cell := range view.Grid[row] {
			plot := domain.PlotState{
				Index: row*view.GridSize + col,
				Row:   row,
				Col:   col,
			}
			switch {
			case cell == CellEmpty:
				// vacant dirt
			case cell == CellGrowing:
				plot = carryOver(prev, plot, now)
				if plot.CropType == "" {
					plot.CropType = UnknownCropType
				}
			default:
				// Server says mature. Identify the crop by grid ID when the
				// market knows it, and force local maturity.
				plot = carryOver(prev, plot, now)
				if crop, ok := market.CropByID(cell); ok {
					plot.CropType = crop.Type
					plot.CropName = crop.Name
				} else if plot.CropType == "" {
					plot.CropType = UnknownCropType
				}
				if plot.MaturesAt.IsZero() || plot.MaturesAt.After(now) {
					plot.MaturesAt = now
				}
			}
			next.Plots = append(next.Plots, plot)
		}
	}

	s.snap = next
	s.updateGaugesLocked(now)
}

// carryOver preserves local planting timestamps for a plot the server still
// reports as occupied.
func carryOver(prev domain.FarmSnapshot, plot domain.PlotState, now time.Time) domain.PlotState {
	old, ok := prev.PlotAt(plot.Row, plot.Col)
	if ok && !old.Empty() {
		plot.CropType = old.CropType
		plot.CropName = old.CropName
		plot.PlantedAt = old.PlantedAt
		plot.MaturesAt = old.MaturesAt
	}
	return plot
}

// ApplyCollect records a confirmed water collection.
func (s *State) ApplyCollect(waterAfter int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Water = waterAfter
	s.updateGaugesLocked(at)
}

// ApplyPlant records a confirmed planting. Application is idempotent: a
// response processed twice finds the plot already holding the crop and
// changes nothing.
func (s *State) ApplyPlant(row, col int, crop domain.CropInfo, waterAfter int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.plotIndexLocked(row, col)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrPlotNotFound, row, col)
	}
	if s.snap.Plots[i].CropType == crop.Type && !s.snap.Plots[i].PlantedAt.IsZero() {
		return nil // already applied
	}
	if !s.snap.Plots[i].Empty() {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrPlotOccupied, row, col)
	}

	s.snap.Plots[i].CropType = crop.Type
	s.snap.Plots[i].CropName = crop.Name
	s.snap.Plots[i].PlantedAt = at
	s.snap.Plots[i].MaturesAt = at.Add(crop.GrowTime())
	s.snap.Water = waterAfter
	s.updateGaugesLocked(at)
	return nil
}

// ApplyHarvest records a confirmed harvest: the plot empties and the earned
// credits are added. A second application of the same response is a no-op
// because the plot is already empty.
func (s *State) ApplyHarvest(row, col int, creditsEarned float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.plotIndexLocked(row, col)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", domain.ErrPlotNotFound, row, col)
	}
	if s.snap.Plots[i].Empty() {
		return nil // already applied
	}

	s.snap.Plots[i] = domain.PlotState{
		Index: s.snap.Plots[i].Index,
		Row:   row,
		Col:   col,
	}
	s.snap.Credits += creditsEarned
	s.updateGaugesLocked(at)
	return nil
}

// ApplyClaim records a confirmed initial land claim as a 1x1 grid.
func (s *State) ApplyClaim(waterAfter int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.LandClaimed = true
	s.snap.GridSize = 1
	s.snap.LandTiles = 1
	s.snap.Water = waterAfter
	if len(s.snap.Plots) == 0 {
		s.snap.Plots = []domain.PlotState{{}}
	}
	s.updateGaugesLocked(at)
}

// ApplyExpand records a confirmed expansion. The authoritative grid layout
// arrives with the next /land sync; only size and water change here.
func (s *State) ApplyExpand(gridSize, waterAfter int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gridSize > 0 {
		s.snap.GridSize = gridSize
		s.snap.LandTiles = gridSize * gridSize
	}
	s.snap.Water = waterAfter
	s.updateGaugesLocked(at)
}

func (s *State) plotIndexLocked(row, col int) (int, bool) {
	for i, p := range s.snap.Plots {
		if p.Row == row && p.Col == col {
			return i, true
		}
	}
	return 0, false
}

func (s *State) updateGaugesLocked(now time.Time) {
	metrics.WaterLevel.Set(float64(s.snap.Water))
	metrics.CreditsBalance.Set(s.snap.Credits)
	metrics.EmptyPlots.Set(float64(len(s.snap.EmptyPlots())))
	metrics.MaturePlots.Set(float64(len(s.snap.MaturePlots(now))))
}
