package stats

import (
	"sync"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

// Session accumulates counters for the lifetime of one bot process. All
// methods are safe for concurrent use by the workers.
type Session struct {
	mu sync.Mutex

	startedAt      time.Time
	waterCollected int
	cropsPlanted   int
	cropsHarvested int
	landExpansions int
	creditsEarned  float64
	decisions      map[domain.DecisionKind]int
	cycles         int
}

// Snapshot is a point-in-time copy of the session counters.
type Snapshot struct {
	StartedAt      time.Time                   `json:"startedAt"`
	Uptime         string                      `json:"uptime"`
	Cycles         int                         `json:"cycles"`
	WaterCollected int                         `json:"waterCollected"`
	CropsPlanted   int                         `json:"cropsPlanted"`
	CropsHarvested int                         `json:"cropsHarvested"`
	LandExpansions int                         `json:"landExpansions"`
	CreditsEarned  float64                     `json:"creditsEarned"`
	Decisions      map[domain.DecisionKind]int `json:"decisions"`
}

// NewSession starts a fresh counter set anchored at now.
func NewSession(now time.Time) *Session {
	return &Session{
		startedAt: now,
		decisions: make(map[domain.DecisionKind]int),
	}
}

// RecordWater adds collected water units.
func (s *Session) RecordWater(units int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waterCollected += units
}

// RecordPlant counts one confirmed planting.
func (s *Session) RecordPlant() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cropsPlanted++
}

// RecordHarvest counts harvested plots and the credits they earned.
func (s *Session) RecordHarvest(plots int, credits float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cropsHarvested += plots
	s.creditsEarned += credits
}

// RecordExpansion counts one confirmed land expansion or claim.
func (s *Session) RecordExpansion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.landExpansions++
}

// RecordDecision tallies one strategy cycle's outcome.
func (s *Session) RecordDecision(kind domain.DecisionKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles++
	s.decisions[kind]++
}

// Snapshot copies the counters for reporting.
func (s *Session) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	decisions := make(map[domain.DecisionKind]int, len(s.decisions))
	for k, v := range s.decisions {
		decisions[k] = v
	}

	return Snapshot{
		StartedAt:      s.startedAt,
		Uptime:         now.Sub(s.startedAt).Round(time.Second).String(),
		Cycles:         s.cycles,
		WaterCollected: s.waterCollected,
		CropsPlanted:   s.cropsPlanted,
		CropsHarvested: s.cropsHarvested,
		LandExpansions: s.landExpansions,
		CreditsEarned:  s.creditsEarned,
		Decisions:      decisions,
	}
}
