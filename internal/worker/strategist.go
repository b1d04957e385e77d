package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/api"
	"github.com/osse101/HarvestBot_Go/internal/domain"
	"github.com/osse101/HarvestBot_Go/internal/farm"
	"github.com/osse101/HarvestBot_Go/internal/history"
	"github.com/osse101/HarvestBot_Go/internal/logger"
	"github.com/osse101/HarvestBot_Go/internal/metrics"
	"github.com/osse101/HarvestBot_Go/internal/stats"
	"github.com/osse101/HarvestBot_Go/internal/strategy"
)

// GameAPI is the client slice the strategist depends on.
type GameAPI interface {
	Profile(ctx context.Context) (*api.ProfileResponse, error)
	Land(ctx context.Context) (*api.LandResponse, error)
	ClaimLand(ctx context.Context) (*api.ClaimLandResponse, error)
	ExpandLand(ctx context.Context) (*api.ExpandLandResponse, error)
	Plant(ctx context.Context, cropType string, row, col int) (*api.PlantResponse, error)
	Harvest(ctx context.Context, row, col int) (*api.HarvestResponse, error)
}

// MarketSource supplies market snapshots, cached or fresh.
type MarketSource interface {
	Snapshot(ctx context.Context) (domain.MarketSnapshot, error)
	Last() (domain.MarketSnapshot, bool)
}

// Strategist runs the decision cycle: sync the farm from the server, ask the
// engine for one action class, execute it, and write the confirmed result
// back into shared state. A rejected action is logged and abandoned; the
// next cycle's sync repairs whatever the local view got wrong.
type Strategist struct {
	client   GameAPI
	market   MarketSource
	state    *farm.State
	engine   *strategy.Engine
	session  *stats.Session
	recorder DecisionRecorder
	interval time.Duration
	now      func() time.Time

	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewStrategist wires the decision cycle on the given interval.
func NewStrategist(client GameAPI, market MarketSource, state *farm.State, engine *strategy.Engine,
	session *stats.Session, recorder DecisionRecorder, interval time.Duration) *Strategist {
	return &Strategist{
		client:   client,
		market:   market,
		state:    state,
		engine:   engine,
		session:  session,
		recorder: recorder,
		interval: interval,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}
}

// Start launches the cycle loop. The first cycle fires immediately.
func (w *Strategist) Start() {
	logger.FromContext(context.Background()).Info(LogMsgStrategistStarted, "interval", w.interval)
	w.wg.Add(1)
	go w.run()
}

func (w *Strategist) run() {
	defer w.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-w.shutdown:
			return
		case <-timer.C:
		}
		w.Cycle(context.Background())
		timer.Reset(w.interval)
	}
}

// Cycle performs one full sync-decide-execute pass. Exported for one-shot
// CLI runs; the loop calls it on the configured interval.
func (w *Strategist) Cycle(ctx context.Context) {
	ctx = logger.WithCycleID(ctx, logger.GenerateCycleID())
	log := logger.FromContext(ctx)
	log.Debug(LogMsgCycleStarted)

	marketSnap, err := w.market.Snapshot(ctx)
	if err != nil {
		log.Warn(LogMsgMarketUnavailable, "error", err)
		marketSnap, _ = w.market.Last()
	}

	if err := w.sync(ctx, marketSnap); err != nil {
		log.Warn(LogMsgSyncFailed, "error", err)
		return
	}

	farmSnap := w.state.Snapshot()
	decision := w.engine.Decide(farmSnap, marketSnap, w.now())

	log.Info(LogMsgDecisionMade,
		"kind", decision.Kind,
		"reason", decision.Reason,
		"water", farmSnap.Water,
		"credits", farmSnap.Credits)
	metrics.Decisions.WithLabelValues(string(decision.Kind)).Inc()
	w.session.RecordDecision(decision.Kind)

	w.execute(ctx, decision)
	w.record(ctx, decision, farmSnap)
}

// sync rebuilds the shared farm state from a /profile + /land query pair.
func (w *Strategist) sync(ctx context.Context, marketSnap domain.MarketSnapshot) error {
	profile, err := w.client.Profile(ctx)
	if err != nil {
		return err
	}
	land, err := w.client.Land(ctx)
	if err != nil {
		return err
	}

	w.state.SyncServer(farm.ServerView{
		Water:             profile.Score,
		Credits:           profile.Credits,
		TotalCalls:        profile.TotalCalls,
		LandClaimed:       land.LandClaimed,
		GridSize:          land.GridSize,
		LandTiles:         land.LandTiles,
		NextExpansionCost: land.NextExpansionCost,
		Grid:              land.LandData,
	}, marketSnap, w.now())
	return nil
}

// execute performs the decided action and applies confirmed effects. State
// changes only after the server acknowledged the call.
func (w *Strategist) execute(ctx context.Context, d domain.Decision) {
	log := logger.FromContext(ctx)

	switch d.Kind {
	case domain.DecisionHarvest:
		for _, plot := range d.HarvestPlots {
			resp, err := w.client.Harvest(ctx, plot.Row, plot.Col)
			if err != nil {
				w.logActionError(log, err, "harvest", plot.Row, plot.Col)
				if !errors.Is(err, domain.ErrRejected) {
					return
				}
				continue
			}
			if err := w.state.ApplyHarvest(plot.Row, plot.Col, resp.CreditsEarned, w.now()); err != nil {
				log.Warn(LogMsgActionFailed, "action", "harvest", "error", err)
				continue
			}
			w.session.RecordHarvest(1, resp.CreditsEarned)
			metrics.CropsHarvested.WithLabelValues(plot.CropType).Inc()
			metrics.CreditsEarned.Add(resp.CreditsEarned)
		}

	case domain.DecisionClaimLand:
		resp, err := w.client.ClaimLand(ctx)
		if err != nil {
			w.logActionError(log, err, "claim_land", 0, 0)
			return
		}
		w.state.ApplyClaim(resp.Score, w.now())
		w.session.RecordExpansion()
		metrics.LandExpansions.Inc()

	case domain.DecisionExpandLand:
		resp, err := w.client.ExpandLand(ctx)
		if err != nil {
			w.logActionError(log, err, "expand_land", 0, 0)
			return
		}
		w.state.ApplyExpand(resp.GridSize, resp.Score, w.now())
		w.session.RecordExpansion()
		metrics.LandExpansions.Inc()

	case domain.DecisionPlant:
		resp, err := w.client.Plant(ctx, d.Crop.Type, d.Plot.Row, d.Plot.Col)
		if err != nil {
			w.logActionError(log, err, "plant", d.Plot.Row, d.Plot.Col)
			return
		}
		if err := w.state.ApplyPlant(d.Plot.Row, d.Plot.Col, d.Crop, resp.Score, w.now()); err != nil {
			log.Warn(LogMsgActionFailed, "action", "plant", "error", err)
			return
		}
		w.session.RecordPlant()
		metrics.CropsPlanted.WithLabelValues(d.Crop.Type).Inc()

	case domain.DecisionWait:
		// Nothing to do until the next cycle.
	}
}

// record writes the decision and its confirmed deltas to the history store.
func (w *Strategist) record(ctx context.Context, d domain.Decision, before domain.FarmSnapshot) {
	if w.recorder == nil {
		return
	}

	after := w.state.Snapshot()
	rec := history.Record{
		DecidedAt:    d.DecidedAt,
		Kind:         d.Kind,
		Reason:       d.Reason,
		WaterDelta:   after.Water - before.Water,
		CreditsDelta: after.Credits - before.Credits,
	}
	if d.Kind == domain.DecisionPlant {
		rec.CropType = d.Crop.Type
		rec.PlotRow = d.Plot.Row
		rec.PlotCol = d.Plot.Col
	}

	if err := w.recorder.RecordDecision(ctx, rec); err != nil {
		logger.FromContext(ctx).Warn(LogMsgHistoryWriteFailed, "error", err)
	}
}

func (w *Strategist) logActionError(log *slog.Logger, err error, action string, row, col int) {
	if errors.Is(err, domain.ErrRejected) {
		log.Warn(LogMsgActionRejected, "action", action, "row", row, "col", col, "error", err)
		return
	}
	log.Warn(LogMsgActionFailed, "action", action, "row", row, "col", col, "error", err)
}

// Shutdown stops the loop and waits for an in-flight cycle to finish.
func (w *Strategist) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgStrategistShutdown)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgStrategistTimeout)
		return ctx.Err()
	}
}
