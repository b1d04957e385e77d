package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/api"
	"github.com/osse101/HarvestBot_Go/internal/domain"
	"github.com/osse101/HarvestBot_Go/internal/farm"
	"github.com/osse101/HarvestBot_Go/internal/history"
	"github.com/osse101/HarvestBot_Go/internal/logger"
	"github.com/osse101/HarvestBot_Go/internal/metrics"
	"github.com/osse101/HarvestBot_Go/internal/stats"
)

// WaterAPI is the client slice the collector depends on.
type WaterAPI interface {
	CollectWater(ctx context.Context) (*api.CollectResponse, error)
}

// DecisionRecorder persists executed actions. A nil recorder disables history.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, rec history.Record) error
}

// Collector claims the periodic water grant. The schedule is anchored to the
// last successful collection: the next attempt fires at lastSuccess+period
// and never earlier, so a slow attempt cannot compress the interval. If an
// attempt is late the next one fires immediately, exactly once, then the
// anchor advances. A failed attempt waits a full period before retrying.
type Collector struct {
	client   WaterAPI
	state    *farm.State
	session  *stats.Session
	recorder DecisionRecorder
	period   time.Duration
	now      func() time.Time

	mu          sync.Mutex
	lastSuccess time.Time
	shutdown    chan struct{}
	wg          sync.WaitGroup
}

// NewCollector creates a collector on the given period.
func NewCollector(client WaterAPI, state *farm.State, session *stats.Session, recorder DecisionRecorder, period time.Duration) *Collector {
	return &Collector{
		client:   client,
		state:    state,
		session:  session,
		recorder: recorder,
		period:   period,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}
}

// Start launches the collection loop. The first attempt fires immediately.
func (w *Collector) Start() {
	logger.FromContext(context.Background()).Info(LogMsgCollectorStarted, "period", w.period)
	w.wg.Add(1)
	go w.run()
}

func (w *Collector) run() {
	defer w.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-w.shutdown:
			return
		case <-timer.C:
		}
		timer.Reset(w.collect())
	}
}

// collect performs one attempt and returns the delay until the next one.
func (w *Collector) collect() time.Duration {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	before := w.state.Snapshot().Water

	resp, err := w.client.CollectWater(ctx)
	attemptedAt := w.now()
	if err != nil {
		log.Warn(LogMsgCollectFailed, "error", err, "retry_in", w.period)
		return w.period
	}

	w.state.ApplyCollect(resp.Score, attemptedAt)

	gained := resp.Score - before
	if gained < 0 {
		// Another task spent water between the read and the grant.
		gained = 0
	}
	w.session.RecordWater(gained)
	metrics.WaterCollected.Add(float64(gained))

	w.mu.Lock()
	w.lastSuccess = attemptedAt
	w.mu.Unlock()

	log.Info(LogMsgCollectSucceeded, "water", resp.Score, "gained", gained)

	if w.recorder != nil {
		rec := history.Record{
			DecidedAt:  attemptedAt,
			Kind:       domain.DecisionCollectWater,
			Reason:     "periodic water collection",
			WaterDelta: gained,
		}
		if err := w.recorder.RecordDecision(ctx, rec); err != nil {
			log.Warn(LogMsgHistoryWriteFailed, "error", err)
		}
	}

	return nextAttemptDelay(attemptedAt, w.now(), w.period)
}

// Shutdown stops the loop and waits for an in-flight attempt to finish.
func (w *Collector) Shutdown(ctx context.Context) error {
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
		log.Info(LogMsgCollectorShutdown)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgCollectorTimeout)
		return ctx.Err()
	}
}

// nextAttemptDelay anchors the schedule: the next attempt is due a full
// period after the last success, never earlier, and immediately if that
// instant has already passed.
func nextAttemptDelay(lastSuccess, now time.Time, period time.Duration) time.Duration {
	if d := lastSuccess.Add(period).Sub(now); d > 0 {
		return d
	}
	return 0
}
