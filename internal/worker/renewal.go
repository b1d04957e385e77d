package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/logger"
)

// TokenAPI is the client slice the renewal worker depends on.
type TokenAPI interface {
	TokenNearExpiry(now time.Time) bool
	EnsureFreshToken(ctx context.Context) error
}

// Renewal proactively refreshes the access token before it expires so the
// other tasks rarely pay refresh latency inside their own cycles. It is an
// optimization only: every API call still checks freshness itself, so a
// failed proactive refresh costs nothing but a log line.
type Renewal struct {
	client   TokenAPI
	interval time.Duration
	now      func() time.Time

	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewRenewal creates a renewal worker on the given check interval.
func NewRenewal(client TokenAPI, interval time.Duration) *Renewal {
	return &Renewal{
		client:   client,
		interval: interval,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}
}

// Start launches the renewal loop.
func (w *Renewal) Start() {
	logger.FromContext(context.Background()).Info(LogMsgRenewalStarted, "interval", w.interval)
	w.wg.Add(1)
	go w.run()
}

func (w *Renewal) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdown:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Renewal) check() {
	if !w.client.TokenNearExpiry(w.now()) {
		return
	}

	ctx := context.Background()
	log := logger.FromContext(ctx)

	if err := w.client.EnsureFreshToken(ctx); err != nil {
		log.Warn(LogMsgTokenRefreshFailed, "error", err)
		return
	}
	log.Info(LogMsgTokenRefreshed)
}

// Shutdown stops the loop and waits for an in-flight refresh to finish.
func (w *Renewal) Shutdown(ctx context.Context) error {
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
		log.Info(LogMsgRenewalShutdown)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgRenewalTimeout)
		return ctx.Err()
	}
}
