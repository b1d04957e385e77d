package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

type fakeTokenAPI struct {
	nearExpiry atomic.Bool
	refreshes  atomic.Int32
	fail       atomic.Bool
}

func (f *fakeTokenAPI) TokenNearExpiry(now time.Time) bool {
	return f.nearExpiry.Load()
}

func (f *fakeTokenAPI) EnsureFreshToken(ctx context.Context) error {
	f.refreshes.Add(1)
	if f.fail.Load() {
		return domain.ErrAuth
	}
	return nil
}

func TestRenewalRefreshesNearExpiry(t *testing.T) {
	client := &fakeTokenAPI{}
	client.nearExpiry.Store(true)

	w := NewRenewal(client, 10*time.Millisecond)
	w.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, w.Shutdown(ctx))
	}()

	require.Eventually(t, func() bool {
		return client.refreshes.Load() >= 1
	}, time.Second, time.Millisecond)
}

func TestRenewalSkipsFreshToken(t *testing.T) {
	client := &fakeTokenAPI{}

	w := NewRenewal(client, 10*time.Millisecond)
	w.Start()

	time.Sleep(60 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	assert.Zero(t, client.refreshes.Load())
}

func TestRenewalSurvivesRefreshFailure(t *testing.T) {
	client := &fakeTokenAPI{}
	client.nearExpiry.Store(true)
	client.fail.Store(true)

	w := NewRenewal(client, 10*time.Millisecond)
	w.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, w.Shutdown(ctx))
	}()

	// Failures are logged and the loop keeps checking.
	require.Eventually(t, func() bool {
		return client.refreshes.Load() >= 2
	}, time.Second, time.Millisecond)
}
