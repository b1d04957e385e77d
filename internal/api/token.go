package api

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

// tokenManager owns the Credential. Refresh is mutually exclusive: a caller
// arriving while an exchange is in flight blocks on the same mutex, then
// re-checks freshness and observes the token the first caller obtained,
// rather than issuing a duplicate exchange.
type tokenManager struct {
	mu       sync.Mutex
	cred     domain.Credential
	margin   time.Duration
	exchange func(ctx context.Context) (domain.Credential, error)
}

func newTokenManager(margin time.Duration, exchange func(ctx context.Context) (domain.Credential, error)) *tokenManager {
	if margin <= 0 {
		margin = DefaultSafetyMargin
	}
	return &tokenManager{margin: margin, exchange: exchange}
}

// Token returns a fresh access token, performing a blocking refresh first if
// the cached one is missing, expired, or within the safety margin of expiry.
// A failed refresh leaves the previous credential in place.
func (m *tokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred.Fresh(time.Now(), m.margin) {
		return m.cred.AccessToken, nil
	}

	cred, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}
	m.cred = cred
	return cred.AccessToken, nil
}

// EnsureFresh refreshes the credential when it is near expiry and is a no-op
// otherwise. The proactive renewal worker and the call-time check share this
// path, so when both race only one exchange goes out.
func (m *tokenManager) EnsureFresh(ctx context.Context) error {
	_, err := m.Token(ctx)
	return err
}

// Invalidate discards the cached credential if it still matches the token
// that was rejected. A concurrent refresh may already have replaced it; in
// that case the newer credential is kept.
func (m *tokenManager) Invalidate(rejected string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred.AccessToken == rejected {
		m.cred = domain.Credential{}
	}
}

// Credential returns a copy of the current credential for observability.
func (m *tokenManager) Credential() domain.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}

// NearExpiry reports whether the credential is missing or inside the safety
// margin, meaning the renewal worker should refresh now.
func (m *tokenManager) NearExpiry(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.cred.Fresh(now, m.margin)
}
