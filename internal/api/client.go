package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/HarvestBot_Go/internal/domain"
	"github.com/osse101/HarvestBot_Go/internal/logger"
	"github.com/osse101/HarvestBot_Go/internal/metrics"
)

// RetryPolicy bounds the exponential backoff applied to transient failures.
type RetryPolicy struct {
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	MaxAttempts int
}

// DefaultRetryPolicy returns the stock retry configuration.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseDelay:   DefaultRetryBaseDelay,
		MaxDelay:    DefaultRetryMaxDelay,
		MaxAttempts: DefaultRetryMaxAttempts,
	}
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPTimeout  time.Duration
	SafetyMargin time.Duration
	Retry        RetryPolicy
}

// Client is the authenticated HTTP transport to the HappyHarvest server.
// It owns the Credential lifecycle and the retry policy; it holds no other
// farm-domain state.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	retry        RetryPolicy
	tokens       *tokenManager
	validate     *validator.Validate
}

// NewClient creates a client for the given server.
func NewClient(opts Options) *Client {
	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	retry := opts.Retry
	if retry.MaxAttempts < 1 {
		retry = DefaultRetryPolicy()
	}

	c := &Client{
		baseURL:      opts.BaseURL,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		retry:        retry,
		validate:     validator.New(),
	}
	c.tokens = newTokenManager(opts.SafetyMargin, c.exchangeToken)
	return c
}

// SetCredentials installs issued client credentials after registration.
func (c *Client) SetCredentials(clientID, clientSecret string) {
	c.clientID = clientID
	c.clientSecret = clientSecret
}

// Credential returns a copy of the current access credential.
func (c *Client) Credential() domain.Credential {
	return c.tokens.Credential()
}

// EnsureFreshToken proactively refreshes the token when it is near expiry.
// Safe to call concurrently with in-flight requests; duplicate triggers
// block on the single exchange rather than issuing their own.
func (c *Client) EnsureFreshToken(ctx context.Context) error {
	return c.tokens.EnsureFresh(ctx)
}

// TokenNearExpiry reports whether the proactive renewal should fire now.
func (c *Client) TokenNearExpiry(now time.Time) bool {
	return c.tokens.NearExpiry(now)
}

// Register creates a new farmer account. One-time call: it is issued exactly
// once with no retry of any kind, since a duplicate registration would burn
// the farmer name.
func (c *Client) Register(ctx context.Context, farmerName string) (*RegisterResponse, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegistering, "farmer", farmerName)

	var out RegisterResponse
	if err := c.once(ctx, http.MethodPost, EndpointRegister, RegisterRequest{PlayerName: farmerName}, &out, ""); err != nil {
		return nil, err
	}

	log.Info(LogMsgRegistered, "farmer", farmerName)
	return &out, nil
}

// CollectWater collects the regenerated water.
func (c *Client) CollectWater(ctx context.Context) (*CollectResponse, error) {
	var out CollectResponse
	if err := c.authed(ctx, http.MethodPost, EndpointCollect, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the farmer's account state.
func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.authed(ctx, http.MethodGet, EndpointProfile, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Land fetches the farm grid.
func (c *Client) Land(ctx context.Context) (*LandResponse, error) {
	var out LandResponse
	if err := c.authed(ctx, http.MethodGet, EndpointLand, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Crops fetches live market pricing. Unauthenticated.
func (c *Client) Crops(ctx context.Context) (*CropsResponse, error) {
	var out CropsResponse
	if err := c.call(ctx, http.MethodGet, EndpointCrops, nil, &out, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimLand claims the initial plot of land.
func (c *Client) ClaimLand(ctx context.Context) (*ClaimLandResponse, error) {
	var out ClaimLandResponse
	if err := c.authed(ctx, http.MethodPost, EndpointClaimLand, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExpandLand expands the farm grid by one size step.
func (c *Client) ExpandLand(ctx context.Context) (*ExpandLandResponse, error) {
	var out ExpandLandResponse
	if err := c.authed(ctx, http.MethodPost, EndpointExpandLand, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Plant plants a crop at the given grid position.
func (c *Client) Plant(ctx context.Context, cropType string, row, col int) (*PlantResponse, error) {
	var out PlantResponse
	if err := c.authed(ctx, http.MethodPost, EndpointPlant, PlantRequest{CropType: cropType, Row: row, Col: col}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Harvest harvests the mature crop at the given grid position.
func (c *Client) Harvest(ctx context.Context, row, col int) (*HarvestResponse, error) {
	var out HarvestResponse
	if err := c.authed(ctx, http.MethodPost, EndpointHarvest, HarvestRequest{Row: row, Col: col}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leaderboard fetches the current ranking. Unauthenticated.
func (c *Client) Leaderboard(ctx context.Context) (*LeaderboardResponse, error) {
	var out LeaderboardResponse
	if err := c.call(ctx, http.MethodGet, EndpointLeaderboard, nil, &out, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

// exchangeToken performs the /auth/token exchange. It is invoked by the
// token manager with its lock held, which is what makes refresh mutually
// exclusive across all triggers.
func (c *Client) exchangeToken(ctx context.Context) (domain.Credential, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return domain.Credential{}, fmt.Errorf("%w: %s", domain.ErrAuth, domain.ErrMsgNoCredentials)
	}

	payload := TokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		GrantType:    GrantTypeClientCredentials,
	}

	var out TokenResponse
	if err := c.call(ctx, http.MethodPost, EndpointToken, payload, &out, ""); err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.ResultError).Inc()
		logger.FromContext(ctx).Error(LogMsgTokenRefreshFail, "error", err)
		return domain.Credential{}, fmt.Errorf("%w: token exchange: %v", domain.ErrAuth, err)
	}

	ttl := time.Duration(out.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	cred := domain.Credential{
		AccessToken: out.AccessToken,
		ExpiresAt:   time.Now().Add(ttl),
	}

	metrics.TokenRefreshes.WithLabelValues(metrics.ResultOK).Inc()
	metrics.TokenExpirySeconds.Set(ttl.Seconds())
	logger.FromContext(ctx).Info(LogMsgTokenRefreshed, "expires_at", cred.ExpiresAt)
	return cred, nil
}

// authed issues an authenticated call: it checks credential freshness first
// (blocking refresh if stale), and on a 401 invalidates the rejected token,
// refreshes exactly once, and retries the original call exactly once.
func (c *Client) authed(ctx context.Context, method, path string, payload, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	err = c.call(ctx, method, path, payload, out, token)
	if !errors.Is(err, domain.ErrAuth) {
		return err
	}

	logger.FromContext(ctx).Warn(LogMsgUnauthorized, "endpoint", path)
	c.tokens.Invalidate(token)

	token, refreshErr := c.tokens.Token(ctx)
	if refreshErr != nil {
		return refreshErr
	}
	return c.call(ctx, method, path, payload, out, token)
}

// call issues one logical request with backoff retry on transient failures.
// 429, 5xx and network errors are retried up to the attempt budget; other
// failures surface immediately.
func (c *Client) call(ctx context.Context, method, path string, payload, out any, token string) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			metrics.APIRetries.WithLabelValues(path).Inc()
			select {
			case <-time.After(c.backoffDelay(attempt)):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", domain.ErrTransient, ctx.Err())
			}
		}

		err := c.once(ctx, method, path, payload, out, token)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrTransient) {
			return err
		}

		lastErr = err
		log.Warn(LogMsgRequestRetrying,
			"endpoint", path,
			"attempt", attempt+1,
			"max_attempts", c.retry.MaxAttempts,
			"error", err)
	}

	log.Error(LogMsgRetriesExhausted, "endpoint", path, "attempts", c.retry.MaxAttempts, "error", lastErr)
	return lastErr
}

// once issues exactly one HTTP request and classifies the outcome.
func (c *Client) once(ctx context.Context, method, path string, payload, out any, token string) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encode %s payload: %v", domain.ErrRejected, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request for %s: %v", domain.ErrRejected, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIRequests.WithLabelValues(path, metrics.ResultError).Inc()
		return fmt.Errorf("%w: %s: %v", domain.ErrTransient, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequests.WithLabelValues(path, metrics.ResultError).Inc()
		return fmt.Errorf("%w: read %s response: %v", domain.ErrTransient, path, err)
	}

	if err := c.classify(resp.StatusCode, path, data); err != nil {
		metrics.APIRequests.WithLabelValues(path, metrics.ResultError).Inc()
		return err
	}

	if out != nil {
		if err := c.decode(data, out); err != nil {
			metrics.APIRequests.WithLabelValues(path, metrics.ResultError).Inc()
			return fmt.Errorf("%w: %w: %s: %v", domain.ErrRejected, domain.ErrMalformedResponse, path, err)
		}
	}

	metrics.APIRequests.WithLabelValues(path, metrics.ResultOK).Inc()
	return nil
}

// classify maps an HTTP status to the error taxonomy.
//   - 2xx: success
//   - 401: auth failure, handled by the refresh-and-retry path
//   - 429, 5xx: transient, retried with backoff
//   - other 4xx: game-rule rejection, never retried
func (c *Client) classify(status int, path string, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s returned 401", domain.ErrAuth, path)
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: %s returned %d", domain.ErrTransient, path, status)
	default:
		var e errorBody
		_ = json.Unmarshal(body, &e)
		if detail := e.text(); detail != "" {
			return fmt.Errorf("%w: %s returned %d: %s", domain.ErrRejected, path, status, detail)
		}
		return fmt.Errorf("%w: %s returned %d", domain.ErrRejected, path, status)
	}
}

// decode parses a response strictly against its typed contract: unknown
// fields fail, and required/range validation runs on the result.
func (c *Client) decode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return c.validate.Struct(out)
}

// backoffDelay computes the exponential backoff with jitter for the given
// attempt number (1-based for the first retry). The jittered delay stays
// within [delay/2, delay] so retries never fire early bursts in lockstep.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.retry.BaseDelay << (attempt - 1)
	if delay > c.retry.MaxDelay || delay <= 0 {
		delay = c.retry.MaxDelay
	}
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}
