package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/HarvestBot_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	// Game server
	BaseURL      string
	FarmerName   string
	ClientID     string
	ClientSecret string

	// Scheduling
	CollectInterval       time.Duration // server-mandated collection period
	TokenRefreshInterval  time.Duration // proactive renewal check period
	TokenSafetyMargin     time.Duration // refresh this long before expiry
	StrategyInterval      time.Duration // decision cycle period
	MarketRefreshInterval time.Duration // /crops fetch cadence, offset from StrategyInterval

	// Strategy
	MinWaterReserve       int
	ExpansionROIThreshold float64
	PolicyFile            string

	// API client retry policy
	HTTPTimeout      time.Duration
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration
	RetryMaxAttempts int

	// Local surfaces
	StatusPort    int
	HistoryDBPath string
	EnvFile       string

	// Logging
	LogLevel    string
	LogFormat   string
	Environment string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:       getEnv(EnvBaseURL, DefaultBaseURL),
		FarmerName:    getEnv(EnvFarmerName, ""),
		ClientID:      getEnv(EnvClientID, ""),
		ClientSecret:  getEnv(EnvClientSecret, ""),
		PolicyFile:    getEnv(EnvPolicyFile, ""),
		HistoryDBPath: getEnv(EnvHistoryDBPath, DefaultHistoryDBPath),
		EnvFile:       getEnv(EnvEnvFile, DefaultEnvFile),
		LogLevel:      getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:     getEnv(EnvLogFormat, DefaultLogFormat),
		Environment:   getEnv(EnvEnvironment, DefaultEnvironment),
	}

	var err error
	if cfg.CollectInterval, err = getDurationEnv(EnvCollectInterval, DefaultCollectInterval); err != nil {
		return nil, err
	}
	if cfg.TokenRefreshInterval, err = getDurationEnv(EnvTokenRefreshInterval, DefaultTokenRefreshInterval); err != nil {
		return nil, err
	}
	if cfg.TokenSafetyMargin, err = getDurationEnv(EnvTokenSafetyMargin, DefaultTokenSafetyMargin); err != nil {
		return nil, err
	}
	if cfg.StrategyInterval, err = getDurationEnv(EnvStrategyInterval, DefaultStrategyInterval); err != nil {
		return nil, err
	}
	if cfg.MarketRefreshInterval, err = getDurationEnv(EnvMarketRefreshInterval, DefaultMarketRefreshInterval); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getDurationEnv(EnvHTTPTimeout, DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.RetryBaseDelay, err = getDurationEnv(EnvRetryBaseDelay, DefaultRetryBaseDelay); err != nil {
		return nil, err
	}
	if cfg.RetryMaxDelay, err = getDurationEnv(EnvRetryMaxDelay, DefaultRetryMaxDelay); err != nil {
		return nil, err
	}

	if cfg.MinWaterReserve, err = getIntEnv(EnvMinWaterReserve, DefaultMinWaterReserve); err != nil {
		return nil, err
	}
	if cfg.RetryMaxAttempts, err = getIntEnv(EnvRetryMaxAttempts, DefaultRetryMaxAttempts); err != nil {
		return nil, err
	}
	if cfg.StatusPort, err = getIntEnv(EnvStatusPort, DefaultStatusPort); err != nil {
		return nil, err
	}
	if cfg.ExpansionROIThreshold, err = getFloatEnv(EnvExpansionROIThreshold, DefaultExpansionROIThreshold); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces the invariants the scheduling logic relies on.
func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: %s must not be empty", domain.ErrFatal, EnvBaseURL)
	}
	for name, d := range map[string]time.Duration{
		EnvCollectInterval:       c.CollectInterval,
		EnvTokenRefreshInterval:  c.TokenRefreshInterval,
		EnvTokenSafetyMargin:     c.TokenSafetyMargin,
		EnvStrategyInterval:      c.StrategyInterval,
		EnvMarketRefreshInterval: c.MarketRefreshInterval,
		EnvHTTPTimeout:           c.HTTPTimeout,
		EnvRetryBaseDelay:        c.RetryBaseDelay,
		EnvRetryMaxDelay:         c.RetryMaxDelay,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", domain.ErrFatal, name, d)
		}
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("%w: %s must be at least 1", domain.ErrFatal, EnvRetryMaxAttempts)
	}
	if c.MinWaterReserve < 0 {
		return fmt.Errorf("%w: %s must not be negative", domain.ErrFatal, EnvMinWaterReserve)
	}
	return nil
}

// HasCredentials reports whether issued client credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q: %v", domain.ErrFatal, key, value, err)
	}
	return n, nil
}

func getFloatEnv(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q: %v", domain.ErrFatal, key, value, err)
	}
	return f, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q: %v", domain.ErrFatal, key, value, err)
	}
	return d, nil
}
