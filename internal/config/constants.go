package config

import "time"

// Environment variable names
const (
	EnvBaseURL               = "BASE_URL"
	EnvFarmerName            = "FARMER_NAME"
	EnvClientID              = "CLIENT_ID"
	EnvClientSecret          = "CLIENT_SECRET"
	EnvCollectInterval       = "COLLECT_INTERVAL"
	EnvTokenRefreshInterval  = "TOKEN_REFRESH_INTERVAL"
	EnvTokenSafetyMargin     = "TOKEN_SAFETY_MARGIN"
	EnvStrategyInterval      = "STRATEGY_INTERVAL"
	EnvMarketRefreshInterval = "MARKET_REFRESH_INTERVAL"
	EnvMinWaterReserve       = "MIN_WATER_RESERVE"
	EnvExpansionROIThreshold = "EXPANSION_ROI_THRESHOLD"
	EnvPolicyFile            = "POLICY_FILE"
	EnvHTTPTimeout           = "HTTP_TIMEOUT"
	EnvRetryBaseDelay        = "RETRY_BASE_DELAY"
	EnvRetryMaxDelay         = "RETRY_MAX_DELAY"
	EnvRetryMaxAttempts      = "RETRY_MAX_ATTEMPTS"
	EnvStatusPort            = "STATUS_PORT"
	EnvHistoryDBPath         = "HISTORY_DB_PATH"
	EnvEnvFile               = "ENV_FILE"
	EnvLogLevel              = "LOG_LEVEL"
	EnvLogFormat             = "LOG_FORMAT"
	EnvEnvironment           = "ENVIRONMENT"
)

// Default configuration values
const (
	DefaultBaseURL = "https://happyharvest.fun"

	// Collecting earlier than the server period forfeits a penalty, so the
	// collector anchors its schedule to this value.
	DefaultCollectInterval = 30 * time.Second

	// Tokens expire after five minutes; renew at four with a one-minute margin.
	DefaultTokenRefreshInterval = 4 * time.Minute
	DefaultTokenSafetyMargin    = time.Minute

	DefaultStrategyInterval = 30 * time.Second

	// Offset from the strategy period so a cycle is not systematically
	// reading a market snapshot that is about to change.
	DefaultMarketRefreshInterval = 65 * time.Second

	DefaultMinWaterReserve       = 8
	DefaultExpansionROIThreshold = 0.15

	DefaultHTTPTimeout      = 10 * time.Second
	DefaultRetryBaseDelay   = time.Second
	DefaultRetryMaxDelay    = 30 * time.Second
	DefaultRetryMaxAttempts = 4

	DefaultStatusPort    = 8081
	DefaultHistoryDBPath = "harvestbot.db"
	DefaultEnvFile       = ".env"

	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
)
