package api

import "time"

// Endpoint paths on the HappyHarvest server
const (
	EndpointRegister    = "/register"
	EndpointToken       = "/auth/token"
	EndpointCollect     = "/collect"
	EndpointProfile     = "/profile"
	EndpointClaimLand   = "/claimLand"
	EndpointExpandLand  = "/expandLand"
	EndpointLand        = "/land"
	EndpointCrops       = "/crops"
	EndpointPlant       = "/plant"
	EndpointHarvest     = "/harvest"
	EndpointLeaderboard = "/leaderboard"
)

// Default client configuration values
const (
	// DefaultHTTPTimeout bounds one request/response round trip.
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultRetryBaseDelay is the initial backoff delay for transient failures.
	DefaultRetryBaseDelay = 1 * time.Second

	// DefaultRetryMaxDelay caps the backoff delay between attempts.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultRetryMaxAttempts bounds total attempts per call (first try included).
	DefaultRetryMaxAttempts = 4

	// DefaultSafetyMargin is how long before expiry a token counts as stale.
	DefaultSafetyMargin = time.Minute

	// DefaultTokenTTL applies when the server omits expires_in.
	DefaultTokenTTL = 5 * time.Minute

	// UserAgent identifies the bot to the game server.
	UserAgent = "HarvestBot/1.0"

	// GrantTypeClientCredentials is the OAuth grant used by /auth/token.
	GrantTypeClientCredentials = "client_credentials"
)

// Log messages
const (
	LogMsgRequestRetrying  = "Request failed, retrying with backoff"
	LogMsgRetriesExhausted = "Retry budget exhausted"
	LogMsgRequestRejected  = "Request rejected by game rules"
	LogMsgTokenRefreshed   = "Access token refreshed"
	LogMsgTokenRefreshFail = "Token refresh failed"
	LogMsgUnauthorized     = "Server returned 401, refreshing token and retrying once"
	LogMsgRegistering      = "Registering new farmer"
	LogMsgRegistered       = "Farmer registered"
)
