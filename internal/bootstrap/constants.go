package bootstrap

import "time"

// ShutdownTimeout bounds how long graceful shutdown waits for in-flight
// work before giving up.
const ShutdownTimeout = 15 * time.Second

// Log messages.
const (
	LogMsgConfigWarning        = "Configuration warning"
	LogMsgRegistering          = "No credentials configured, registering new farmer"
	LogMsgRegistered           = "Farmer registered, credentials persisted"
	LogMsgCredentialsSaveFail  = "Failed to persist issued credentials, they are only valid for this session"
	LogMsgHistoryDisabled      = "Decision history unavailable, continuing without it"
	LogMsgBotStarted           = "HarvestBot started"
	LogMsgShuttingDown         = "Shutting down"
	LogMsgServerForcedShutdown = "Status server forced shutdown"
	LogMsgShutdownComplete     = "Shutdown complete"
)
