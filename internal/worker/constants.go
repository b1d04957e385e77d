package worker

// Log messages for workers.
const (
	LogMsgCollectorStarted   = "Water collector started"
	LogMsgCollectSucceeded   = "Collected water"
	LogMsgCollectFailed      = "Water collection failed, waiting a full period"
	LogMsgCollectorShutdown  = "Water collector shutdown complete"
	LogMsgCollectorTimeout   = "Water collector shutdown timeout"
	LogMsgRenewalStarted     = "Token renewal worker started"
	LogMsgTokenRefreshed     = "Access token refreshed proactively"
	LogMsgTokenRefreshFailed = "Proactive token refresh failed, call-time refresh will retry"
	LogMsgRenewalShutdown    = "Token renewal worker shutdown complete"
	LogMsgRenewalTimeout     = "Token renewal worker shutdown timeout"
	LogMsgStrategistStarted  = "Strategist started"
	LogMsgCycleStarted       = "Strategy cycle started"
	LogMsgSyncFailed         = "Farm sync failed, skipping cycle"
	LogMsgMarketUnavailable  = "Market fetch failed, using last known snapshot"
	LogMsgDecisionMade       = "Decision made"
	LogMsgActionRejected     = "Action rejected by server, local view stale until next sync"
	LogMsgActionFailed       = "Action failed"
	LogMsgHistoryWriteFailed = "Failed to persist decision history"
	LogMsgStrategistShutdown = "Strategist shutdown complete"
	LogMsgStrategistTimeout  = "Strategist shutdown timeout"
)
