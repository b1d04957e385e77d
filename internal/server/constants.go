package server

// RecentDecisionLimit caps the decision history included in /status.
const RecentDecisionLimit = 20

// Log messages.
const (
	LogMsgServerStarting     = "Status server starting"
	LogMsgHistoryQueryFailed = "Failed to query decision history"
	LogMsgEncodeFailed       = "Failed to encode JSON response"
)
