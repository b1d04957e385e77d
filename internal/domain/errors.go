package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// API error classes
	ErrMsgAuthFailed       = "authentication failed"
	ErrMsgTransientFailure = "transient api failure"
	ErrMsgRejected         = "request rejected by server"

	// Startup errors
	ErrMsgFatalConfig   = "fatal configuration error"
	ErrMsgNoCredentials = "client credentials not set"

	// Parse errors (classified as rejected - retrying cannot fix a contract mismatch)
	ErrMsgMalformedResponse = "malformed api response"

	// Farm state errors
	ErrMsgPlotOccupied = "plot already occupied"
	ErrMsgPlotNotFound = "plot not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrAuth marks credential failures that a plain retry cannot fix.
	ErrAuth = errors.New(ErrMsgAuthFailed)

	// ErrTransient marks network/429/5xx failures that exhausted their retry budget.
	ErrTransient = errors.New(ErrMsgTransientFailure)

	// ErrRejected marks 4xx game-rule violations. Never retried; the caller
	// must treat it as "this action's preconditions no longer hold".
	ErrRejected = errors.New(ErrMsgRejected)

	// ErrFatal marks startup failures (bad config, missing credentials).
	ErrFatal = errors.New(ErrMsgFatalConfig)

	ErrMalformedResponse = errors.New(ErrMsgMalformedResponse)

	ErrPlotOccupied = errors.New(ErrMsgPlotOccupied)
	ErrPlotNotFound = errors.New(ErrMsgPlotNotFound)
)
