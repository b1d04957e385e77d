package logger

// Log Level String Values
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log Format String Values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Service Configuration Values
const (
	DefaultServiceName = "harvest-bot"
	DefaultVersion     = "dev"
)

// Environment String Values
const (
	EnvironmentDev        = "dev"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "prod"
)

// Log Attribute Keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyCycleID     = "cycle_id"
)
