package logger

// Level strings accepted in LOG_LEVEL. "warning" is tolerated as an alias
// because it keeps showing up in hand-edited .env files.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Output formats accepted in LOG_FORMAT.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "babygoats-api"
	DefaultVersion     = "dev"

	EnvironmentDev = "dev"
)

// Keys for the attributes stamped onto every record.
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
