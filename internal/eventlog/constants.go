package eventlog

// DefaultRetentionDays is how long audit rows are kept when no override
// is configured
const DefaultRetentionDays = 90

// DefaultQueryLimit is applied to event queries that do not set a limit
const DefaultQueryLimit = 50

// JSON payload field keys
const (
	PayloadKeyUserID = "user_id"
)

// Log messages - service events
const (
	LogMsgPayloadNotLoggable = "Event payload is not loggable, skipping"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
