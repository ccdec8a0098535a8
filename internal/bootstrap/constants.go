package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingBabyGoats   = "Starting Baby Goats progression engine"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Config Sync Messages
// =============================================================================

const (
	// Catalog and challenge pool log messages
	LogMsgUsingCompiledCatalog = "Using compiled-in achievement catalog"
	LogMsgLoadingCatalogFile   = "Loading achievement catalog override..."
	LogMsgSyncingCatalog       = "Syncing achievement catalog to database..."
	LogMsgCatalogSynced        = "Achievement catalog synced successfully"
	LogMsgCatalogUnchanged     = "Achievement catalog unchanged, sync skipped"
	LogMsgChallengePoolLoaded  = "Challenge pool loaded"

	// Catalog and challenge pool error messages
	ErrMsgFailedLoadCatalog    = "failed to load achievement catalog config"
	ErrMsgInvalidCatalog       = "invalid achievement catalog config"
	ErrMsgFailedSyncCatalog    = "failed to sync achievement catalog to database"
	ErrMsgFailedLoadChallenges = "failed to load challenge pool config"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgAchievementHandlerRegistered = "Achievement evaluation handler registered"
	LogMsgMetricsCollectorRegistered   = "Metrics collector registered"
	LogMsgEventLoggerInitialized       = "Event logger initialized"
	LogMsgSSESubscriberRegistered      = "Dashboard stream subscriber registered"
	LogMsgAnnouncerDisabled            = "Discord announcer disabled, no bot token configured"
	LogMsgAnnouncerEnabled             = "Discord announcer enabled"
	ErrMsgFailedRegisterMetrics        = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger   = "failed to subscribe event logger"
	ErrMsgFailedCreateAnnouncer        = "failed to create Discord announcer"
	ErrMsgFailedStartAnnouncer         = "failed to start Discord announcer"
)

// =============================================================================
// Background Job Configuration
// =============================================================================

const (
	// JobWorkerCount is the number of goroutines draining the shared job pool
	JobWorkerCount = 2

	// JobQueueSize bounds the shared job pool queue
	JobQueueSize = 16

	// EventLogCleanupInterval is how often expired audit rows are purged
	EventLogCleanupInterval = 24 * time.Hour
)

const (
	LogMsgBackgroundJobsStarted = "Background jobs started"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgRolloverShutdownFailed     = "Rollover worker shutdown failed"
	LogMsgAnnouncerShutdownFailed    = "Discord announcer shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
