package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for job outcomes
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// ============================================================================
// Log Messages - Daily Rollover Worker
// ============================================================================

// Log messages for daily rollover worker operations
const (
	LogMsgRolloverStandby   = "Daily rollover on standby"
	LogMsgRolloverScheduled = "Daily rollover scheduled"
	LogMsgRolloverStarting  = "Daily rollover starting"
	LogMsgRolloverCompleted = "Daily rollover completed"
	LogMsgRolloverFailed    = "Daily rollover failed"
)

// ============================================================================
// Error Messages
// ============================================================================

// Error format strings for rollover step failures
const (
	ErrMsgStreakSweepFailed = "failed to reset expired streaks: %w"
	ErrMsgRotationFailed    = "failed to rotate daily challenges: %w"
)

// DayFormat is the UTC calendar-day layout stamped on rollover results
const DayFormat = "2006-01-02"

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
