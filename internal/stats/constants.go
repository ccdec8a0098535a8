package stats

import "time"

// ============================================================================
// Query Limits
// ============================================================================

// DefaultLeaderboardLimit is the number of entries returned by leaderboard
// queries when no limit is specified or limit <= 0
const DefaultLeaderboardLimit = 10

// MaxLeaderboardLimit caps leaderboard queries regardless of what the
// caller asks for
const MaxLeaderboardLimit = 100

// ============================================================================
// Day Handling
// ============================================================================

// DayFormat is the UTC calendar-day layout used for streak comparisons
const DayFormat = "2006-01-02"

// AllTimeStartYear is the year used as the baseline for "all time" queries
const AllTimeStartYear = 2000

// AllTimeStartMonth is the month used as the baseline for "all time" queries
const AllTimeStartMonth = time.January

// AllTimeStartDay is the day used as the baseline for "all time" queries
const AllTimeStartDay = 1

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgUserIDRequired = "user id is required"
	ErrMsgNegativePoints = "points must be non-negative"
)

// Operation error messages
const (
	ErrMsgRecordEventFailed       = "failed to record event: %w"
	ErrMsgAdvanceStreakFailed     = "failed to advance streak: %w"
	ErrMsgGetStreakFailed         = "failed to get streak: %w"
	ErrMsgGetCountersFailed       = "failed to assemble counters: %w"
	ErrMsgGetUserEventsFailed     = "failed to get user events: %w"
	ErrMsgGetUserEventCountsFail  = "failed to get user event counts: %w"
	ErrMsgGetUserPointsFailed     = "failed to get user points in range: %w"
	ErrMsgGetPillarGoalsFailed    = "failed to get pillar goals in range: %w"
	ErrMsgGetTotalEventCountFail  = "failed to get total event count: %w"
	ErrMsgGetEventCountsFailed    = "failed to get event counts: %w"
	ErrMsgGetLeaderboardFailed    = "failed to get leaderboard: %w"
	ErrMsgResetStreaksFailed      = "failed to reset expired streaks: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

// Service operation log messages
const (
	LogMsgActivityRecorded     = "Activity recorded"
	LogMsgStreakAdvanced       = "Streak advanced"
	LogMsgStreakRestarted      = "Streak restarted after gap"
	LogMsgLevelUp              = "Athlete leveled up"
	LogMsgRetrievedUserStats   = "Retrieved user stats"
	LogMsgRetrievedSystemStats = "Retrieved system stats"
	LogMsgRetrievedLeaderboard = "Retrieved leaderboard"
	LogMsgExpiredStreaksReset  = "Expired streaks reset"
)

// Error log messages
const (
	LogMsgFailedToRecordEvent     = "Failed to record event"
	LogMsgFailedToAdvanceStreak   = "Failed to advance streak"
	LogMsgFailedToCheckLevelUp    = "Failed to check for level up"
	LogMsgFailedToPublishEvent    = "Failed to publish event"
	LogMsgFailedToGetLeaderboard  = "Failed to get leaderboard"
	LogMsgFailedToRecordStreakRow = "Failed to record streak history event"
)
