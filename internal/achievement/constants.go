package achievement

// Placeholder fields served for hidden achievements that have not been
// earned yet
const (
	HiddenTitle       = "???"
	HiddenDescription = "Keep training to reveal this achievement"
)

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgUserIDRequired = "user id is required"
)

// Operation error messages
const (
	ErrMsgEvaluateFailed        = "failed to evaluate achievements: %w"
	ErrMsgRecordUnlockFailed    = "failed to record unlock: %w"
	ErrMsgGetAchievementsFailed = "failed to get achievements: %w"
	ErrMsgGetLevelsFailed       = "failed to get levels: %w"
	ErrMsgBrowseCatalogFailed   = "failed to browse catalog: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgAchievementUnlocked = "Achievement unlocked"
	LogMsgEvaluationComplete  = "Achievement evaluation complete"
)

// Error log messages
const (
	LogMsgFailedToPublishEvent  = "Failed to publish event"
	LogMsgFailedToRecordFeedRow = "Failed to record unlock feed row"
	LogMsgFailedToDecodePayload = "Failed to decode event payload"
	LogMsgFailedToEvaluate      = "Failed to evaluate after event"
)
