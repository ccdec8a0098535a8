package challenge

// Schema paths
const (
	PoolSchemaPath = "configs/schemas/challenges.schema.json"
)

const (
	// DayFormat is the UTC day key used for rotation and completions
	DayFormat = "2006-01-02"

	// DefaultDailyCount is how many challenges a day carries when the pool
	// config does not say otherwise
	DefaultDailyCount = 3
)

// Difficulty values allowed in the pool config
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgUserIDRequired       = "user id is required"
	ErrMsgChallengeKeyRequired = "challenge key is required"
)

// Operation error messages
const (
	ErrMsgLoadPoolFailed      = "failed to load challenge pool: %w"
	ErrMsgGetChallengesFailed = "failed to get daily challenges: %w"
	ErrMsgCompleteFailed      = "failed to complete challenge: %w"
	ErrMsgAwardPointsFailed   = "failed to award challenge points: %w"
	ErrMsgRotateFailed        = "failed to rotate daily challenges: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPoolLoaded         = "Challenge pool loaded"
	LogMsgChallengeCompleted = "Challenge completed"
	LogMsgDailyRotation      = "Daily challenges rotated"
	LogMsgDayCompletions     = "Challenge completions for day"
)

// Error log messages
const (
	LogMsgFailedToPublishEvent     = "Failed to publish event"
	LogMsgFailedToAwardPoints      = "Failed to award challenge points"
	LogMsgFailedToCountCompletions = "Failed to count challenge completions"
)
