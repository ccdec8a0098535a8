package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - User Operations
const (
	ErrMsgInvalidUserID             = "invalid user id"
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToUpdateUser        = "failed to update user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToGetUserByUsername = "failed to get user by username"
	ErrMsgFailedToGetUserByDiscord  = "failed to get user by discord id"
	ErrMsgFailedToDeleteUser        = "failed to delete user"
	ErrMsgFailedToSearchUsers       = "failed to search users"
	ErrMsgFailedToListUserIDs       = "failed to list user ids"
)

// Error Messages - Stats Operations
const (
	ErrMsgFailedToMarshalEventData     = "failed to marshal event data"
	ErrMsgFailedToInsertEvent          = "failed to insert event"
	ErrMsgFailedToQueryEvents          = "failed to query events"
	ErrMsgFailedToQueryUserEvents      = "failed to query user events"
	ErrMsgFailedToUnmarshalEventData   = "failed to unmarshal event data"
	ErrMsgFailedToQueryTopUsers        = "failed to query top users"
	ErrMsgFailedToQueryEventCounts     = "failed to query event counts"
	ErrMsgFailedToQueryUserEventCounts = "failed to query user event counts"
	ErrMsgFailedToGetTotalEventCount   = "failed to get total event count"
	ErrMsgFailedToQueryTotalPoints     = "failed to query total points"
	ErrMsgFailedToQueryUserPoints      = "failed to query user points"
	ErrMsgFailedToQueryPillarPoints    = "failed to query pillar points"
	ErrMsgFailedToQueryGoalCounts      = "failed to query goal counts"
	ErrMsgFailedToQueryDaysActive      = "failed to query days active"
)

// Error Messages - Streak Operations
const (
	ErrMsgFailedToGetStreak          = "failed to get streak"
	ErrMsgFailedToUpsertStreak       = "failed to upsert streak"
	ErrMsgFailedToResetStreaks       = "failed to reset expired streaks"
	ErrMsgFailedToQueryStreakLeaders = "failed to query streak leaders"
)

// Error Messages - Achievement Operations
const (
	ErrMsgFailedToQueryDefinitionHashes = "failed to query definition hashes"
	ErrMsgFailedToUpsertDefinition      = "failed to upsert definition"
	ErrMsgFailedToDeleteDefinitions     = "failed to delete definitions"
	ErrMsgFailedToRecordUnlock          = "failed to record unlock"
	ErrMsgFailedToQueryUnlocks          = "failed to query unlocks"
	ErrMsgFailedToCountUnlocks          = "failed to count unlocks"
)

// Error Messages - Challenge Operations
const (
	ErrMsgFailedToRecordCompletion    = "failed to record completion"
	ErrMsgFailedToGetCompletion       = "failed to get completion"
	ErrMsgFailedToQueryCompletions    = "failed to query completions"
	ErrMsgFailedToCountCompletions    = "failed to count completions"
	ErrMsgChallengeCompletionNotFound = "challenge completion not found"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToLogEvent        = "failed to log event"
	ErrMsgFailedToQueryEventLog   = "failed to query event log"
	ErrMsgFailedToCleanupEventLog = "failed to cleanup event log"
)
