package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidPeriod     = "Invalid period parameter"

	// Athlete operation error messages
	ErrMsgRegisterAthleteFailed = "Failed to register athlete"
	ErrMsgGetAthleteFailed      = "Failed to retrieve athlete"
	ErrMsgUpdateAthleteFailed   = "Failed to update athlete"
	ErrMsgDeleteAthleteFailed   = "Failed to delete athlete"
	ErrMsgSearchAthletesFailed  = "Failed to search athletes"
	ErrMsgGetProfileFailed      = "Failed to retrieve profile"

	// Activity and stats error messages
	ErrMsgRecordActivityFailed = "Failed to record activity"
	ErrMsgGetCountersFailed    = "Failed to retrieve counters"
	ErrMsgGetStatsFailed       = "Failed to retrieve stats"
	ErrMsgGetEventsFailed      = "Failed to retrieve events"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"

	// Progression error messages
	ErrMsgGetLevelsFailed     = "Failed to retrieve levels"
	ErrMsgGetLevelTableFailed = "Failed to retrieve level table"

	// Achievement error messages
	ErrMsgGetAchievementsFailed = "Failed to retrieve achievements"
	ErrMsgEvaluateFailed        = "Failed to evaluate achievements"
	ErrMsgBrowseCatalogFailed   = "Failed to browse achievement catalog"

	// Challenge error messages
	ErrMsgGetChallengesFailed     = "Failed to retrieve daily challenges"
	ErrMsgCompleteChallengeFailed = "Failed to complete challenge"

	// Guide error messages
	ErrMsgGetGuideFailed = "Failed to retrieve guide"

	// Admin error messages
	ErrMsgRolloverFailed       = "Failed to run daily rollover"
	ErrMsgCleanupFailed        = "Failed to clean up event log"
	ErrMsgGetCacheStatsFailed  = "Failed to retrieve cache stats"
	ErrMsgGetAdminEventsFailed = "Failed to retrieve audit events"

	// Simulation error messages
	ErrMsgScenarioNotFound  = "Scenario not found"
	ErrMsgUnknownFeature    = "No provider registered for the scenario's feature"
	ErrMsgRunScenarioFailed = "Failed to run scenario"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgActivityRecordedSuccess  = "Activity recorded successfully"
	MsgChallengeCompleteSuccess = "Challenge completed!"
	MsgAthleteDeletedSuccess    = "Athlete deleted successfully"
	MsgRolloverSuccess          = "Daily rollover completed"
	MsgCleanupSuccess           = "Event log cleanup completed"
)
