package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound   = "user not found"
	ErrMsgUsernameTaken  = "username already taken"
	ErrMsgDiscordIDTaken = "discord account already linked"

	// Pillar errors
	ErrMsgUnknownPillar = "unknown pillar"

	// Achievement errors
	ErrMsgAchievementNotFound = "achievement not found"

	// Challenge errors
	ErrMsgChallengeNotFound    = "challenge not active today"
	ErrMsgChallengeAlreadyDone = "challenge already completed today"
	ErrMsgChallengePoolEmpty   = "challenge pool is empty"

	// Activity errors
	ErrMsgInvalidEventType = "invalid activity event type"
	ErrMsgInvalidPeriod    = "invalid period"
	ErrMsgInvalidMetric    = "invalid leaderboard metric"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors (used for partial matches in tests)
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound   = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken  = errors.New(ErrMsgUsernameTaken)
	ErrDiscordIDTaken = errors.New(ErrMsgDiscordIDTaken)

	// Pillar errors
	ErrUnknownPillar = errors.New(ErrMsgUnknownPillar)

	// Achievement errors
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)

	// Challenge errors
	ErrChallengeNotFound    = errors.New(ErrMsgChallengeNotFound)
	ErrChallengeAlreadyDone = errors.New(ErrMsgChallengeAlreadyDone)
	ErrChallengePoolEmpty   = errors.New(ErrMsgChallengePoolEmpty)

	// Activity errors
	ErrInvalidEventType = errors.New(ErrMsgInvalidEventType)
	ErrInvalidPeriod    = errors.New(ErrMsgInvalidPeriod)
	ErrInvalidMetric    = errors.New(ErrMsgInvalidMetric)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
