package user

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// EnvUserCacheSize is the environment variable key for cache size configuration
const EnvUserCacheSize = "USER_CACHE_SIZE"

// EnvUserCacheTTL is the environment variable key for cache TTL configuration
const EnvUserCacheTTL = "USER_CACHE_TTL"

// ============================================================================
// Search Limits
// ============================================================================

// DefaultSearchLimit is the number of athletes returned by a name search
// when no limit is specified or limit <= 0
const DefaultSearchLimit = 20

// MaxSearchLimit caps name searches regardless of what the caller asks for
const MaxSearchLimit = 100

// MaxUsernameLength matches the username column width
const MaxUsernameLength = 50

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgUserIDRequired   = "user id is required"
	ErrMsgUsernameRequired = "username is required"
	ErrMsgUsernameTooLong  = "username is too long"
	ErrMsgQueryRequired    = "search query is required"
)

// Operation error messages
const (
	ErrMsgRegisterFailed   = "failed to register athlete: %w"
	ErrMsgGetAthleteFailed = "failed to get athlete: %w"
	ErrMsgUpdateFailed     = "failed to update athlete: %w"
	ErrMsgDeleteFailed     = "failed to delete athlete: %w"
	ErrMsgSearchFailed     = "failed to search athletes: %w"
	ErrMsgProfileFailed    = "failed to assemble profile: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgAthleteRegistered = "Athlete registered"
	LogMsgAthleteUpdated    = "Athlete updated"
	LogMsgAthleteDeleted    = "Athlete deleted"
)

// Error log messages
const (
	LogMsgFailedToPublishEvent = "Failed to publish event"
)
