package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameAthletesRegistered   = "athletes_registered_total"
	MetricNameActivitiesRecorded   = "activities_recorded_total"
	MetricNameGoalsCompleted       = "goals_completed_total"
	MetricNameStreaksAdvanced      = "streaks_advanced_total"
	MetricNameStreaksReset         = "streaks_reset_total"
	MetricNameChallengesCompleted  = "challenges_completed_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNamePointsAwarded        = "points_awarded_total"
)

// Streaming metric names
const (
	MetricNameSSEClientsConnected = "sse_clients_connected"
	MetricNameSSEEventsDropped    = "sse_events_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextAthletesRegistered   = "Total number of athletes registered"
	HelpTextActivitiesRecorded   = "Total number of activities recorded"
	HelpTextGoalsCompleted       = "Total number of goals completed"
	HelpTextStreaksAdvanced      = "Total number of daily streak advances"
	HelpTextStreaksReset         = "Total number of streaks reset after a missed day"
	HelpTextChallengesCompleted  = "Total number of daily challenges completed"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextLevelUps             = "Total number of pillar level-ups"
	HelpTextPointsAwarded        = "Total points awarded across all athletes"
)

// Streaming metric help text
const (
	HelpTextSSEClientsConnected = "Current number of connected dashboard stream clients"
	HelpTextSSEEventsDropped    = "Total number of stream events dropped because a client or the hub fell behind"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelPillar    = "pillar"
	LabelChallenge = "challenge"
	LabelTier      = "tier"
	LabelRarity    = "rarity"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
