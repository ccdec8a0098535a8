package domain

import "time"

// EventType represents the type of activity event being tracked
type EventType string

const (
	EventAthleteRegistered   EventType = "athlete_registered"
	EventGoalCompleted       EventType = "goal_completed"
	EventWorkoutLogged       EventType = "workout_logged"
	EventChallengeCompleted  EventType = "challenge_completed"
	EventDailyStreak         EventType = "daily_streak"
	EventAchievementUnlocked EventType = "achievement_unlocked"
)

// ActivityEventTypes lists the event types an athlete can submit directly.
// Streak and unlock rows are written by the services, never by callers.
var ActivityEventTypes = []EventType{
	EventGoalCompleted,
	EventWorkoutLogged,
}

// IsValidEventType checks if an event type string is one of the known types
func IsValidEventType(t EventType) bool {
	switch t {
	case EventAthleteRegistered, EventGoalCompleted, EventWorkoutLogged,
		EventChallengeCompleted, EventDailyStreak, EventAchievementUnlocked:
		return true
	}
	return false
}

// IsActivityEventType checks if athletes may submit this event type directly
func IsActivityEventType(t EventType) bool {
	for _, allowed := range ActivityEventTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// StatsEvent represents a single tracked activity event
type StatsEvent struct {
	EventID   int64       `json:"event_id"`
	UserID    string      `json:"user_id"`
	EventType EventType   `json:"event_type"`
	Pillar    *Pillar     `json:"pillar,omitempty"`
	Points    int         `json:"points"`
	EventData interface{} `json:"event_data,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// StreakMetadata represents metadata for daily streak events
type StreakMetadata struct {
	Streak int `json:"streak"`
}

// GoalMetadata represents metadata for goal completion events
type GoalMetadata struct {
	GoalName string `json:"goal_name,omitempty"`
	Source   string `json:"source,omitempty"`
}

// ChallengeMetadata represents metadata for challenge completion events
type ChallengeMetadata struct {
	ChallengeKey string `json:"challenge_key"`
	Day          string `json:"day"`
}

// StreakState is the persisted consecutive-day streak for an athlete.
// LastActiveDay is a UTC calendar day in YYYY-MM-DD form; the effective
// streak is zero once that day falls more than one day in the past.
type StreakState struct {
	UserID        string    `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastActiveDay string    `json:"last_active_day"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExpiredStreak identifies a streak broken by a missed day, captured
// during the daily rollover so a reset event can be published.
type ExpiredStreak struct {
	UserID         string `json:"user_id"`
	PreviousStreak int    `json:"previous_streak"`
}

// StatsSummary represents a summary of an athlete's activity for API responses
type StatsSummary struct {
	Period      string            `json:"period"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	TotalEvents int               `json:"total_events"`
	TotalPoints int               `json:"total_points"`
	EventCounts map[EventType]int `json:"event_counts"`
	PillarGoals map[Pillar]int    `json:"pillar_goals,omitempty"`
}

// LeaderboardEntry represents an athlete's position in a leaderboard
type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Value    int    `json:"value"`
	Metric   string `json:"metric"`
}
