package domain

// AthleteRegisteredPayload is the event payload for athlete.registered events
type AthleteRegisteredPayload struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// ActivityRecordedPayload is the event payload for activity.recorded and
// goal.completed events
type ActivityRecordedPayload struct {
	UserID    string `json:"user_id"`
	EventType string `json:"event_type"`
	Pillar    string `json:"pillar,omitempty"`
	Points    int    `json:"points"`
	Timestamp int64  `json:"timestamp"`
}

// StreakAdvancedPayload is the event payload for streak.advanced events
type StreakAdvancedPayload struct {
	UserID    string `json:"user_id"`
	Streak    int    `json:"streak"`
	Timestamp int64  `json:"timestamp"`
}

// StreakResetPayload is the event payload for streak.reset events
type StreakResetPayload struct {
	UserID         string `json:"user_id"`
	PreviousStreak int    `json:"previous_streak"`
	Timestamp      int64  `json:"timestamp"`
}

// ChallengeCompletedPayload is the event payload for challenge.completed events
type ChallengeCompletedPayload struct {
	UserID       string `json:"user_id"`
	ChallengeKey string `json:"challenge_key"`
	Pillar       string `json:"pillar"`
	Points       int    `json:"points"`
	Day          string `json:"day"`
	Timestamp    int64  `json:"timestamp"`
}

// AchievementUnlockedPayload is the event payload for achievement.unlocked events
type AchievementUnlockedPayload struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	Tier          string `json:"tier"`
	Rarity        string `json:"rarity"`
	Points        int    `json:"points"`
	UnlockMessage string `json:"unlock_message"`
	Timestamp     int64  `json:"timestamp"`
}

// LevelUpPayload is the event payload for level.up events
type LevelUpPayload struct {
	UserID        string `json:"user_id"`
	Pillar        string `json:"pillar"`
	PreviousLevel int    `json:"previous_level"`
	NewLevel      int    `json:"new_level"`
	Title         string `json:"title"`
	Timestamp     int64  `json:"timestamp"`
}

// CatalogSyncedPayload is the event payload for catalog.synced events
type CatalogSyncedPayload struct {
	Inserted  int   `json:"inserted"`
	Updated   int   `json:"updated"`
	Skipped   int   `json:"skipped"`
	Timestamp int64 `json:"timestamp"`
}

// DailyRolloverPayload is the event payload for daily_rollover.complete events
type DailyRolloverPayload struct {
	Day            string `json:"day"`
	ChallengeCount int    `json:"challenge_count"`
	Timestamp      int64  `json:"timestamp"`
}
