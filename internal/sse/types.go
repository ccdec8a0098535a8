package sse

import "encoding/json"

// Event is the envelope every stream message travels in. UserID names
// the athlete the event concerns; feed-wide events leave it empty.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FormatMessage renders an event in the text/event-stream wire format:
// an id line, an event line and a data line carrying the JSON envelope,
// terminated by a blank line.
func FormatMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var msg string
	if evt.ID != "" {
		msg = "id: " + evt.ID + "\n"
	}
	msg += "event: " + evt.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}

// AthleteRegisteredPayload is the SSE payload for new athlete announcements
type AthleteRegisteredPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// StreakAdvancedPayload is the SSE payload for streak growth events
type StreakAdvancedPayload struct {
	UserID string `json:"user_id"`
	Streak int    `json:"streak"`
}

// ChallengeCompletedPayload is the SSE payload for daily challenge completions
type ChallengeCompletedPayload struct {
	UserID       string `json:"user_id"`
	ChallengeKey string `json:"challenge_key"`
	Pillar       string `json:"pillar"`
	Points       int    `json:"points"`
	Day          string `json:"day"`
}

// AchievementUnlockedPayload is the SSE payload for achievement unlock toasts
type AchievementUnlockedPayload struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	Tier          string `json:"tier"`
	Rarity        string `json:"rarity"`
	Points        int    `json:"points"`
	UnlockMessage string `json:"unlock_message"`
	Source        string `json:"source,omitempty"` // What activity triggered the unlock (e.g. "activity", "challenge")
}

// LevelUpPayload is the SSE payload for pillar level-up events
type LevelUpPayload struct {
	UserID        string `json:"user_id"`
	Pillar        string `json:"pillar"`
	PreviousLevel int    `json:"previous_level"`
	NewLevel      int    `json:"new_level"`
	Title         string `json:"title"`
}

// DailyRolloverPayload is the SSE payload for the midnight challenge rollover
type DailyRolloverPayload struct {
	Day            string `json:"day"`
	ChallengeCount int    `json:"challenge_count"`
}
