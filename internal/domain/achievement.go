package domain

import "time"

// UnlockRecord represents a persisted achievement unlock for an athlete.
// Unlock rows are insert-only; re-evaluating a user never removes one.
type UnlockRecord struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	Points        int       `json:"points"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
