package domain

import "time"

// ChallengeTemplate represents a daily challenge definition from config
type ChallengeTemplate struct {
	ChallengeKey string `json:"challenge_key"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Pillar       Pillar `json:"pillar"`
	Points       int    `json:"points"`
	Difficulty   string `json:"difficulty"` // 'easy', 'medium', 'hard'
}

// DailyChallenge pairs a template with the UTC day it is active on,
// plus per-caller completion state when requested for a specific athlete.
type DailyChallenge struct {
	ChallengeTemplate
	Day         string     `json:"day"` // YYYY-MM-DD, UTC
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ChallengeCompletion records that an athlete finished a challenge on a day
type ChallengeCompletion struct {
	UserID       string    `json:"user_id"`
	ChallengeKey string    `json:"challenge_key"`
	Day          string    `json:"day"`
	Points       int       `json:"points"`
	CompletedAt  time.Time `json:"completed_at"`
}

// ChallengePool represents the challenge template configuration file
type ChallengePool struct {
	Version    string              `json:"version"`
	DailyCount int                 `json:"daily_count"`
	Challenges []ChallengeTemplate `json:"challenges"`
}
