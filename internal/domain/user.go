package domain

import "time"

// User represents a registered athlete
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	DiscordID string    `json:"discord_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
