package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the hub's intake channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each dashboard's event channel
	ClientEventBuffer = 50
)

// Connection settings
const (
	// KeepaliveInterval is how often an idle stream sends a comment frame
	// so intermediaries keep the connection open
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout bounds a single write to a dashboard connection
	WriteTimeout = 10 * time.Second

	// ReconnectDelay is the retry hint sent to EventSource clients
	ReconnectDelay = 5 * time.Second
)

// Event types for SSE
const (
	// EventTypeAthleteRegistered is sent when a new athlete joins
	EventTypeAthleteRegistered = "athlete.registered"

	// EventTypeStreakAdvanced is sent when an athlete's daily streak grows
	EventTypeStreakAdvanced = "streak.advanced"

	// EventTypeChallengeCompleted is sent when a daily challenge is completed
	EventTypeChallengeCompleted = "challenge.completed"

	// EventTypeAchievementUnlocked is sent when an athlete unlocks an achievement
	EventTypeAchievementUnlocked = "achievement.unlocked"

	// EventTypeLevelUp is sent when an athlete reaches a new pillar level
	EventTypeLevelUp = "level.up"

	// EventTypeDailyRollover is sent when the midnight rollover publishes a new challenge card
	EventTypeDailyRollover = "daily_rollover.complete"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgFlushError         = "Failed to flush SSE response"
)
