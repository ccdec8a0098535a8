package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// Event types published on the bus. The string values live in the domain
// package so repositories and metrics can name them without importing event.
const (
	AthleteRegistered     = Type(domain.EventTypeAthleteRegistered)
	ActivityRecorded      = Type(domain.EventTypeActivityRecorded)
	GoalCompleted         = Type(domain.EventTypeGoalCompleted)
	StreakAdvanced        = Type(domain.EventTypeStreakAdvanced)
	StreakReset           = Type(domain.EventTypeStreakReset)
	ChallengeCompleted    = Type(domain.EventTypeChallengeCompleted)
	AchievementUnlocked   = Type(domain.EventTypeAchievementUnlocked)
	LevelUp               = Type(domain.EventTypeLevelUp)
	CatalogSynced         = Type(domain.EventTypeCatalogSynced)
	DailyRolloverComplete = Type(domain.EventTypeDailyRolloverComplete)
)

// Type-safe event constructors

// NewAthleteRegisteredEvent creates a new athlete registered event
func NewAthleteRegisteredEvent(userID, username string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AthleteRegistered,
		Payload: domain.AthleteRegisteredPayload{
			UserID:    userID,
			Username:  username,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewActivityRecordedEvent creates a new activity recorded event.
// Source identifies what triggered the activity (api, challenge, scenario).
func NewActivityRecordedEvent(userID, eventType string, pillar string, points int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActivityRecorded,
		Payload: domain.ActivityRecordedPayload{
			UserID:    userID,
			EventType: eventType,
			Pillar:    pillar,
			Points:    points,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeySource: source,
		},
	}
}

// NewGoalCompletedEvent creates a new goal completed event
func NewGoalCompletedEvent(userID string, pillar string, points int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GoalCompleted,
		Payload: domain.ActivityRecordedPayload{
			UserID:    userID,
			EventType: string(domain.EventGoalCompleted),
			Pillar:    pillar,
			Points:    points,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewStreakAdvancedEvent creates a new streak advanced event
func NewStreakAdvancedEvent(userID string, streak int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakAdvanced,
		Payload: domain.StreakAdvancedPayload{
			UserID:    userID,
			Streak:    streak,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewStreakResetEvent creates a new streak reset event
func NewStreakResetEvent(userID string, previousStreak int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakReset,
		Payload: domain.StreakResetPayload{
			UserID:         userID,
			PreviousStreak: previousStreak,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewChallengeCompletedEvent creates a new challenge completed event
func NewChallengeCompletedEvent(userID, challengeKey string, pillar string, points int, day string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ChallengeCompleted,
		Payload: domain.ChallengeCompletedPayload{
			UserID:       userID,
			ChallengeKey: challengeKey,
			Pillar:       pillar,
			Points:       points,
			Day:          day,
			Timestamp:    time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			domain.MetadataKeyChallengeKey: challengeKey,
		},
	}
}

// NewAchievementUnlockedEvent creates a new achievement unlocked event
func NewAchievementUnlockedEvent(userID, achievementID, title, tier, rarity string, points int, unlockMessage, source string) Event {
	evt := Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: domain.AchievementUnlockedPayload{
			UserID:        userID,
			AchievementID: achievementID,
			Title:         title,
			Tier:          tier,
			Rarity:        rarity,
			Points:        points,
			UnlockMessage: unlockMessage,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: nil,
	}
	if source != "" {
		evt.Metadata = map[string]interface{}{
			domain.MetadataKeySource: source,
		}
	}
	return evt
}

// NewLevelUpEvent creates a new level up event
func NewLevelUpEvent(userID string, pillar domain.Pillar, previousLevel, newLevel int, title string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: domain.LevelUpPayload{
			UserID:        userID,
			Pillar:        string(pillar),
			PreviousLevel: previousLevel,
			NewLevel:      newLevel,
			Title:         title,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewCatalogSyncedEvent creates a new catalog synced event
func NewCatalogSyncedEvent(inserted, updated, skipped int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CatalogSynced,
		Payload: domain.CatalogSyncedPayload{
			Inserted:  inserted,
			Updated:   updated,
			Skipped:   skipped,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewDailyRolloverEvent creates a new daily rollover complete event
func NewDailyRolloverEvent(day string, challengeCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyRolloverComplete,
		Payload: domain.DailyRolloverPayload{
			Day:            day,
			ChallengeCount: challengeCount,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously; every handler sees the event even when an
// earlier one fails, and the errors are aggregated into the return value.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
