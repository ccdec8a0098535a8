package sse

import (
	"context"
	"log/slog"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all events the dashboard streams
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.AthleteRegistered, s.handleAthleteRegistered)
	s.bus.Subscribe(event.StreakAdvanced, s.handleStreakAdvanced)
	s.bus.Subscribe(event.ChallengeCompleted, s.handleChallengeCompleted)
	s.bus.Subscribe(event.AchievementUnlocked, s.handleAchievementUnlocked)
	s.bus.Subscribe(event.LevelUp, s.handleLevelUp)
	s.bus.Subscribe(event.DailyRolloverComplete, s.handleDailyRollover)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			EventTypeAthleteRegistered,
			EventTypeStreakAdvanced,
			EventTypeChallengeCompleted,
			EventTypeAchievementUnlocked,
			EventTypeLevelUp,
			EventTypeDailyRollover,
		})
}

// handleAthleteRegistered announces new athletes to connected dashboards
func (s *Subscriber) handleAthleteRegistered(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.AthleteRegisteredPayload)
	if !ok {
		slog.Warn("Invalid athlete registered event payload type")
		return nil
	}

	ssePayload := AthleteRegisteredPayload{
		UserID:   payload.UserID,
		Username: payload.Username,
	}

	s.hub.Broadcast(EventTypeAthleteRegistered, ssePayload.UserID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeAthleteRegistered,
		"user_id", ssePayload.UserID)

	return nil
}

// handleStreakAdvanced broadcasts streak growth
func (s *Subscriber) handleStreakAdvanced(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.StreakAdvancedPayload)
	if !ok {
		slog.Warn("Invalid streak advanced event payload type")
		return nil
	}

	ssePayload := StreakAdvancedPayload{
		UserID: payload.UserID,
		Streak: payload.Streak,
	}

	s.hub.Broadcast(EventTypeStreakAdvanced, ssePayload.UserID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeStreakAdvanced,
		"user_id", ssePayload.UserID,
		"streak", ssePayload.Streak)

	return nil
}

// handleChallengeCompleted broadcasts daily challenge completions
func (s *Subscriber) handleChallengeCompleted(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.ChallengeCompletedPayload)
	if !ok {
		slog.Warn("Invalid challenge completed event payload type")
		return nil
	}

	ssePayload := ChallengeCompletedPayload{
		UserID:       payload.UserID,
		ChallengeKey: payload.ChallengeKey,
		Pillar:       payload.Pillar,
		Points:       payload.Points,
		Day:          payload.Day,
	}

	s.hub.Broadcast(EventTypeChallengeCompleted, ssePayload.UserID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeChallengeCompleted,
		"user_id", ssePayload.UserID,
		"challenge_key", ssePayload.ChallengeKey)

	return nil
}

// handleAchievementUnlocked broadcasts unlock toasts
func (s *Subscriber) handleAchievementUnlocked(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.AchievementUnlockedPayload)
	if !ok {
		slog.Warn("Invalid achievement unlocked event payload type")
		return nil
	}

	// Source rides in metadata, not the payload
	source := ""
	if src, ok := evt.GetMetadataValue(domain.MetadataKeySource).(string); ok {
		source = src
	}

	ssePayload := AchievementUnlockedPayload{
		UserID:        payload.UserID,
		AchievementID: payload.AchievementID,
		Title:         payload.Title,
		Tier:          payload.Tier,
		Rarity:        payload.Rarity,
		Points:        payload.Points,
		UnlockMessage: payload.UnlockMessage,
		Source:        source,
	}

	s.hub.Broadcast(EventTypeAchievementUnlocked, ssePayload.UserID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeAchievementUnlocked,
		"user_id", ssePayload.UserID,
		"achievement_id", ssePayload.AchievementID)

	return nil
}

// handleLevelUp broadcasts pillar level-ups
func (s *Subscriber) handleLevelUp(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.LevelUpPayload)
	if !ok {
		slog.Warn("Invalid level up event payload type")
		return nil
	}

	ssePayload := LevelUpPayload{
		UserID:        payload.UserID,
		Pillar:        payload.Pillar,
		PreviousLevel: payload.PreviousLevel,
		NewLevel:      payload.NewLevel,
		Title:         payload.Title,
	}

	s.hub.Broadcast(EventTypeLevelUp, ssePayload.UserID, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeLevelUp,
		"user_id", ssePayload.UserID,
		"pillar", ssePayload.Pillar,
		"new_level", ssePayload.NewLevel)

	return nil
}

// handleDailyRollover broadcasts the new challenge card at midnight
func (s *Subscriber) handleDailyRollover(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.DailyRolloverPayload)
	if !ok {
		slog.Warn("Invalid daily rollover event payload type")
		return nil
	}

	ssePayload := DailyRolloverPayload{
		Day:            payload.Day,
		ChallengeCount: payload.ChallengeCount,
	}

	// Rollover concerns every dashboard, so it carries no athlete
	s.hub.Broadcast(EventTypeDailyRollover, "", ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeDailyRollover,
		"day", ssePayload.Day)

	return nil
}
