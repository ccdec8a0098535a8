package eventlog

import (
	"context"
	"encoding/json"

	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all events
	Subscribe(bus event.Bus) error

	// GetEvents retrieves audit rows based on filter criteria
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	// Subscribe to all domain event types
	eventTypes := []event.Type{
		event.AthleteRegistered,
		event.ActivityRecorded,
		event.GoalCompleted,
		event.StreakAdvanced,
		event.StreakReset,
		event.ChallengeCompleted,
		event.AchievementUnlocked,
		event.LevelUp,
		event.CatalogSynced,
		event.DailyRolloverComplete,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent processes and logs events to the database
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := normalizePayload(evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadNotLoggable, "type", evt.Type, "error", err)
		return nil
	}

	// Extract user_id if present
	var userID *string
	if uid, ok := payload[PayloadKeyUserID].(string); ok && uid != "" {
		userID = &uid
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload, normalizeMetadata(evt.Metadata)); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", userID)
	return nil
}

// GetEvents retrieves audit rows based on filter criteria
func (s *service) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}

// normalizePayload flattens a payload to the map shape the audit table
// stores. Typed payload structs round-trip through JSON so the logged
// keys match the wire names.
func normalizePayload(payload interface{}) (map[string]interface{}, error) {
	if payload == nil {
		return map[string]interface{}{}, nil
	}
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func normalizeMetadata(metadata event.Metadata) map[string]interface{} {
	if metadata == nil {
		return nil
	}
	if m, ok := metadata.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{"value": metadata}
}
