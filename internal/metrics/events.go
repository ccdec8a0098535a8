package metrics

import (
	"context"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	// Subscribe to all event types we care about
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
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	// Record business metrics based on event type. Publishers emit typed
	// payload structs, so each case asserts the concrete type
	switch evt.Type {
	case event.AthleteRegistered:
		AthletesRegistered.Inc()

	case event.ActivityRecorded:
		if p, ok := evt.Payload.(domain.ActivityRecordedPayload); ok {
			ActivitiesRecorded.WithLabelValues(p.EventType, p.Pillar).Inc()
			// Every award funnels through activity.recorded, so points are
			// totalled here and nowhere else
			PointsAwarded.Add(float64(p.Points))
		}

	case event.GoalCompleted:
		if p, ok := evt.Payload.(domain.ActivityRecordedPayload); ok {
			GoalsCompleted.WithLabelValues(p.Pillar).Inc()
		}

	case event.StreakAdvanced:
		StreaksAdvanced.Inc()

	case event.StreakReset:
		StreaksReset.Inc()

	case event.ChallengeCompleted:
		if p, ok := evt.Payload.(domain.ChallengeCompletedPayload); ok {
			ChallengesCompleted.WithLabelValues(p.ChallengeKey).Inc()
		}

	case event.AchievementUnlocked:
		if p, ok := evt.Payload.(domain.AchievementUnlockedPayload); ok {
			AchievementsUnlocked.WithLabelValues(p.Tier, p.Rarity).Inc()
		}

	case event.LevelUp:
		if p, ok := evt.Payload.(domain.LevelUpPayload); ok {
			LevelUps.WithLabelValues(p.Pillar).Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
