package achievement

import (
	"context"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// EventHandler re-evaluates an athlete whenever something moves their
// counters, so achievements unlock the moment they are earned
type EventHandler struct {
	service Service
}

// NewEventHandler creates an event handler for achievement evaluation
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to counter-moving events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.ActivityRecorded, h.HandleActivityRecorded)
	bus.Subscribe(event.ChallengeCompleted, h.HandleChallengeCompleted)
	bus.Subscribe(event.StreakAdvanced, h.HandleStreakAdvanced)
}

// HandleActivityRecorded evaluates the athlete after a recorded activity
func (h *EventHandler) HandleActivityRecorded(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.ActivityRecordedPayload](evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToDecodePayload, "error", err, "type", evt.Type)
		return nil
	}
	// The feed row written for an unlock is itself an activity; evaluating
	// it again would find nothing new
	if payload.EventType == string(domain.EventAchievementUnlocked) {
		return nil
	}
	h.evaluate(ctx, payload.UserID)
	return nil
}

// HandleChallengeCompleted evaluates the athlete after a challenge completion
func (h *EventHandler) HandleChallengeCompleted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.ChallengeCompletedPayload](evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToDecodePayload, "error", err, "type", evt.Type)
		return nil
	}
	h.evaluate(ctx, payload.UserID)
	return nil
}

// HandleStreakAdvanced evaluates the athlete after a streak advance. The
// streak advances after the activity events fire, so this is the pass that
// sees the new streak value.
func (h *EventHandler) HandleStreakAdvanced(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.StreakAdvancedPayload](evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToDecodePayload, "error", err, "type", evt.Type)
		return nil
	}
	h.evaluate(ctx, payload.UserID)
	return nil
}

// evaluate runs the unlock sweep and logs failures without failing the
// publishing operation
func (h *EventHandler) evaluate(ctx context.Context, userID string) {
	if _, err := h.service.EvaluateUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToEvaluate, "error", err, "user_id", userID)
	}
}
