package stats

import (
	"context"
	"fmt"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// EventHandler records stats rows for events raised by other modules
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new stats event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{
		service: service,
	}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.AthleteRegistered, h.HandleAthleteRegistered)
}

// HandleAthleteRegistered marks registration day as an active day.
// Signing up is day one: the athlete starts with a one-day streak and the
// registration row feeds the days-active counter.
func (h *EventHandler) HandleAthleteRegistered(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[domain.AthleteRegisteredPayload](evt)
	if err != nil {
		return fmt.Errorf("failed to decode athlete registered payload: %w", err)
	}

	_, err = h.service.RecordActivity(ctx, payload.UserID, domain.EventAthleteRegistered, nil, 0,
		map[string]interface{}{"username": payload.Username}, domain.SourceAPI)
	if err != nil {
		log.Warn("Failed to record registration activity", "error", err, "user_id", payload.UserID)
	}

	return nil
}
