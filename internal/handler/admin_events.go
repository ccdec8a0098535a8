package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// AdminEventsHandler handles admin event log queries and maintenance
type AdminEventsHandler struct {
	eventlogService eventlog.Service
}

// NewAdminEventsHandler creates a new admin events handler
func NewAdminEventsHandler(eventlogService eventlog.Service) *AdminEventsHandler {
	return &AdminEventsHandler{eventlogService: eventlogService}
}

// EventsResponse contains event log query results
type EventsResponse struct {
	Events []EventLogEntry `json:"events"`
}

// EventLogEntry represents a single event log entry
type EventLogEntry struct {
	ID        int64       `json:"id"`
	EventType string      `json:"event_type"`
	UserID    *string     `json:"user_id,omitempty"`
	Payload   interface{} `json:"payload"`
	Metadata  interface{} `json:"metadata,omitempty"`
	CreatedAt string      `json:"created_at"`
}

// HandleGetEvents retrieves audit events based on query parameters
// GET /api/v1/admin/events?user_id=X&event_type=Y&since=Z&until=W&limit=N
// @Summary Query the event audit log
// @Description Returns audit rows filtered by athlete, type and time window (admin only)
// @Tags admin
// @Produce json
// @Param user_id query string false "Athlete ID"
// @Param event_type query string false "Event type"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Limit (1-1000, default 50)"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/events [get]
// @Security ApiKeyAuth
func (h *AdminEventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := eventlog.EventFilter{
		Limit: eventlog.DefaultQueryLimit,
	}

	if userID := query.Get("user_id"); userID != "" {
		filter.UserID = &userID
	}

	if eventType := query.Get("event_type"); eventType != "" {
		filter.EventType = &eventType
	}

	if sinceStr := query.Get("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'since' timestamp format (use RFC3339)")
			return
		}
		filter.Since = &since
	}

	if untilStr := query.Get("until"); untilStr != "" {
		until, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'until' timestamp format (use RFC3339)")
			return
		}
		filter.Until = &until
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 1000 {
			respondError(w, http.StatusBadRequest, "Invalid 'limit' (must be 1-1000)")
			return
		}
		filter.Limit = limit
	}

	events, err := h.eventlogService.GetEvents(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrMsgGetAdminEventsFailed)
		return
	}

	// Convert to response format
	entries := make([]EventLogEntry, len(events))
	for i, evt := range events {
		entries[i] = EventLogEntry{
			ID:        evt.ID,
			EventType: evt.EventType,
			UserID:    evt.UserID,
			Payload:   evt.Payload,
			Metadata:  evt.Metadata,
			CreatedAt: evt.CreatedAt.Format(time.RFC3339),
		}
	}

	respondJSON(w, http.StatusOK, EventsResponse{Events: entries})
}

// CleanupRequest configures an event log cleanup run
type CleanupRequest struct {
	RetentionDays int `json:"retention_days" validate:"gte=0,lte=3650"`
}

// HandleCleanupEvents deletes audit rows older than the retention window
// POST /api/v1/admin/events/cleanup
// @Summary Clean up the event audit log
// @Description Deletes audit rows older than retention_days (default 90)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CleanupRequest false "Cleanup options"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /admin/events/cleanup [post]
// @Security ApiKeyAuth
func (h *AdminEventsHandler) HandleCleanupEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	retentionDays := eventlog.DefaultRetentionDays
	if r.Body != nil && r.ContentLength > 0 {
		var req CleanupRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Event log cleanup"); err != nil {
			return
		}
		if req.RetentionDays > 0 {
			retentionDays = req.RetentionDays
		}
	}

	deleted, err := h.eventlogService.CleanupOldEvents(r.Context(), retentionDays)
	if err != nil {
		log.Error("Event log cleanup failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgCleanupFailed)
		return
	}

	log.Info("Event log cleanup completed", "retention_days", retentionDays, "deleted", deleted)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        MsgCleanupSuccess,
		"retention_days": retentionDays,
		"deleted":        deleted,
	})
}
