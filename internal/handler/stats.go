package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
)

// RecordActivityRequest represents a request to record an athlete activity
type RecordActivityRequest struct {
	UserID    string                 `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	EventType string                 `json:"event_type" validate:"required,max=50"`
	Pillar    string                 `json:"pillar,omitempty" validate:"pillar"`
	Points    int                    `json:"points" validate:"gte=0,lte=1000"`
	EventData map[string]interface{} `json:"event_data,omitempty"`
}

// HandleRecordActivity handles POST requests to record athlete activities
// @Summary Record activity
// @Description Records a goal completion or logged workout for an athlete
// @Tags activities
// @Accept json
// @Produce json
// @Param request body RecordActivityRequest true "Activity details"
// @Success 201 {object} domain.StatsEvent
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /activities [post]
func HandleRecordActivity(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RecordActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record activity"); err != nil {
			return
		}

		// Streak and unlock rows are service-written; the API only accepts
		// the athlete-submittable types
		eventType := domain.EventType(req.EventType)
		if !domain.IsActivityEventType(eventType) {
			log.Warn("Rejected non-submittable event type", "event_type", req.EventType)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidEventTypeError)
			return
		}

		var pillar *domain.Pillar
		if req.Pillar != "" {
			p := domain.Pillar(strings.ToLower(req.Pillar))
			pillar = &p
		}

		evt, err := svc.RecordActivity(r.Context(), req.UserID, eventType, pillar, req.Points, req.EventData, domain.SourceAPI)
		if err != nil {
			respondServiceError(w, r, ErrMsgRecordActivityFailed, err)
			return
		}

		log.Info("Activity recorded",
			"event_id", evt.EventID,
			"user_id", req.UserID,
			"event_type", req.EventType,
			"points", req.Points)

		respondJSON(w, http.StatusCreated, evt)
	}
}

// HandleGetCounters handles GET requests for an athlete's lifetime counters
// @Summary Get athlete counters
// @Description Returns the athlete's lifetime counters (streak, goals, points, levels)
// @Tags activities
// @Produce json
// @Param userID path string true "Athlete ID"
// @Success 200 {object} domain.UserCounters
// @Failure 404 {object} ErrorResponse
// @Router /athletes/{userID}/counters [get]
func HandleGetCounters(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		counters, err := svc.GetUserCounters(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetCountersFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, counters)
	}
}

// HandleGetUserStats handles GET requests for athlete statistics
// @Summary Get athlete stats
// @Description Returns an aggregated stats summary for the athlete over a period
// @Tags activities
// @Produce json
// @Param userID path string true "Athlete ID"
// @Param period query string false "Period (daily, weekly, monthly, yearly, all)"
// @Success 200 {object} domain.StatsSummary
// @Failure 400 {object} ErrorResponse
// @Router /athletes/{userID}/stats [get]
func HandleGetUserStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := chi.URLParam(r, "userID")
		period := GetOptionalQueryParam(r, "period", domain.PeriodDaily)

		summary, err := svc.GetUserStats(r.Context(), userID, period)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStatsFailed, err)
			return
		}

		log.Debug("Athlete stats retrieved", "user_id", userID, "period", period, "total_events", summary.TotalEvents)

		respondJSON(w, http.StatusOK, summary)
	}
}

// HandleGetUserEvents handles GET requests for an athlete's raw activity feed
// @Summary Get athlete events
// @Description Returns the athlete's recorded activity events over a period
// @Tags activities
// @Produce json
// @Param userID path string true "Athlete ID"
// @Param period query string false "Period (daily, weekly, monthly, yearly, all)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /athletes/{userID}/events [get]
func HandleGetUserEvents(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		period := GetOptionalQueryParam(r, "period", domain.PeriodDaily)

		events, err := svc.GetUserEvents(r.Context(), userID, period)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetEventsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"user_id": userID,
			"period":  period,
			"events":  events,
			"total":   len(events),
		})
	}
}

// HandleGetSystemStats handles GET requests for system-wide statistics
// @Summary Get system stats
// @Description Returns system-wide aggregated statistics
// @Tags activities
// @Produce json
// @Param period query string false "Period (daily, weekly, monthly, yearly, all)"
// @Success 200 {object} domain.StatsSummary
// @Failure 400 {object} ErrorResponse
// @Router /stats/system [get]
func HandleGetSystemStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		period := GetOptionalQueryParam(r, "period", domain.PeriodDaily)

		summary, err := svc.GetSystemStats(r.Context(), period)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStatsFailed, err)
			return
		}

		log.Debug("System stats retrieved", "period", period, "total_events", summary.TotalEvents)

		respondJSON(w, http.StatusOK, summary)
	}
}

// HandleGetLeaderboard handles GET requests for leaderboards
// @Summary Get leaderboard
// @Description Returns the top athletes for a metric over a period
// @Tags activities
// @Produce json
// @Param metric query string false "Metric (points, streak, goals)"
// @Param period query string false "Period (daily, weekly, monthly, yearly, all)"
// @Param limit query int false "Limit (default 10)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /leaderboard [get]
func HandleGetLeaderboard(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		metric := GetOptionalQueryParam(r, "metric", domain.MetricPoints)
		period := GetOptionalQueryParam(r, "period", domain.PeriodWeekly)

		limit, ok := GetLimitParam(r, w, 10)
		if !ok {
			return
		}

		entries, err := svc.GetLeaderboard(r.Context(), metric, period, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetLeaderboardFailed, err)
			return
		}

		log.Debug("Leaderboard retrieved", "metric", metric, "period", period, "entries", len(entries))

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"metric":  metric,
			"period":  period,
			"entries": entries,
		})
	}
}
