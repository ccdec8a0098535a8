package handler

import (
	"context"
	"net/http"

	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/user"
	"github.com/babygoats/BabyGoats_Go/internal/worker"
)

// RolloverRunner triggers the daily rollover outside its midnight schedule
type RolloverRunner interface {
	RunNow(ctx context.Context) (*worker.RolloverResult, error)
}

// AdminRolloverHandler handles manual daily rollover triggers
type AdminRolloverHandler struct {
	rollover RolloverRunner
}

// NewAdminRolloverHandler creates a new admin rollover handler
func NewAdminRolloverHandler(rollover RolloverRunner) *AdminRolloverHandler {
	return &AdminRolloverHandler{rollover: rollover}
}

// HandleTriggerRollover manually runs the daily rollover
// POST /api/v1/admin/rollover
// @Summary Manually trigger daily rollover
// @Description Rotates the challenge card and expires stale streaks immediately
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /admin/rollover [post]
// @Security ApiKeyAuth
func (h *AdminRolloverHandler) HandleTriggerRollover(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("Manual daily rollover triggered")

	result, err := h.rollover.RunNow(r.Context())
	if err != nil {
		log.Error("Manual daily rollover failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgRolloverFailed)
		return
	}

	log.Info("Manual daily rollover completed",
		"day", result.Day,
		"challenge_count", result.ChallengeCount,
		"streaks_reset", result.StreaksReset)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": MsgRolloverSuccess,
		"result":  result,
	})
}

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	userService user.Service
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(userService user.Service) *AdminCacheHandler {
	return &AdminCacheHandler{
		userService: userService,
	}
}

// HandleGetCacheStats returns current athlete cache statistics
// GET /api/v1/admin/cache/stats
// @Summary Get athlete cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} user.CacheStats
// @Router /admin/cache/stats [get]
// @Security ApiKeyAuth
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.userService.GetCacheStats()
	respondJSON(w, http.StatusOK, stats)
}
