package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// UserAchievementsResponse wraps an athlete's achievement list.
type UserAchievementsResponse struct {
	UserID       string                    `json:"user_id"`
	Achievements []achievement.Achievement `json:"achievements"`
	Unlocked     int                       `json:"unlocked"`
	Total        int                       `json:"total"`
}

// HandleGetUserAchievements returns the catalog from the athlete's point of view.
// @Summary Get athlete achievements
// @Description Returns every achievement with the athlete's unlock state and progress
// @Tags achievements
// @Produce json
// @Param userID path string true "Athlete ID"
// @Param include_hidden query bool false "Reveal hidden achievements (privileged)"
// @Success 200 {object} UserAchievementsResponse
// @Failure 404 {object} ErrorResponse
// @Router /athletes/{userID}/achievements [get]
func HandleGetUserAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		includeHidden := GetOptionalQueryParam(r, "include_hidden", "false") == "true"

		achievements, err := svc.GetUserAchievements(r.Context(), userID, includeHidden)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAchievementsFailed, err)
			return
		}

		unlocked := 0
		for _, a := range achievements {
			if a.Unlocked {
				unlocked++
			}
		}

		respondJSON(w, http.StatusOK, UserAchievementsResponse{
			UserID:       userID,
			Achievements: achievements,
			Unlocked:     unlocked,
			Total:        len(achievements),
		})
	}
}

// EvaluateResponse reports the unlocks minted by an evaluation pass.
type EvaluateResponse struct {
	UserID     string                `json:"user_id"`
	NewUnlocks []domain.UnlockRecord `json:"new_unlocks"`
	Count      int                   `json:"count"`
}

// HandleEvaluateAchievements re-checks the athlete against every requirement.
// @Summary Evaluate achievements
// @Description Diffs the athlete's progress against persisted unlocks and records new ones
// @Tags achievements
// @Produce json
// @Param userID path string true "Athlete ID"
// @Success 200 {object} EvaluateResponse
// @Failure 404 {object} ErrorResponse
// @Router /athletes/{userID}/achievements/evaluate [post]
func HandleEvaluateAchievements(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := chi.URLParam(r, "userID")

		unlocks, err := svc.EvaluateUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgEvaluateFailed, err)
			return
		}

		log.Info("Achievements evaluated", "user_id", userID, "new_unlocks", len(unlocks))

		respondJSON(w, http.StatusOK, EvaluateResponse{
			UserID:     userID,
			NewUnlocks: unlocks,
			Count:      len(unlocks),
		})
	}
}

// CatalogResponse wraps the public achievement catalog.
type CatalogResponse struct {
	Achievements []achievement.Achievement `json:"achievements"`
	Total        int                       `json:"total"`
}

// HandleBrowseCatalog lists the achievement catalog without athlete context.
// @Summary Browse achievement catalog
// @Description Lists the catalog, optionally filtered by category and rarity
// @Tags achievements
// @Produce json
// @Param category query string false "Category filter"
// @Param rarity query string false "Rarity filter"
// @Success 200 {object} CatalogResponse
// @Failure 400 {object} ErrorResponse
// @Router /achievements [get]
func HandleBrowseCatalog(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		rarity := r.URL.Query().Get("rarity")

		achievements, err := svc.BrowseCatalog(r.Context(), category, rarity)
		if err != nil {
			respondServiceError(w, r, ErrMsgBrowseCatalogFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, CatalogResponse{
			Achievements: achievements,
			Total:        len(achievements),
		})
	}
}
