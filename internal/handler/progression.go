package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
)

// LevelTableResponse maps each pillar to its full level ladder.
type LevelTableResponse struct {
	Pillars map[string][]progression.LevelDefinition `json:"pillars"`
}

// HandleGetLevelTable returns the full level ladder for every pillar.
// @Summary Get level table
// @Description Returns the point thresholds and titles for every pillar level
// @Tags progression
// @Produce json
// @Success 200 {object} LevelTableResponse
// @Router /progression/levels [get]
func HandleGetLevelTable(catalog *progression.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := LevelTableResponse{
			Pillars: make(map[string][]progression.LevelDefinition, len(domain.Pillars)),
		}

		for _, pillar := range domain.Pillars {
			table, err := catalog.LevelTable(pillar)
			if err != nil {
				respondServiceError(w, r, ErrMsgGetLevelTableFailed, err)
				return
			}
			response.Pillars[string(pillar)] = table
		}

		respondJSON(w, http.StatusOK, response)
	}
}

// UserLevelsResponse wraps an athlete's standing on every pillar ladder.
type UserLevelsResponse struct {
	UserID string                  `json:"user_id"`
	Levels []progression.UserLevel `json:"levels"`
}

// HandleGetUserLevels returns the athlete's level on every pillar.
// @Summary Get athlete levels
// @Description Returns the athlete's current level and progress on each pillar
// @Tags progression
// @Produce json
// @Param userID path string true "Athlete ID"
// @Success 200 {object} UserLevelsResponse
// @Failure 404 {object} ErrorResponse
// @Router /athletes/{userID}/levels [get]
func HandleGetUserLevels(svc achievement.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		levels, err := svc.GetUserLevels(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetLevelsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, UserLevelsResponse{
			UserID: userID,
			Levels: levels,
		})
	}
}
