package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

// RegisterAthleteRequest represents the request to register a new athlete.
type RegisterAthleteRequest struct {
	Username  string `json:"username" validate:"required,max=50,excludesall=\x00\n\r\t"`
	DiscordID string `json:"discord_id,omitempty" validate:"max=255"`
}

// HandleRegisterAthlete handles new athlete registration.
// @Summary Register athlete
// @Description Creates a new athlete account, optionally linked to a Discord account
// @Tags athletes
// @Accept json
// @Produce json
// @Param request body RegisterAthleteRequest true "Athlete details"
// @Success 201 {object} domain.User
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /athletes [post]
func HandleRegisterAthlete(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterAthleteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register athlete"); err != nil {
			return
		}

		athlete, err := svc.RegisterAthlete(r.Context(), req.Username, req.DiscordID)
		if err != nil {
			respondServiceError(w, r, ErrMsgRegisterAthleteFailed, err)
			return
		}

		log.Info("Athlete registered", "user_id", athlete.ID, "username", athlete.Username)

		respondJSON(w, http.StatusCreated, athlete)
	}
}

// HandleGetAthlete returns a single athlete by ID.
// @Summary Get athlete
// @Description Returns the athlete with the given ID
// @Tags athletes
// @Produce json
// @Param userID path string true "Athlete ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Router /athletes/{userID} [get]
func HandleGetAthlete(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		athlete, err := svc.GetAthlete(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAthleteFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, athlete)
	}
}

// HandleGetAthleteByUsername returns a single athlete by username.
// @Summary Get athlete by username
// @Description Returns the athlete with the given username
// @Tags athletes
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Router /athletes/by-username/{username} [get]
func HandleGetAthleteByUsername(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		athlete, err := svc.GetAthleteByUsername(r.Context(), username)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAthleteFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, athlete)
	}
}

// UpdateAthleteRequest represents the request to update an athlete.
type UpdateAthleteRequest struct {
	Username  string `json:"username" validate:"required,max=50,excludesall=\x00\n\r\t"`
	DiscordID string `json:"discord_id,omitempty" validate:"max=255"`
}

// HandleUpdateAthlete updates an athlete's username or Discord link.
// @Summary Update athlete
// @Description Updates the athlete's username or Discord link
// @Tags athletes
// @Accept json
// @Produce json
// @Param userID path string true "Athlete ID"
// @Param request body UpdateAthleteRequest true "New athlete details"
// @Success 200 {object} domain.User
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /athletes/{userID} [put]
func HandleUpdateAthlete(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := chi.URLParam(r, "userID")

		var req UpdateAthleteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update athlete"); err != nil {
			return
		}

		updated := domain.User{
			ID:        userID,
			Username:  req.Username,
			DiscordID: req.DiscordID,
		}
		if err := svc.UpdateAthlete(r.Context(), updated); err != nil {
			respondServiceError(w, r, ErrMsgUpdateAthleteFailed, err)
			return
		}

		log.Info("Athlete updated", "user_id", userID, "username", req.Username)

		athlete, err := svc.GetAthlete(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAthleteFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, athlete)
	}
}

// HandleDeleteAthlete removes an athlete account.
// @Summary Delete athlete
// @Description Permanently removes the athlete account
// @Tags athletes
// @Produce json
// @Param userID path string true "Athlete ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /athletes/{userID} [delete]
func HandleDeleteAthlete(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID := chi.URLParam(r, "userID")

		if err := svc.DeleteAthlete(r.Context(), userID); err != nil {
			respondServiceError(w, r, ErrMsgDeleteAthleteFailed, err)
			return
		}

		log.Info("Athlete deleted", "user_id", userID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAthleteDeletedSuccess})
	}
}

// SearchAthletesResponse wraps athlete search results.
type SearchAthletesResponse struct {
	Query    string        `json:"query"`
	Athletes []domain.User `json:"athletes"`
	Total    int           `json:"total"`
}

// HandleSearchAthletes searches athletes by username substring.
// @Summary Search athletes
// @Description Case-insensitive substring search over usernames
// @Tags athletes
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (default 20)"
// @Success 200 {object} SearchAthletesResponse
// @Failure 400 {object} ErrorResponse
// @Router /athletes/search [get]
func HandleSearchAthletes(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, ok := GetQueryParam(r, w, "q")
		if !ok {
			return
		}

		limit, ok := GetLimitParam(r, w, 0)
		if !ok {
			return
		}

		athletes, err := svc.SearchAthletes(r.Context(), query, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgSearchAthletesFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SearchAthletesResponse{
			Query:    query,
			Athletes: athletes,
			Total:    len(athletes),
		})
	}
}

// HandleGetProfile returns the athlete's aggregated profile view.
// @Summary Get athlete profile
// @Description Returns the athlete together with counters and pillar levels
// @Tags athletes
// @Produce json
// @Param userID path string true "Athlete ID"
// @Success 200 {object} user.Profile
// @Failure 404 {object} ErrorResponse
// @Router /athletes/{userID}/profile [get]
func HandleGetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetProfileFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}
