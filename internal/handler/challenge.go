package handler

import (
	"net/http"

	"github.com/babygoats/BabyGoats_Go/internal/challenge"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// DailyChallengesResponse wraps today's challenge card.
type DailyChallengesResponse struct {
	Day        string                  `json:"day"`
	Challenges []domain.DailyChallenge `json:"challenges"`
}

// HandleGetDailyChallenges returns today's challenge rotation.
// @Summary Get daily challenges
// @Description Returns today's challenge card; with user_id the entries carry completion state
// @Tags challenges
// @Produce json
// @Param user_id query string false "Athlete ID for completion state"
// @Success 200 {object} DailyChallengesResponse
// @Router /challenges/today [get]
func HandleGetDailyChallenges(svc challenge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		challenges, err := svc.GetDailyChallenges(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetChallengesFailed, err)
			return
		}

		day := ""
		if len(challenges) > 0 {
			day = challenges[0].Day
		}

		respondJSON(w, http.StatusOK, DailyChallengesResponse{
			Day:        day,
			Challenges: challenges,
		})
	}
}

// CompleteChallengeRequest represents a challenge completion submission.
type CompleteChallengeRequest struct {
	UserID       string `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ChallengeKey string `json:"challenge_key" validate:"required,max=100"`
}

// CompleteChallengeResponse confirms a recorded completion.
type CompleteChallengeResponse struct {
	Message    string                      `json:"message"`
	Completion *domain.ChallengeCompletion `json:"completion"`
}

// HandleCompleteChallenge records a challenge completion for today.
// @Summary Complete challenge
// @Description Records a per-day idempotent completion and awards the challenge points
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body CompleteChallengeRequest true "Completion details"
// @Success 201 {object} CompleteChallengeResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /challenges/complete [post]
func HandleCompleteChallenge(svc challenge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CompleteChallengeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete challenge"); err != nil {
			return
		}

		completion, err := svc.CompleteChallenge(r.Context(), req.UserID, req.ChallengeKey)
		if err != nil {
			respondServiceError(w, r, ErrMsgCompleteChallengeFailed, err)
			return
		}

		log.Info("Challenge completed",
			"user_id", req.UserID,
			"challenge_key", req.ChallengeKey,
			"points", completion.Points)

		respondJSON(w, http.StatusCreated, CompleteChallengeResponse{
			Message:    MsgChallengeCompleteSuccess,
			Completion: completion,
		})
	}
}
