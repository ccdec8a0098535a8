package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// encodeBuffers holds scratch buffers for respondJSON; every handler
// response passes through here, so encoding allocates once per size class
// rather than once per request
var encodeBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgResourceNotFoundErr = "Resource not found."

	// Athlete messages
	ErrMsgAthleteNotFoundError = "Athlete not found"
	ErrMsgUsernameTakenError   = "That username is already taken"
	ErrMsgDiscordTakenError    = "That Discord account is already linked to an athlete"

	// Activity messages
	ErrMsgInvalidEventTypeError = "That activity type cannot be submitted"
	ErrMsgInvalidPeriodError    = "Invalid period. Use daily, weekly, monthly, yearly or all"
	ErrMsgInvalidMetricError    = "Invalid metric. Use points, streak or goals"

	// Pillar messages
	ErrMsgUnknownPillarError = "Unknown pillar. Use resilient, relentless or fearless"

	// Achievement messages
	ErrMsgAchievementNotFoundError = "Achievement not found"

	// Challenge messages
	ErrMsgChallengeNotFoundError = "That challenge is not on today's card"
	ErrMsgChallengeDoneError     = "You already completed that challenge today"
	ErrMsgChallengePoolError     = "Daily challenges are not configured"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// This function converts internal service errors to appropriate HTTP status codes and
// messages that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgAthleteNotFoundError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrDiscordIDTaken):
		return http.StatusConflict, ErrMsgDiscordTakenError
	case errors.Is(err, domain.ErrUnknownPillar):
		return http.StatusNotFound, ErrMsgUnknownPillarError
	case errors.Is(err, domain.ErrAchievementNotFound):
		return http.StatusNotFound, ErrMsgAchievementNotFoundError
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound, ErrMsgChallengeNotFoundError
	case errors.Is(err, domain.ErrChallengeAlreadyDone):
		return http.StatusConflict, ErrMsgChallengeDoneError
	case errors.Is(err, domain.ErrChallengePoolEmpty):
		return http.StatusInternalServerError, ErrMsgChallengePoolError
	case errors.Is(err, domain.ErrInvalidEventType):
		return http.StatusBadRequest, ErrMsgInvalidEventTypeError
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, ErrMsgInvalidPeriodError
	case errors.Is(err, domain.ErrInvalidMetric):
		return http.StatusBadRequest, ErrMsgInvalidMetricError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Short custom messages (mostly from tests and mocks) pass through;
	// anything long or system-level collapses to the generic message
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName, "error", err)
	} else {
		log.Warn(opName, "error", err)
	}

	respondError(w, status, message)
}
