package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderNotFound indicates no provider is registered for a feature
	ErrProviderNotFound = errors.New("scenario provider not found")

	// ErrScenarioNotFound indicates the requested scenario does not exist
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrInvalidAction indicates an action the provider does not support
	ErrInvalidAction = errors.New("invalid action")

	// ErrAthleteNotInitialized indicates a step that needs an active
	// athlete ran before any set_state step
	ErrAthleteNotInitialized = errors.New("no athlete initialized for scenario")

	// ErrDatabaseOperation indicates a direct database manipulation failed
	ErrDatabaseOperation = errors.New("database operation failed")
)

// ParameterError reports a missing or malformed step parameter
type ParameterError struct {
	Parameter string
	Message   string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Parameter, e.Message)
}

// NewParameterError creates a ParameterError
func NewParameterError(param, message string) *ParameterError {
	return &ParameterError{Parameter: param, Message: message}
}

// WrapDatabaseError tags a database failure with the operation that hit it
func WrapDatabaseError(operation string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDatabaseOperation, operation, err)
}
