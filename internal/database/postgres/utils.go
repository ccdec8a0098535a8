package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
// Use this instead of repeating uuid.Parse + error wrapping throughout the codebase.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", ErrMsgInvalidUserID, err)
	}
	return u, nil
}

// pillarToText converts an optional pillar to a nullable query argument
func pillarToText(p *domain.Pillar) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// timeOrNil converts a timestamp to a nullable query argument so the
// database default applies when the caller left it zero
func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
