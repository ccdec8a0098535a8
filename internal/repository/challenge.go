package repository

import (
	"context"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// Challenge defines the interface for daily challenge completion persistence
type Challenge interface {
	// RecordCompletion inserts a completion row. Returns false when the
	// athlete already completed the challenge on that day.
	RecordCompletion(ctx context.Context, completion domain.ChallengeCompletion) (bool, error)
	GetCompletion(ctx context.Context, userID, day, challengeKey string) (*domain.ChallengeCompletion, error)
	GetCompletionsForDay(ctx context.Context, userID, day string) ([]domain.ChallengeCompletion, error)

	// GetCompletionCounts returns completions per challenge key for a day
	GetCompletionCounts(ctx context.Context, day string) (map[string]int, error)
}
