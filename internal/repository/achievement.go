package repository

import (
	"context"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
)

// Achievement defines the interface for unlock records and the catalog
// mirror. The mirror rows exist for reporting and drift detection; the
// in-memory catalog stays the source of truth for calculations.
type Achievement interface {
	progression.Repository

	// RecordUnlock inserts an unlock record. Returns false when the athlete
	// already holds the achievement; unlocks are never updated or deleted.
	RecordUnlock(ctx context.Context, record domain.UnlockRecord) (bool, error)
	GetUnlocks(ctx context.Context, userID string) ([]domain.UnlockRecord, error)
	GetUnlockedIDs(ctx context.Context, userID string) ([]string, error)

	// GetUnlockCounts returns how many athletes hold each achievement
	GetUnlockCounts(ctx context.Context) (map[string]int, error)
}
