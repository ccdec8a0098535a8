package repository

import (
	"context"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// Stats defines the interface for activity event and streak persistence
type Stats interface {
	// RecordEvent inserts an activity event and fills in the generated ID and timestamp
	RecordEvent(ctx context.Context, event *domain.StatsEvent) error
	GetEventsByUser(ctx context.Context, userID string, startTime, endTime time.Time) ([]domain.StatsEvent, error)
	GetUserEventsByType(ctx context.Context, userID string, eventType domain.EventType, limit int) ([]domain.StatsEvent, error)

	// Lifetime totals used to assemble progression counters
	GetUserPoints(ctx context.Context, userID string) (int, error)
	GetUserPillarPoints(ctx context.Context, userID string) (map[domain.Pillar]int, error)
	GetUserGoalCount(ctx context.Context, userID string) (int, error)
	GetUserPillarGoals(ctx context.Context, userID string) (map[domain.Pillar]int, error)
	GetUserDaysActive(ctx context.Context, userID string) (int, error)

	// Time-windowed aggregates for summaries
	GetUserEventCounts(ctx context.Context, userID string, startTime, endTime time.Time) (map[domain.EventType]int, error)
	GetUserPointsInRange(ctx context.Context, userID string, startTime, endTime time.Time) (int, error)
	GetUserPillarGoalsInRange(ctx context.Context, userID string, startTime, endTime time.Time) (map[domain.Pillar]int, error)
	GetEventCounts(ctx context.Context, startTime, endTime time.Time) (map[domain.EventType]int, error)
	GetTotalEventCount(ctx context.Context, startTime, endTime time.Time) (int, error)
	GetTotalPoints(ctx context.Context, startTime, endTime time.Time) (int, error)

	// Leaderboards. Goals counts the same event types as GetUserGoalCount
	GetTopUsersByPoints(ctx context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error)
	GetTopUsersByGoals(ctx context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error)
	GetTopUsersByStreak(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// Streak state
	GetStreak(ctx context.Context, userID string) (*domain.StreakState, error)
	UpsertStreak(ctx context.Context, state domain.StreakState) error

	// ResetExpiredStreaks zeroes every streak whose last active day is before
	// the given UTC day and returns the athletes affected
	ResetExpiredStreaks(ctx context.Context, before string) ([]domain.ExpiredStreak, error)
}
