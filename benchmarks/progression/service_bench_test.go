package progression_bench

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
)

// --- Stubs (Zero-overhead mocks for benchmarking) ---

type StubRepository struct {
	nextID int64
}

func (s *StubRepository) RecordEvent(ctx context.Context, evt *domain.StatsEvent) error {
	s.nextID++
	evt.EventID = s.nextID
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (s *StubRepository) GetEventsByUser(ctx context.Context, userID string, startTime, endTime time.Time) ([]domain.StatsEvent, error) {
	return nil, nil
}

func (s *StubRepository) GetUserEventsByType(ctx context.Context, userID string, eventType domain.EventType, limit int) ([]domain.StatsEvent, error) {
	return nil, nil
}

func (s *StubRepository) GetUserPoints(ctx context.Context, userID string) (int, error) {
	return 1350, nil
}

func (s *StubRepository) GetUserPillarPoints(ctx context.Context, userID string) (map[domain.Pillar]int, error) {
	// Return a fresh map to simulate a db fetch. The relentless total sits
	// mid-ladder so a 25-point activity never crosses a level threshold.
	return map[domain.Pillar]int{
		domain.PillarResilient:  480,
		domain.PillarRelentless: 760,
		domain.PillarFearless:   250,
	}, nil
}

func (s *StubRepository) GetUserGoalCount(ctx context.Context, userID string) (int, error) {
	return 52, nil
}

func (s *StubRepository) GetUserPillarGoals(ctx context.Context, userID string) (map[domain.Pillar]int, error) {
	return map[domain.Pillar]int{
		domain.PillarResilient:  18,
		domain.PillarRelentless: 22,
		domain.PillarFearless:   12,
	}, nil
}

func (s *StubRepository) GetUserDaysActive(ctx context.Context, userID string) (int, error) {
	return 60, nil
}

func (s *StubRepository) GetUserEventCounts(ctx context.Context, userID string, startTime, endTime time.Time) (map[domain.EventType]int, error) {
	return map[domain.EventType]int{
		domain.EventGoalCompleted: 3,
		domain.EventWorkoutLogged: 5,
	}, nil
}

func (s *StubRepository) GetUserPointsInRange(ctx context.Context, userID string, startTime, endTime time.Time) (int, error) {
	return 120, nil
}

func (s *StubRepository) GetUserPillarGoalsInRange(ctx context.Context, userID string, startTime, endTime time.Time) (map[domain.Pillar]int, error) {
	return map[domain.Pillar]int{domain.PillarRelentless: 3}, nil
}

func (s *StubRepository) GetEventCounts(ctx context.Context, startTime, endTime time.Time) (map[domain.EventType]int, error) {
	return nil, nil
}

func (s *StubRepository) GetTotalEventCount(ctx context.Context, startTime, endTime time.Time) (int, error) {
	return 0, nil
}

func (s *StubRepository) GetTotalPoints(ctx context.Context, startTime, endTime time.Time) (int, error) {
	return 0, nil
}

func (s *StubRepository) GetTopUsersByPoints(ctx context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func (s *StubRepository) GetTopUsersByGoals(ctx context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func (s *StubRepository) GetTopUsersByStreak(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func (s *StubRepository) GetStreak(ctx context.Context, userID string) (*domain.StreakState, error) {
	// Return a fresh state last active yesterday, so every iteration runs
	// the increment path without state conflicts from previous iterations.
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(stats.DayFormat)
	return &domain.StreakState{
		UserID:        userID,
		CurrentStreak: 6,
		LongestStreak: 11,
		LastActiveDay: yesterday,
	}, nil
}

func (s *StubRepository) UpsertStreak(ctx context.Context, state domain.StreakState) error {
	return nil
}

func (s *StubRepository) ResetExpiredStreaks(ctx context.Context, before string) ([]domain.ExpiredStreak, error) {
	return nil, nil
}

// StubBus implements event.Bus
type StubBus struct{}

func (b *StubBus) Publish(ctx context.Context, e event.Event) error          { return nil }
func (b *StubBus) Subscribe(eventType event.Type, handler event.Handler) {}

// --- Benchmark Functions ---

// BenchmarkRecordActivity measures the full activity pipeline: validation,
// event persistence, publishes, the level-up check and the streak advance.
func BenchmarkRecordActivity(b *testing.B) {
	repo := &StubRepository{}
	bus := &StubBus{}
	catalog := progression.DefaultCatalog()

	svc := stats.NewService(repo, catalog, bus)

	userID := uuid.NewString()
	relentless := domain.PillarRelentless
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// The StubRepository returns a streak last active yesterday every
		// time, so each iteration exercises the increment path.
		_, err := svc.RecordActivity(ctx, userID, domain.EventGoalCompleted, &relentless, 25, nil, domain.SourceAPI)
		if err != nil {
			b.Fatalf("RecordActivity failed: %v", err)
		}
	}
}

// BenchmarkGetUserCounters measures assembling a counters snapshot: six
// aggregate reads plus a ladder resolution per pillar.
func BenchmarkGetUserCounters(b *testing.B) {
	repo := &StubRepository{}
	bus := &StubBus{}
	catalog := progression.DefaultCatalog()

	svc := stats.NewService(repo, catalog, bus)

	userID := uuid.NewString()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		counters, err := svc.GetUserCounters(ctx, userID)
		if err != nil {
			b.Fatalf("GetUserCounters failed: %v", err)
		}
		if counters.TotalPoints == 0 {
			b.Fatal("Expected non-zero total points from stub aggregates")
		}
	}
}
