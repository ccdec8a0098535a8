package challenge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
)

// mockChallengeRepository implements repository.Challenge in memory
type mockChallengeRepository struct {
	mu          sync.Mutex
	completions map[string]domain.ChallengeCompletion
}

func newMockChallengeRepository() *mockChallengeRepository {
	return &mockChallengeRepository{completions: make(map[string]domain.ChallengeCompletion)}
}

func completionKey(userID, day, challengeKey string) string {
	return userID + "|" + day + "|" + challengeKey
}

func (m *mockChallengeRepository) RecordCompletion(_ context.Context, completion domain.ChallengeCompletion) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := completionKey(completion.UserID, completion.Day, completion.ChallengeKey)
	if _, exists := m.completions[key]; exists {
		return false, nil
	}
	m.completions[key] = completion
	return true, nil
}

func (m *mockChallengeRepository) GetCompletion(_ context.Context, userID, day, challengeKey string) (*domain.ChallengeCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.completions[completionKey(userID, day, challengeKey)]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *mockChallengeRepository) GetCompletionsForDay(_ context.Context, userID, day string) ([]domain.ChallengeCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.ChallengeCompletion
	for _, c := range m.completions {
		if c.UserID == userID && c.Day == day {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockChallengeRepository) GetCompletionCounts(_ context.Context, day string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int)
	for _, c := range m.completions {
		if c.Day == day {
			counts[c.ChallengeKey]++
		}
	}
	return counts, nil
}

// mockStatsService captures awarded activities
type mockStatsService struct {
	mu        sync.Mutex
	recorded  []domain.StatsEvent
	recordErr error
	sources   []string
}

func (m *mockStatsService) RecordActivity(_ context.Context, userID string, eventType domain.EventType, pillar *domain.Pillar, points int, metadata interface{}, source string) (*domain.StatsEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordErr != nil {
		return nil, m.recordErr
	}
	evt := domain.StatsEvent{
		EventID:   int64(len(m.recorded) + 1),
		UserID:    userID,
		EventType: eventType,
		Pillar:    pillar,
		Points:    points,
		EventData: metadata,
		CreatedAt: time.Now().UTC(),
	}
	m.recorded = append(m.recorded, evt)
	m.sources = append(m.sources, source)
	return &evt, nil
}

func (m *mockStatsService) GetUserCounters(_ context.Context, _ string) (*domain.UserCounters, error) {
	return &domain.UserCounters{}, nil
}

func (m *mockStatsService) GetUserCurrentStreak(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (m *mockStatsService) GetUserEvents(_ context.Context, _ string, _ string) ([]domain.StatsEvent, error) {
	return nil, nil
}

func (m *mockStatsService) GetUserStats(_ context.Context, _ string, _ string) (*domain.StatsSummary, error) {
	return nil, nil
}

func (m *mockStatsService) GetSystemStats(_ context.Context, _ string) (*domain.StatsSummary, error) {
	return nil, nil
}

func (m *mockStatsService) GetLeaderboard(_ context.Context, _ string, _ string, _ int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}

func (m *mockStatsService) ResetExpiredStreaks(_ context.Context, _ string) ([]domain.ExpiredStreak, error) {
	return nil, nil
}

func (m *mockStatsService) awards() []domain.StatsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.StatsEvent{}, m.recorded...)
}

// capturingBus records every published event for assertions
type capturingBus struct {
	mu        sync.Mutex
	published []event.Event
}

func (b *capturingBus) Publish(_ context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, evt)
	return nil
}

func (b *capturingBus) Subscribe(_ event.Type, _ event.Handler) {}

func (b *capturingBus) ofType(t event.Type) []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []event.Event
	for _, evt := range b.published {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

func testPool(size int) *domain.ChallengePool {
	pillars := domain.Pillars
	difficulties := []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
	pool := &domain.ChallengePool{Version: "1.0", DailyCount: 3}
	for i := 0; i < size; i++ {
		pool.Challenges = append(pool.Challenges, domain.ChallengeTemplate{
			ChallengeKey: fmt.Sprintf("challenge_%d", i),
			Title:        fmt.Sprintf("Challenge %d", i),
			Description:  "A test challenge",
			Pillar:       pillars[i%len(pillars)],
			Points:       10 + 5*(i%3),
			Difficulty:   difficulties[i%len(difficulties)],
		})
	}
	return pool
}

func newTestChallengeService(t *testing.T, pool *domain.ChallengePool) (Service, *mockChallengeRepository, *mockStatsService, *capturingBus) {
	t.Helper()
	repo := newMockChallengeRepository()
	statsSvc := &mockStatsService{}
	bus := &capturingBus{}
	svc, err := NewService(repo, statsSvc, bus, pool)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, repo, statsSvc, bus
}

func TestNewService_EmptyPool(t *testing.T) {
	_, err := NewService(newMockChallengeRepository(), &mockStatsService{}, &capturingBus{}, &domain.ChallengePool{Version: "1.0"})
	if !errors.Is(err, domain.ErrChallengePoolEmpty) {
		t.Errorf("Expected ErrChallengePoolEmpty, got %v", err)
	}
}

func TestDaySeed(t *testing.T) {
	tests := []struct {
		day  string
		want int64
	}{
		{"2026-03-14", 20260314},
		{"2026-12-01", 20261201},
		{"2000-01-01", 20000101},
	}
	for _, tt := range tests {
		if got := daySeed(tt.day); got != tt.want {
			t.Errorf("daySeed(%s) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestRotationDeterministic(t *testing.T) {
	svc, _, _, _ := newTestChallengeService(t, testPool(12))
	s := svc.(*service)

	first := s.rotationForDay("2026-03-14")
	second := s.rotationForDay("2026-03-14")

	if len(first) != 3 {
		t.Fatalf("Expected 3 challenges, got %d", len(first))
	}
	for i := range first {
		if first[i].ChallengeKey != second[i].ChallengeKey {
			t.Errorf("Expected identical rotation for the same day, got %s vs %s",
				first[i].ChallengeKey, second[i].ChallengeKey)
		}
	}

	// Rotations vary across a month of days
	seen := make(map[string]bool)
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		rotation := s.rotationForDay(day.AddDate(0, 0, i).Format(DayFormat))
		key := ""
		for _, c := range rotation {
			key += c.ChallengeKey + ","
		}
		seen[key] = true
	}
	if len(seen) < 2 {
		t.Error("Expected the rotation to change across days")
	}
}

func TestRotationSmallPoolClamped(t *testing.T) {
	pool := testPool(2)
	pool.DailyCount = 5
	svc, _, _, _ := newTestChallengeService(t, pool)

	challenges, err := svc.GetDailyChallenges(context.Background(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(challenges) != 2 {
		t.Errorf("Expected rotation clamped to pool size 2, got %d", len(challenges))
	}
}

func TestGetDailyChallenges_CompletionState(t *testing.T) {
	svc, repo, _, _ := newTestChallengeService(t, testPool(12))
	ctx := context.Background()

	todays, err := svc.GetDailyChallenges(ctx, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(todays) != 3 {
		t.Fatalf("Expected 3 challenges, got %d", len(todays))
	}

	done := todays[0]
	if _, err := repo.RecordCompletion(ctx, domain.ChallengeCompletion{
		UserID:       "athlete-1",
		ChallengeKey: done.ChallengeKey,
		Day:          done.Day,
		Points:       done.Points,
		CompletedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Failed to seed completion: %v", err)
	}

	annotated, err := svc.GetDailyChallenges(ctx, "athlete-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, c := range annotated {
		if c.ChallengeKey == done.ChallengeKey {
			if !c.Completed {
				t.Error("Expected completed challenge to be marked")
			}
			if c.CompletedAt == nil {
				t.Error("Expected completion timestamp")
			}
		} else if c.Completed {
			t.Errorf("Expected %s to be incomplete", c.ChallengeKey)
		}
	}
}

func TestCompleteChallenge(t *testing.T) {
	svc, repo, statsSvc, bus := newTestChallengeService(t, testPool(12))
	ctx := context.Background()

	todays, err := svc.GetDailyChallenges(ctx, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	target := todays[0]

	completion, err := svc.CompleteChallenge(ctx, "athlete-1", target.ChallengeKey)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if completion.Points != target.Points {
		t.Errorf("Expected %d points, got %d", target.Points, completion.Points)
	}
	if completion.Day != target.Day {
		t.Errorf("Expected day %s, got %s", target.Day, completion.Day)
	}

	stored, err := repo.GetCompletion(ctx, "athlete-1", target.Day, target.ChallengeKey)
	if err != nil || stored == nil {
		t.Fatalf("Expected persisted completion, got %v (err %v)", stored, err)
	}

	awards := statsSvc.awards()
	if len(awards) != 1 {
		t.Fatalf("Expected 1 awarded activity, got %d", len(awards))
	}
	award := awards[0]
	if award.EventType != domain.EventChallengeCompleted {
		t.Errorf("Expected challenge_completed activity, got %s", award.EventType)
	}
	if award.Points != target.Points {
		t.Errorf("Expected %d awarded points, got %d", target.Points, award.Points)
	}
	if award.Pillar == nil || *award.Pillar != target.Pillar {
		t.Errorf("Expected pillar %s on the award", target.Pillar)
	}
	if statsSvc.sources[0] != domain.SourceChallenge {
		t.Errorf("Expected challenge source, got %s", statsSvc.sources[0])
	}

	completedEvents := bus.ofType(event.ChallengeCompleted)
	if len(completedEvents) != 1 {
		t.Fatalf("Expected 1 challenge.completed event, got %d", len(completedEvents))
	}
	payload, err := event.DecodePayload[domain.ChallengeCompletedPayload](completedEvents[0])
	if err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload.ChallengeKey != target.ChallengeKey || payload.Day != target.Day {
		t.Errorf("Expected %s on %s in payload, got %s on %s",
			target.ChallengeKey, target.Day, payload.ChallengeKey, payload.Day)
	}
}

func TestCompleteChallenge_Idempotent(t *testing.T) {
	svc, _, statsSvc, _ := newTestChallengeService(t, testPool(12))
	ctx := context.Background()

	todays, _ := svc.GetDailyChallenges(ctx, "")
	target := todays[1]

	if _, err := svc.CompleteChallenge(ctx, "athlete-1", target.ChallengeKey); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	_, err := svc.CompleteChallenge(ctx, "athlete-1", target.ChallengeKey)
	if !errors.Is(err, domain.ErrChallengeAlreadyDone) {
		t.Errorf("Expected ErrChallengeAlreadyDone, got %v", err)
	}
	if got := len(statsSvc.awards()); got != 1 {
		t.Errorf("Expected points awarded once, got %d awards", got)
	}
}

func TestCompleteChallenge_NotInRotation(t *testing.T) {
	svc, _, _, _ := newTestChallengeService(t, testPool(12))
	s := svc.(*service)
	ctx := context.Background()

	today := time.Now().UTC().Format(DayFormat)
	inRotation := make(map[string]bool)
	for _, c := range s.rotationForDay(today) {
		inRotation[c.ChallengeKey] = true
	}

	// A pool challenge that is not part of today's rotation cannot be completed
	var benched string
	for _, tpl := range s.pool {
		if !inRotation[tpl.ChallengeKey] {
			benched = tpl.ChallengeKey
			break
		}
	}
	if benched == "" {
		t.Fatal("Expected at least one benched challenge with a pool of 12")
	}

	if _, err := svc.CompleteChallenge(ctx, "athlete-1", benched); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Errorf("Expected ErrChallengeNotFound for benched challenge, got %v", err)
	}
	if _, err := svc.CompleteChallenge(ctx, "athlete-1", "no_such_challenge"); !errors.Is(err, domain.ErrChallengeNotFound) {
		t.Errorf("Expected ErrChallengeNotFound for unknown key, got %v", err)
	}
}

func TestCompleteChallenge_Validation(t *testing.T) {
	svc, _, _, _ := newTestChallengeService(t, testPool(3))
	ctx := context.Background()

	if _, err := svc.CompleteChallenge(ctx, "", "challenge_0"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty user, got %v", err)
	}
	if _, err := svc.CompleteChallenge(ctx, "athlete-1", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty key, got %v", err)
	}
}

func TestCompleteChallenge_AwardFailureSurfaces(t *testing.T) {
	svc, repo, statsSvc, bus := newTestChallengeService(t, testPool(12))
	statsSvc.recordErr = errors.New("db down")
	ctx := context.Background()

	todays, _ := svc.GetDailyChallenges(ctx, "")
	target := todays[0]

	_, err := svc.CompleteChallenge(ctx, "athlete-1", target.ChallengeKey)
	if err == nil {
		t.Fatal("Expected error when the award fails")
	}

	// The completion row is the idempotency guard and stays
	stored, _ := repo.GetCompletion(ctx, "athlete-1", target.Day, target.ChallengeKey)
	if stored == nil {
		t.Error("Expected completion row to remain")
	}
	if got := len(bus.ofType(event.ChallengeCompleted)); got != 0 {
		t.Errorf("Expected no challenge.completed event after a failed award, got %d", got)
	}
}

func TestRotateDaily(t *testing.T) {
	svc, repo, _, _ := newTestChallengeService(t, testPool(12))
	ctx := context.Background()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(DayFormat)
	if _, err := repo.RecordCompletion(ctx, domain.ChallengeCompletion{
		UserID:       "athlete-1",
		ChallengeKey: "challenge_3",
		Day:          yesterday,
		Points:       10,
		CompletedAt:  time.Now().UTC().AddDate(0, 0, -1),
	}); err != nil {
		t.Fatalf("Failed to seed completion: %v", err)
	}

	rotation, err := svc.RotateDaily(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rotation) != 3 {
		t.Errorf("Expected 3 challenges in the new rotation, got %d", len(rotation))
	}

	today := time.Now().UTC().Format(DayFormat)
	for _, c := range rotation {
		if c.Day != today {
			t.Errorf("Expected rotation for %s, got %s", today, c.Day)
		}
	}

	if svc.PoolSize() != 12 {
		t.Errorf("Expected pool size 12, got %d", svc.PoolSize())
	}
}
