package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
)

// mockStatsRepository implements repository.Stats in memory. It is
// thread-safe because the concurrency tests drive it from many goroutines.
type mockStatsRepository struct {
	mu               sync.Mutex
	events           []domain.StatsEvent
	streaks          map[string]domain.StreakState
	recordEventError error
	lastLimit        int
}

func newMockStatsRepository() *mockStatsRepository {
	return &mockStatsRepository{streaks: make(map[string]domain.StreakState)}
}

func (m *mockStatsRepository) RecordEvent(_ context.Context, evt *domain.StatsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordEventError != nil {
		return m.recordEventError
	}
	evt.EventID = int64(len(m.events) + 1)
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	m.events = append(m.events, *evt)
	return nil
}

func (m *mockStatsRepository) GetEventsByUser(_ context.Context, userID string, startTime, endTime time.Time) ([]domain.StatsEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var filtered []domain.StatsEvent
	for _, evt := range m.events {
		if evt.UserID == userID && inRange(evt.CreatedAt, startTime, endTime) {
			filtered = append(filtered, evt)
		}
	}
	return filtered, nil
}

func (m *mockStatsRepository) GetUserEventsByType(_ context.Context, userID string, eventType domain.EventType, limit int) ([]domain.StatsEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var filtered []domain.StatsEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].UserID == userID && m.events[i].EventType == eventType {
			filtered = append(filtered, m.events[i])
			if limit > 0 && len(filtered) == limit {
				break
			}
		}
	}
	return filtered, nil
}

func (m *mockStatsRepository) GetUserPoints(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, evt := range m.events {
		if evt.UserID == userID {
			total += evt.Points
		}
	}
	return total, nil
}

func (m *mockStatsRepository) GetUserPillarPoints(_ context.Context, userID string) (map[domain.Pillar]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[domain.Pillar]int)
	for _, evt := range m.events {
		if evt.UserID == userID && evt.Pillar != nil {
			out[*evt.Pillar] += evt.Points
		}
	}
	return out, nil
}

func (m *mockStatsRepository) GetUserGoalCount(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, evt := range m.events {
		if evt.UserID == userID && isGoalEvent(evt.EventType) {
			count++
		}
	}
	return count, nil
}

func (m *mockStatsRepository) GetUserPillarGoals(_ context.Context, userID string) (map[domain.Pillar]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[domain.Pillar]int)
	for _, evt := range m.events {
		if evt.UserID == userID && isGoalEvent(evt.EventType) && evt.Pillar != nil {
			out[*evt.Pillar]++
		}
	}
	return out, nil
}

func (m *mockStatsRepository) GetUserDaysActive(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	days := make(map[string]bool)
	for _, evt := range m.events {
		if evt.UserID == userID && evt.EventType != domain.EventAchievementUnlocked {
			days[evt.CreatedAt.UTC().Format(DayFormat)] = true
		}
	}
	return len(days), nil
}

func (m *mockStatsRepository) GetUserEventCounts(_ context.Context, userID string, startTime, endTime time.Time) (map[domain.EventType]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[domain.EventType]int)
	for _, evt := range m.events {
		if evt.UserID == userID && inRange(evt.CreatedAt, startTime, endTime) {
			counts[evt.EventType]++
		}
	}
	return counts, nil
}

func (m *mockStatsRepository) GetUserPointsInRange(_ context.Context, userID string, startTime, endTime time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, evt := range m.events {
		if evt.UserID == userID && inRange(evt.CreatedAt, startTime, endTime) {
			total += evt.Points
		}
	}
	return total, nil
}

func (m *mockStatsRepository) GetUserPillarGoalsInRange(_ context.Context, userID string, startTime, endTime time.Time) (map[domain.Pillar]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[domain.Pillar]int)
	for _, evt := range m.events {
		if evt.UserID == userID && isGoalEvent(evt.EventType) && evt.Pillar != nil && inRange(evt.CreatedAt, startTime, endTime) {
			out[*evt.Pillar]++
		}
	}
	return out, nil
}

func (m *mockStatsRepository) GetEventCounts(_ context.Context, startTime, endTime time.Time) (map[domain.EventType]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[domain.EventType]int)
	for _, evt := range m.events {
		if inRange(evt.CreatedAt, startTime, endTime) {
			counts[evt.EventType]++
		}
	}
	return counts, nil
}

func (m *mockStatsRepository) GetTotalEventCount(_ context.Context, startTime, endTime time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, evt := range m.events {
		if inRange(evt.CreatedAt, startTime, endTime) {
			count++
		}
	}
	return count, nil
}

func (m *mockStatsRepository) GetTotalPoints(_ context.Context, startTime, endTime time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, evt := range m.events {
		if inRange(evt.CreatedAt, startTime, endTime) {
			total += evt.Points
		}
	}
	return total, nil
}

func (m *mockStatsRepository) GetTopUsersByPoints(_ context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLimit = limit
	totals := make(map[string]int)
	for _, evt := range m.events {
		if inRange(evt.CreatedAt, startTime, endTime) {
			totals[evt.UserID] += evt.Points
		}
	}
	return toEntries(totals, domain.MetricPoints), nil
}

func (m *mockStatsRepository) GetTopUsersByGoals(_ context.Context, startTime, endTime time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLimit = limit
	totals := make(map[string]int)
	for _, evt := range m.events {
		if isGoalEvent(evt.EventType) && inRange(evt.CreatedAt, startTime, endTime) {
			totals[evt.UserID]++
		}
	}
	return toEntries(totals, domain.MetricGoals), nil
}

func (m *mockStatsRepository) GetTopUsersByStreak(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastLimit = limit
	totals := make(map[string]int)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(DayFormat)
	for userID, state := range m.streaks {
		if state.CurrentStreak > 0 && state.LastActiveDay >= yesterday {
			totals[userID] = state.CurrentStreak
		}
	}
	return toEntries(totals, domain.MetricStreak), nil
}

func (m *mockStatsRepository) GetStreak(_ context.Context, userID string) (*domain.StreakState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.streaks[userID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (m *mockStatsRepository) UpsertStreak(_ context.Context, state domain.StreakState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.streaks[state.UserID] = state
	return nil
}

func (m *mockStatsRepository) ResetExpiredStreaks(_ context.Context, before string) ([]domain.ExpiredStreak, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []domain.ExpiredStreak
	for userID, state := range m.streaks {
		if state.CurrentStreak > 0 && state.LastActiveDay < before {
			expired = append(expired, domain.ExpiredStreak{UserID: userID, PreviousStreak: state.CurrentStreak})
			state.CurrentStreak = 0
			m.streaks[userID] = state
		}
	}
	return expired, nil
}

func (m *mockStatsRepository) eventsOfType(eventType domain.EventType) []domain.StatsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.StatsEvent
	for _, evt := range m.events {
		if evt.EventType == eventType {
			out = append(out, evt)
		}
	}
	return out
}

func inRange(at, start, end time.Time) bool {
	return !at.Before(start) && at.Before(end)
}

func isGoalEvent(t domain.EventType) bool {
	return t == domain.EventGoalCompleted || t == domain.EventChallengeCompleted
}

func toEntries(totals map[string]int, metric string) []domain.LeaderboardEntry {
	var entries []domain.LeaderboardEntry
	for userID, value := range totals {
		entries = append(entries, domain.LeaderboardEntry{UserID: userID, Value: value, Metric: metric})
	}
	return entries
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

func newTestService() (Service, *mockStatsRepository, *capturingBus) {
	repo := newMockStatsRepository()
	bus := &capturingBus{}
	svc := NewService(repo, progression.DefaultCatalog(), bus)
	return svc, repo, bus
}

func pillarPtr(p domain.Pillar) *domain.Pillar {
	return &p
}

func TestRecordActivity(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	evt, err := svc.RecordActivity(ctx, "athlete-1", domain.EventGoalCompleted, pillarPtr(domain.PillarResilient), 25,
		map[string]interface{}{"goal_name": "morning run"}, domain.SourceAPI)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if evt.EventID == 0 {
		t.Error("Expected event ID to be set")
	}

	goals := repo.eventsOfType(domain.EventGoalCompleted)
	if len(goals) != 1 {
		t.Fatalf("Expected 1 goal event, got %d", len(goals))
	}
	if goals[0].Points != 25 {
		t.Errorf("Expected 25 points, got %d", goals[0].Points)
	}

	// First activity starts the streak and writes a history row
	streakRows := repo.eventsOfType(domain.EventDailyStreak)
	if len(streakRows) != 1 {
		t.Fatalf("Expected 1 streak history row, got %d", len(streakRows))
	}

	if got := len(bus.ofType(event.ActivityRecorded)); got != 1 {
		t.Errorf("Expected 1 activity.recorded event, got %d", got)
	}
	if got := len(bus.ofType(event.GoalCompleted)); got != 1 {
		t.Errorf("Expected 1 goal.completed event, got %d", got)
	}
	advanced := bus.ofType(event.StreakAdvanced)
	if len(advanced) != 1 {
		t.Fatalf("Expected 1 streak.advanced event, got %d", len(advanced))
	}
	payload, err := event.DecodePayload[domain.StreakAdvancedPayload](advanced[0])
	if err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload.Streak != 1 {
		t.Errorf("Expected streak 1, got %d", payload.Streak)
	}
}

func TestRecordActivityValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name      string
		userID    string
		eventType domain.EventType
		points    int
		wantErr   error
	}{
		{"empty user id", "", domain.EventGoalCompleted, 10, domain.ErrInvalidInput},
		{"unknown event type", "athlete-1", "item_sold", 10, domain.ErrInvalidEventType},
		{"negative points", "athlete-1", domain.EventWorkoutLogged, -5, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordActivity(ctx, tt.userID, tt.eventType, nil, tt.points, nil, domain.SourceAPI)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRecordActivityWorkoutDoesNotPublishGoalCompleted(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()

	_, err := svc.RecordActivity(ctx, "athlete-1", domain.EventWorkoutLogged, pillarPtr(domain.PillarRelentless), 10, nil, domain.SourceAPI)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := len(bus.ofType(event.GoalCompleted)); got != 0 {
		t.Errorf("Expected no goal.completed events for a workout, got %d", got)
	}
	if got := len(bus.ofType(event.ActivityRecorded)); got != 1 {
		t.Errorf("Expected 1 activity.recorded event, got %d", got)
	}
}

func TestRecordActivityUnlockRowDoesNotAdvanceStreak(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	_, err := svc.RecordActivity(ctx, "athlete-1", domain.EventAchievementUnlocked, nil, 0,
		map[string]interface{}{"achievement_id": "first_steps"}, domain.SourceSystem)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state, err := repo.GetStreak(ctx, "athlete-1")
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	if state != nil {
		t.Errorf("Expected no streak state from an unlock row, got %+v", state)
	}
	if rows := repo.eventsOfType(domain.EventDailyStreak); len(rows) != 0 {
		t.Errorf("Expected no streak history rows, got %d", len(rows))
	}
	if got := len(bus.ofType(event.StreakAdvanced)); got != 0 {
		t.Errorf("Expected no streak.advanced events, got %d", got)
	}
}

func TestRecordActivityPublishesLevelUp(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()

	// 190 resilient points stays on level 1 (level 2 opens at 200)
	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventWorkoutLogged, pillarPtr(domain.PillarResilient), 190, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if got := len(bus.ofType(event.LevelUp)); got != 0 {
		t.Fatalf("Expected no level.up below the threshold, got %d", got)
	}

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventGoalCompleted, pillarPtr(domain.PillarResilient), 20, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}

	levelUps := bus.ofType(event.LevelUp)
	if len(levelUps) != 1 {
		t.Fatalf("Expected 1 level.up event, got %d", len(levelUps))
	}
	payload, err := event.DecodePayload[domain.LevelUpPayload](levelUps[0])
	if err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload.PreviousLevel != 1 || payload.NewLevel != 2 {
		t.Errorf("Expected level 1 -> 2, got %d -> %d", payload.PreviousLevel, payload.NewLevel)
	}
	if payload.Pillar != string(domain.PillarResilient) {
		t.Errorf("Expected resilient pillar, got %s", payload.Pillar)
	}
}

func TestStreakSameDayIsNoOp(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventWorkoutLogged, nil, 10, nil, domain.SourceAPI); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	state, err := repo.GetStreak(ctx, "athlete-1")
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	if state.CurrentStreak != 1 {
		t.Errorf("Expected streak 1 after same-day activities, got %d", state.CurrentStreak)
	}
	if rows := repo.eventsOfType(domain.EventDailyStreak); len(rows) != 1 {
		t.Errorf("Expected 1 streak history row, got %d", len(rows))
	}
	if got := len(bus.ofType(event.StreakAdvanced)); got != 1 {
		t.Errorf("Expected 1 streak.advanced event, got %d", got)
	}
}

func TestStreakConsecutiveDayIncrements(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(DayFormat)
	seedStreak(t, repo, domain.StreakState{
		UserID:        "athlete-1",
		CurrentStreak: 3,
		LongestStreak: 5,
		LastActiveDay: yesterday,
	})

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventGoalCompleted, nil, 20, nil, domain.SourceAPI); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state, _ := repo.GetStreak(ctx, "athlete-1")
	if state.CurrentStreak != 4 {
		t.Errorf("Expected streak 4, got %d", state.CurrentStreak)
	}
	if state.LongestStreak != 5 {
		t.Errorf("Expected longest streak preserved at 5, got %d", state.LongestStreak)
	}

	advanced := bus.ofType(event.StreakAdvanced)
	if len(advanced) != 1 {
		t.Fatalf("Expected 1 streak.advanced event, got %d", len(advanced))
	}
	payload, _ := event.DecodePayload[domain.StreakAdvancedPayload](advanced[0])
	if payload.Streak != 4 {
		t.Errorf("Expected streak.advanced payload 4, got %d", payload.Streak)
	}
}

func TestStreakNewRecordRaisesLongest(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(DayFormat)
	seedStreak(t, repo, domain.StreakState{
		UserID:        "athlete-1",
		CurrentStreak: 5,
		LongestStreak: 5,
		LastActiveDay: yesterday,
	})

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventWorkoutLogged, nil, 10, nil, domain.SourceAPI); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state, _ := repo.GetStreak(ctx, "athlete-1")
	if state.CurrentStreak != 6 || state.LongestStreak != 6 {
		t.Errorf("Expected streak 6/6, got %d/%d", state.CurrentStreak, state.LongestStreak)
	}
}

func TestStreakGapRestartsAtOne(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	threeDaysAgo := time.Now().UTC().AddDate(0, 0, -3).Format(DayFormat)
	seedStreak(t, repo, domain.StreakState{
		UserID:        "athlete-1",
		CurrentStreak: 7,
		LongestStreak: 7,
		LastActiveDay: threeDaysAgo,
	})

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventWorkoutLogged, nil, 10, nil, domain.SourceAPI); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state, _ := repo.GetStreak(ctx, "athlete-1")
	if state.CurrentStreak != 1 {
		t.Errorf("Expected streak restarted at 1, got %d", state.CurrentStreak)
	}
	if state.LongestStreak != 7 {
		t.Errorf("Expected longest streak preserved at 7, got %d", state.LongestStreak)
	}

	// The break was never announced by a rollover, so it is announced here
	resets := bus.ofType(event.StreakReset)
	if len(resets) != 1 {
		t.Fatalf("Expected 1 streak.reset event, got %d", len(resets))
	}
	payload, _ := event.DecodePayload[domain.StreakResetPayload](resets[0])
	if payload.PreviousStreak != 7 {
		t.Errorf("Expected previous streak 7, got %d", payload.PreviousStreak)
	}
	if got := len(bus.ofType(event.StreakAdvanced)); got != 0 {
		t.Errorf("Expected no streak.advanced on a restart, got %d", got)
	}
}

func TestStreakRestartAfterRolloverReset(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	// The rollover already zeroed the streak and published the reset
	threeDaysAgo := time.Now().UTC().AddDate(0, 0, -3).Format(DayFormat)
	seedStreak(t, repo, domain.StreakState{
		UserID:        "athlete-1",
		CurrentStreak: 0,
		LongestStreak: 9,
		LastActiveDay: threeDaysAgo,
	})

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventWorkoutLogged, nil, 10, nil, domain.SourceAPI); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state, _ := repo.GetStreak(ctx, "athlete-1")
	if state.CurrentStreak != 1 {
		t.Errorf("Expected streak 1, got %d", state.CurrentStreak)
	}
	if got := len(bus.ofType(event.StreakReset)); got != 0 {
		t.Errorf("Expected no duplicate streak.reset, got %d", got)
	}
	if got := len(bus.ofType(event.StreakAdvanced)); got != 1 {
		t.Errorf("Expected 1 streak.advanced, got %d", got)
	}
}

func TestGetUserCurrentStreak(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if streak, err := svc.GetUserCurrentStreak(ctx, "nobody"); err != nil || streak != 0 {
		t.Errorf("Expected 0 for unknown athlete, got %d (err %v)", streak, err)
	}

	today := time.Now().UTC().Format(DayFormat)
	seedStreak(t, repo, domain.StreakState{UserID: "fresh", CurrentStreak: 4, LongestStreak: 4, LastActiveDay: today})
	if streak, _ := svc.GetUserCurrentStreak(ctx, "fresh"); streak != 4 {
		t.Errorf("Expected 4 for today-active streak, got %d", streak)
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(DayFormat)
	seedStreak(t, repo, domain.StreakState{UserID: "pending", CurrentStreak: 2, LongestStreak: 6, LastActiveDay: yesterday})
	if streak, _ := svc.GetUserCurrentStreak(ctx, "pending"); streak != 2 {
		t.Errorf("Expected 2 for yesterday-active streak, got %d", streak)
	}

	stale := time.Now().UTC().AddDate(0, 0, -4).Format(DayFormat)
	seedStreak(t, repo, domain.StreakState{UserID: "lapsed", CurrentStreak: 8, LongestStreak: 8, LastActiveDay: stale})
	if streak, _ := svc.GetUserCurrentStreak(ctx, "lapsed"); streak != 0 {
		t.Errorf("Expected 0 for stale streak, got %d", streak)
	}
}

func TestGetUserCounters(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Two resilient goals, one fearless challenge, one relentless workout
	activities := []struct {
		eventType domain.EventType
		pillar    domain.Pillar
		points    int
	}{
		{domain.EventGoalCompleted, domain.PillarResilient, 25},
		{domain.EventGoalCompleted, domain.PillarResilient, 25},
		{domain.EventChallengeCompleted, domain.PillarFearless, 30},
		{domain.EventWorkoutLogged, domain.PillarRelentless, 10},
	}
	for _, a := range activities {
		if _, err := svc.RecordActivity(ctx, "athlete-1", a.eventType, pillarPtr(a.pillar), a.points, nil, domain.SourceAPI); err != nil {
			t.Fatalf("RecordActivity failed: %v", err)
		}
	}

	counters, err := svc.GetUserCounters(ctx, "athlete-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if counters.TotalPoints != 90 {
		t.Errorf("Expected 90 total points, got %d", counters.TotalPoints)
	}
	if counters.GoalsCompleted != 3 {
		t.Errorf("Expected 3 goals (challenge counts), got %d", counters.GoalsCompleted)
	}
	if counters.PillarGoals[domain.PillarResilient] != 2 {
		t.Errorf("Expected 2 resilient goals, got %d", counters.PillarGoals[domain.PillarResilient])
	}
	if counters.PillarGoals[domain.PillarFearless] != 1 {
		t.Errorf("Expected 1 fearless goal, got %d", counters.PillarGoals[domain.PillarFearless])
	}
	if counters.PillarPoints[domain.PillarResilient] != 50 {
		t.Errorf("Expected 50 resilient points, got %d", counters.PillarPoints[domain.PillarResilient])
	}
	if counters.Streak != 1 {
		t.Errorf("Expected streak 1, got %d", counters.Streak)
	}
	if counters.DaysActive != 1 {
		t.Errorf("Expected 1 active day, got %d", counters.DaysActive)
	}
	for _, pillar := range domain.Pillars {
		if counters.PillarLevels[pillar] != 1 {
			t.Errorf("Expected level 1 on %s at these totals, got %d", pillar, counters.PillarLevels[pillar])
		}
	}

	if _, err := svc.GetUserCounters(ctx, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty user id, got %v", err)
	}
}

func TestGetUserStats(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventGoalCompleted, pillarPtr(domain.PillarResilient), 25, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventWorkoutLogged, nil, 10, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}

	summary, err := svc.GetUserStats(ctx, "athlete-1", domain.PeriodDaily)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary.TotalPoints != 35 {
		t.Errorf("Expected 35 points, got %d", summary.TotalPoints)
	}
	if summary.EventCounts[domain.EventGoalCompleted] != 1 {
		t.Errorf("Expected 1 goal event, got %d", summary.EventCounts[domain.EventGoalCompleted])
	}
	if summary.PillarGoals[domain.PillarResilient] != 1 {
		t.Errorf("Expected 1 resilient goal, got %d", summary.PillarGoals[domain.PillarResilient])
	}

	if _, err := svc.GetUserStats(ctx, "athlete-1", "fortnightly"); !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestGetSystemStats(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventGoalCompleted, nil, 20, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if _, err := svc.RecordActivity(ctx, "athlete-2", domain.EventWorkoutLogged, nil, 10, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}

	summary, err := svc.GetSystemStats(ctx, domain.PeriodAll)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// Two activities plus their streak history rows
	if summary.TotalEvents != 4 {
		t.Errorf("Expected 4 events, got %d", summary.TotalEvents)
	}
	if summary.TotalPoints != 30 {
		t.Errorf("Expected 30 points, got %d", summary.TotalPoints)
	}
}

func TestGetLeaderboard(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.RecordActivity(ctx, "athlete-1", domain.EventGoalCompleted, nil, 50, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}
	if _, err := svc.RecordActivity(ctx, "athlete-2", domain.EventWorkoutLogged, nil, 10, nil, domain.SourceAPI); err != nil {
		t.Fatalf("RecordActivity failed: %v", err)
	}

	entries, err := svc.GetLeaderboard(ctx, domain.MetricPoints, domain.PeriodDaily, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
	if repo.lastLimit != DefaultLeaderboardLimit {
		t.Errorf("Expected default limit %d, got %d", DefaultLeaderboardLimit, repo.lastLimit)
	}

	if _, err := svc.GetLeaderboard(ctx, domain.MetricStreak, domain.PeriodDaily, 500); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if repo.lastLimit != MaxLeaderboardLimit {
		t.Errorf("Expected limit capped at %d, got %d", MaxLeaderboardLimit, repo.lastLimit)
	}

	if _, err := svc.GetLeaderboard(ctx, "vibes", domain.PeriodDaily, 10); !errors.Is(err, domain.ErrInvalidMetric) {
		t.Errorf("Expected ErrInvalidMetric, got %v", err)
	}
	if _, err := svc.GetLeaderboard(ctx, domain.MetricPoints, "decade", 10); !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestResetExpiredStreaks(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(DayFormat)
	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2).Format(DayFormat)

	seedStreak(t, repo, domain.StreakState{UserID: "stale-1", CurrentStreak: 7, LongestStreak: 7, LastActiveDay: twoDaysAgo})
	seedStreak(t, repo, domain.StreakState{UserID: "stale-2", CurrentStreak: 2, LongestStreak: 4, LastActiveDay: twoDaysAgo})
	seedStreak(t, repo, domain.StreakState{UserID: "fresh", CurrentStreak: 3, LongestStreak: 3, LastActiveDay: yesterday})

	expired, err := svc.ResetExpiredStreaks(ctx, yesterday)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(expired) != 2 {
		t.Fatalf("Expected 2 expired streaks, got %d", len(expired))
	}

	resets := bus.ofType(event.StreakReset)
	if len(resets) != 2 {
		t.Errorf("Expected 2 streak.reset events, got %d", len(resets))
	}

	state, _ := repo.GetStreak(ctx, "fresh")
	if state.CurrentStreak != 3 {
		t.Errorf("Expected fresh streak untouched, got %d", state.CurrentStreak)
	}
}

func seedStreak(t *testing.T, repo *mockStatsRepository, state domain.StreakState) {
	t.Helper()
	if err := repo.UpsertStreak(context.Background(), state); err != nil {
		t.Fatalf("Failed to seed streak: %v", err)
	}
}
