package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

// MockUserService is a testify mock for user.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterAthlete(ctx context.Context, username, discordID string) (*domain.User, error) {
	args := m.Called(ctx, username, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetAthlete(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetAthleteByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUserService) UpdateAthlete(ctx context.Context, athlete domain.User) error {
	args := m.Called(ctx, athlete)
	return args.Error(0)
}

func (m *MockUserService) DeleteAthlete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) SearchAthletes(ctx context.Context, query string, limit int) ([]domain.User, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) GetCacheStats() user.CacheStats {
	args := m.Called()
	return args.Get(0).(user.CacheStats)
}

// MockStatsService is a testify mock for stats.Service
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) RecordActivity(ctx context.Context, userID string, eventType domain.EventType, pillar *domain.Pillar, points int, metadata interface{}, source string) (*domain.StatsEvent, error) {
	args := m.Called(ctx, userID, eventType, pillar, points, metadata, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsEvent), args.Error(1)
}

func (m *MockStatsService) GetUserCounters(ctx context.Context, userID string) (*domain.UserCounters, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCounters), args.Error(1)
}

func (m *MockStatsService) GetUserCurrentStreak(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsService) GetUserEvents(ctx context.Context, userID string, period string) ([]domain.StatsEvent, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatsEvent), args.Error(1)
}

func (m *MockStatsService) GetUserStats(ctx context.Context, userID string, period string) (*domain.StatsSummary, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsSummary), args.Error(1)
}

func (m *MockStatsService) GetSystemStats(ctx context.Context, period string) (*domain.StatsSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatsSummary), args.Error(1)
}

func (m *MockStatsService) GetLeaderboard(ctx context.Context, metric string, period string, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, metric, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockStatsService) ResetExpiredStreaks(ctx context.Context, before string) ([]domain.ExpiredStreak, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpiredStreak), args.Error(1)
}

// MockAchievementService is a testify mock for achievement.Service
type MockAchievementService struct {
	mock.Mock
}

func (m *MockAchievementService) EvaluateUser(ctx context.Context, userID string) ([]domain.UnlockRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnlockRecord), args.Error(1)
}

func (m *MockAchievementService) GetUserAchievements(ctx context.Context, userID string, includeHidden bool) ([]achievement.Achievement, error) {
	args := m.Called(ctx, userID, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]achievement.Achievement), args.Error(1)
}

func (m *MockAchievementService) GetUserLevels(ctx context.Context, userID string) ([]progression.UserLevel, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]progression.UserLevel), args.Error(1)
}

func (m *MockAchievementService) BrowseCatalog(ctx context.Context, category, rarity string) ([]achievement.Achievement, error) {
	args := m.Called(ctx, category, rarity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]achievement.Achievement), args.Error(1)
}

// MockChallengeService is a testify mock for challenge.Service
type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) GetDailyChallenges(ctx context.Context, userID string) ([]domain.DailyChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeService) CompleteChallenge(ctx context.Context, userID, challengeKey string) (*domain.ChallengeCompletion, error) {
	args := m.Called(ctx, userID, challengeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChallengeCompletion), args.Error(1)
}

func (m *MockChallengeService) RotateDaily(ctx context.Context) ([]domain.DailyChallenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeService) PoolSize() int {
	args := m.Called()
	return args.Int(0)
}

// MockEventLogService is a testify mock for eventlog.Service
type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockEventLogService) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Event), args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
