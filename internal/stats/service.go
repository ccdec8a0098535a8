package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/concurrency"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
	"github.com/babygoats/BabyGoats_Go/internal/repository"
)

// Service defines the interface for activity recording and counters
type Service interface {
	// RecordActivity appends an activity event, advances the daily streak
	// and publishes the matching domain events. Source identifies what
	// triggered the activity (api, challenge, scenario).
	RecordActivity(ctx context.Context, userID string, eventType domain.EventType, pillar *domain.Pillar, points int, metadata interface{}, source string) (*domain.StatsEvent, error)

	// GetUserCounters assembles the progression counters snapshot the
	// engine calculates against.
	GetUserCounters(ctx context.Context, userID string) (*domain.UserCounters, error)

	GetUserCurrentStreak(ctx context.Context, userID string) (int, error)
	GetUserEvents(ctx context.Context, userID string, period string) ([]domain.StatsEvent, error)
	GetUserStats(ctx context.Context, userID string, period string) (*domain.StatsSummary, error)
	GetSystemStats(ctx context.Context, period string) (*domain.StatsSummary, error)
	GetLeaderboard(ctx context.Context, metric string, period string, limit int) ([]domain.LeaderboardEntry, error)

	// ResetExpiredStreaks zeroes every streak last active before the given
	// UTC day and publishes a streak.reset event per affected athlete.
	// The daily rollover calls this with yesterday so a streak last active
	// yesterday can still be continued today.
	ResetExpiredStreaks(ctx context.Context, before string) ([]domain.ExpiredStreak, error)
}

// service implements the Service interface
type service struct {
	repo     repository.Stats
	catalog  *progression.Catalog
	eventBus event.Bus
	locks    *concurrency.LockManager
}

// NewService creates a new stats service
func NewService(repo repository.Stats, catalog *progression.Catalog, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		eventBus: eventBus,
		locks:    concurrency.NewLockManager(),
	}
}

// RecordActivity records an activity event for an athlete
func (s *service) RecordActivity(ctx context.Context, userID string, eventType domain.EventType, pillar *domain.Pillar, points int, metadata interface{}, source string) (*domain.StatsEvent, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}
	if !domain.IsValidEventType(eventType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEventType, eventType)
	}
	if points < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNegativePoints)
	}

	evt := &domain.StatsEvent{
		UserID:    userID,
		EventType: eventType,
		Pillar:    pillar,
		Points:    points,
		EventData: metadata,
	}
	if err := s.repo.RecordEvent(ctx, evt); err != nil {
		log.Error(LogMsgFailedToRecordEvent, "error", err, "user_id", userID, "event_type", eventType)
		return nil, fmt.Errorf(ErrMsgRecordEventFailed, err)
	}

	log.Debug(LogMsgActivityRecorded,
		"event_id", evt.EventID,
		"user_id", userID,
		"event_type", eventType,
		"points", points,
		"source", source)

	s.publishActivityEvents(ctx, evt, source)
	s.detectLevelUp(ctx, evt)

	if advancesStreak(eventType) {
		if err := s.advanceStreak(ctx, userID, evt.CreatedAt); err != nil {
			log.Warn(LogMsgFailedToAdvanceStreak, "error", err, "user_id", userID)
		}
	}

	return evt, nil
}

// advancesStreak reports whether an event type counts as athlete activity
// for streak purposes. Streak history rows are written by advanceStreak
// itself, and unlock announcements are system rows, not activity.
func advancesStreak(t domain.EventType) bool {
	switch t {
	case domain.EventDailyStreak, domain.EventAchievementUnlocked:
		return false
	}
	return true
}

// GetUserCounters assembles the counters snapshot for an athlete from the
// event aggregates plus the engine's pillar levels
func (s *service) GetUserCounters(ctx context.Context, userID string) (*domain.UserCounters, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	totalPoints, err := s.repo.GetUserPoints(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}
	pillarPoints, err := s.repo.GetUserPillarPoints(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}
	goals, err := s.repo.GetUserGoalCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}
	pillarGoals, err := s.repo.GetUserPillarGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}
	daysActive, err := s.repo.GetUserDaysActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}
	streak, err := s.GetUserCurrentStreak(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
	}

	pillarLevels := make(map[domain.Pillar]int, len(domain.Pillars))
	for _, pillar := range domain.Pillars {
		level, err := s.catalog.UserLevel(pillar, pillarPoints[pillar])
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetCountersFailed, err)
		}
		pillarLevels[pillar] = level.Level
	}

	return &domain.UserCounters{
		Streak:         streak,
		GoalsCompleted: goals,
		PillarGoals:    pillarGoals,
		TotalPoints:    totalPoints,
		DaysActive:     daysActive,
		PillarLevels:   pillarLevels,
		PillarPoints:   pillarPoints,
	}, nil
}

// GetUserEvents retrieves an athlete's activity history for a period
func (s *service) GetUserEvents(ctx context.Context, userID string, period string) ([]domain.StatsEvent, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	startTime, endTime, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.GetEventsByUser(ctx, userID, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserEventsFailed, err)
	}
	return events, nil
}

// GetUserStats retrieves an activity summary for an athlete within a period
func (s *service) GetUserStats(ctx context.Context, userID string, period string) (*domain.StatsSummary, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	startTime, endTime, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	eventCounts, err := s.repo.GetUserEventCounts(ctx, userID, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserEventCountsFail, err)
	}
	points, err := s.repo.GetUserPointsInRange(ctx, userID, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserPointsFailed, err)
	}
	pillarGoals, err := s.repo.GetUserPillarGoalsInRange(ctx, userID, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetPillarGoalsFailed, err)
	}

	totalEvents := 0
	for _, count := range eventCounts {
		totalEvents += count
	}

	summary := &domain.StatsSummary{
		Period:      period,
		StartTime:   startTime,
		EndTime:     endTime,
		TotalEvents: totalEvents,
		TotalPoints: points,
		EventCounts: eventCounts,
		PillarGoals: pillarGoals,
	}

	log.Debug(LogMsgRetrievedUserStats, "user_id", userID, "period", period, "total_events", totalEvents)
	return summary, nil
}

// GetSystemStats retrieves a system-wide activity summary for a period
func (s *service) GetSystemStats(ctx context.Context, period string) (*domain.StatsSummary, error) {
	log := logger.FromContext(ctx)

	startTime, endTime, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	totalEvents, err := s.repo.GetTotalEventCount(ctx, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetTotalEventCountFail, err)
	}
	totalPoints, err := s.repo.GetTotalPoints(ctx, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetTotalEventCountFail, err)
	}
	eventCounts, err := s.repo.GetEventCounts(ctx, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetEventCountsFailed, err)
	}

	summary := &domain.StatsSummary{
		Period:      period,
		StartTime:   startTime,
		EndTime:     endTime,
		TotalEvents: totalEvents,
		TotalPoints: totalPoints,
		EventCounts: eventCounts,
	}

	log.Debug(LogMsgRetrievedSystemStats, "period", period, "total_events", totalEvents)
	return summary, nil
}

// GetLeaderboard retrieves the top athletes for a metric within a period.
// The period is ignored for the streak metric; streaks are instantaneous.
func (s *service) GetLeaderboard(ctx context.Context, metric string, period string, limit int) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)

	if !domain.IsValidMetric(metric) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMetric, metric)
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	startTime, endTime, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	var entries []domain.LeaderboardEntry
	switch metric {
	case domain.MetricPoints:
		entries, err = s.repo.GetTopUsersByPoints(ctx, startTime, endTime, limit)
	case domain.MetricGoals:
		entries, err = s.repo.GetTopUsersByGoals(ctx, startTime, endTime, limit)
	case domain.MetricStreak:
		entries, err = s.repo.GetTopUsersByStreak(ctx, limit)
	}
	if err != nil {
		log.Error(LogMsgFailedToGetLeaderboard, "error", err, "metric", metric)
		return nil, fmt.Errorf(ErrMsgGetLeaderboardFailed, err)
	}

	log.Debug(LogMsgRetrievedLeaderboard, "metric", metric, "period", period, "entries", len(entries))
	return entries, nil
}

// ResetExpiredStreaks breaks every streak whose last active day is before
// the given UTC day
func (s *service) ResetExpiredStreaks(ctx context.Context, before string) ([]domain.ExpiredStreak, error) {
	log := logger.FromContext(ctx)

	expired, err := s.repo.ResetExpiredStreaks(ctx, before)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgResetStreaksFailed, err)
	}

	for _, streak := range expired {
		s.publishEvent(ctx, event.NewStreakResetEvent(streak.UserID, streak.PreviousStreak))
	}

	log.Info(LogMsgExpiredStreaksReset, "count", len(expired), "before", before)
	return expired, nil
}

// publishActivityEvents emits activity.recorded for every activity, plus
// goal.completed for goal completions
func (s *service) publishActivityEvents(ctx context.Context, evt *domain.StatsEvent, source string) {
	pillar := ""
	if evt.Pillar != nil {
		pillar = string(*evt.Pillar)
	}

	s.publishEvent(ctx, event.NewActivityRecordedEvent(evt.UserID, string(evt.EventType), pillar, evt.Points, source))

	if evt.EventType == domain.EventGoalCompleted {
		s.publishEvent(ctx, event.NewGoalCompletedEvent(evt.UserID, pillar, evt.Points))
	}
}

// detectLevelUp publishes level.up when the event's points push the athlete
// past a ladder threshold. The event row is already persisted, so the prior
// total is the current aggregate minus this event's points.
func (s *service) detectLevelUp(ctx context.Context, evt *domain.StatsEvent) {
	if evt.Pillar == nil || evt.Points <= 0 {
		return
	}
	log := logger.FromContext(ctx)

	pillarPoints, err := s.repo.GetUserPillarPoints(ctx, evt.UserID)
	if err != nil {
		log.Warn(LogMsgFailedToCheckLevelUp, "error", err, "user_id", evt.UserID)
		return
	}
	after := pillarPoints[*evt.Pillar]
	before := after - evt.Points

	prevLevel, err := s.catalog.UserLevel(*evt.Pillar, before)
	if err != nil {
		log.Warn(LogMsgFailedToCheckLevelUp, "error", err, "pillar", *evt.Pillar)
		return
	}
	newLevel, err := s.catalog.UserLevel(*evt.Pillar, after)
	if err != nil {
		log.Warn(LogMsgFailedToCheckLevelUp, "error", err, "pillar", *evt.Pillar)
		return
	}
	if newLevel.Level <= prevLevel.Level {
		return
	}

	log.Info(LogMsgLevelUp,
		"user_id", evt.UserID,
		"pillar", *evt.Pillar,
		"level", newLevel.Level,
		"title", newLevel.Title)
	s.publishEvent(ctx, event.NewLevelUpEvent(evt.UserID, *evt.Pillar, prevLevel.Level, newLevel.Level, newLevel.Title))
}

func (s *service) publishEvent(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToPublishEvent, "error", err, "type", evt.Type)
	}
}

// periodRange calculates the UTC start and end time for a period
func periodRange(period string) (time.Time, time.Time, error) {
	if !domain.IsValidPeriod(period) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, period)
	}

	now := time.Now().UTC()
	var start time.Time
	switch period {
	case domain.PeriodDaily:
		start = now.AddDate(0, 0, -1)
	case domain.PeriodWeekly:
		start = now.AddDate(0, 0, -7)
	case domain.PeriodMonthly:
		start = now.AddDate(0, -1, 0)
	case domain.PeriodYearly:
		start = now.AddDate(-1, 0, 0)
	case domain.PeriodAll:
		start = time.Date(AllTimeStartYear, AllTimeStartMonth, AllTimeStartDay, 0, 0, 0, 0, time.UTC)
	}

	return start, now, nil
}
