package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// advanceStreak moves the daily streak forward for an activity recorded at
// the given time. Days are UTC calendar days: a second activity on the same
// day is a no-op, activity on the day after the last active day increments
// the streak, and a gap restarts it at one.
//
// The per-user lock serializes the read-modify-write so concurrent
// activities for one athlete cannot double-count a day.
func (s *service) advanceStreak(ctx context.Context, userID string, at time.Time) error {
	log := logger.FromContext(ctx)

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	today := at.UTC().Format(DayFormat)
	yesterday := at.UTC().AddDate(0, 0, -1).Format(DayFormat)

	state, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return fmt.Errorf(ErrMsgGetStreakFailed, err)
	}

	if state != nil && state.LastActiveDay == today {
		return nil
	}

	newStreak := 1
	if state != nil && state.LastActiveDay == yesterday {
		newStreak = state.CurrentStreak + 1
	}

	longest := newStreak
	if state != nil && state.LongestStreak > longest {
		longest = state.LongestStreak
	}

	next := domain.StreakState{
		UserID:        userID,
		CurrentStreak: newStreak,
		LongestStreak: longest,
		LastActiveDay: today,
	}
	if err := s.repo.UpsertStreak(ctx, next); err != nil {
		return fmt.Errorf(ErrMsgAdvanceStreakFailed, err)
	}

	// A streak row in the event history preserves the day-by-day curve
	// for profile graphs.
	historyRow := &domain.StatsEvent{
		UserID:    userID,
		EventType: domain.EventDailyStreak,
		EventData: domain.StreakMetadata{Streak: newStreak},
		CreatedAt: at,
	}
	if err := s.repo.RecordEvent(ctx, historyRow); err != nil {
		log.Warn(LogMsgFailedToRecordStreakRow, "error", err, "user_id", userID)
	}

	switch {
	case state != nil && state.LastActiveDay != yesterday && state.CurrentStreak > 0:
		// The rollover usually breaks stale streaks first; when an activity
		// arrives before it has, the break is announced here.
		log.Info(LogMsgStreakRestarted, "user_id", userID, "previous_streak", state.CurrentStreak)
		s.publishEvent(ctx, event.NewStreakResetEvent(userID, state.CurrentStreak))
	default:
		log.Debug(LogMsgStreakAdvanced, "user_id", userID, "streak", newStreak)
		s.publishEvent(ctx, event.NewStreakAdvancedEvent(userID, newStreak))
	}

	return nil
}

// GetUserCurrentStreak retrieves the effective current streak for an
// athlete. A persisted streak only counts while its last active day is
// today or yesterday in UTC; anything older reads as zero.
func (s *service) GetUserCurrentStreak(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	state, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetStreakFailed, err)
	}
	if state == nil {
		return 0, nil
	}

	now := time.Now().UTC()
	today := now.Format(DayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(DayFormat)

	if state.LastActiveDay == today || state.LastActiveDay == yesterday {
		return state.CurrentStreak, nil
	}
	return 0, nil
}
