package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/challenge"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
)

// RolloverResult summarizes one completed daily rollover
type RolloverResult struct {
	Day            string    `json:"day"`
	ChallengeCount int       `json:"challenge_count"`
	StreaksReset   int       `json:"streaks_reset"`
	CompletedAt    time.Time `json:"completed_at"`
}

// DailyRolloverWorker runs the midnight UTC rollover: it sweeps expired
// streaks, rotates the daily challenge card and announces the new day
type DailyRolloverWorker struct {
	challengeService challenge.Service
	statsService     stats.Service
	publisher        *event.ResilientPublisher
	timer            *time.Timer
	shutdown         chan struct{}
	wg               sync.WaitGroup
	mu               sync.Mutex
}

// NewDailyRolloverWorker creates a new DailyRolloverWorker
func NewDailyRolloverWorker(challengeService challenge.Service, statsService stats.Service, publisher *event.ResilientPublisher) *DailyRolloverWorker {
	return &DailyRolloverWorker{
		challengeService: challengeService,
		statsService:     statsService,
		publisher:        publisher,
		shutdown:         make(chan struct{}),
	}
}

// Start initializes the worker and schedules the first rollover
func (w *DailyRolloverWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next 00:00 UTC and arms the timer
func (w *DailyRolloverWorker) scheduleNext() {
	duration := timeUntilNextRollover()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent "tight loop" rescheduling caused by early triggers
	if duration > 1*time.Hour {
		// Stage 1: Long-range (Standby). Wake up 45 minutes before midnight.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		nextCheck := time.Now().UTC().Add(waitDuration)
		log.Info(LogMsgRolloverStandby, "next_check_at", nextCheck)
		return
	}

	// Stage 2: Final approach. Schedule the actual rollover.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Jitter protection: if the timer triggered early (jitter > 10s),
		// simply reschedule for the remaining time.
		// If duration is > 23h, it means we are actually on time or slightly LATE.
		rem := timeUntilNextRollover()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeRollover()
		w.scheduleNext() // This will now calculate ~24h and jump back to Stage 1
	})
	w.mu.Unlock()

	nextRollover := time.Now().UTC().Add(duration)
	log.Info(LogMsgRolloverScheduled, "next_rollover_at", nextRollover)
}

// executeRollover performs the rollover in a tracked goroutine
func (w *DailyRolloverWorker) executeRollover() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		if _, err := w.RunNow(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgRolloverFailed, "error", err)
		}
	}()
}

// RunNow performs a full rollover immediately and reports what it did.
// The midnight timer and the admin trigger endpoint both land here.
func (w *DailyRolloverWorker) RunNow(ctx context.Context) (*RolloverResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRolloverStarting)

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1).Format(DayFormat)

	// A streak last active yesterday can still be continued today, so the
	// sweep cutoff is yesterday, not today
	expired, err := w.statsService.ResetExpiredStreaks(ctx, yesterday)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgStreakSweepFailed, err)
	}

	challenges, err := w.challengeService.RotateDaily(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRotationFailed, err)
	}

	result := &RolloverResult{
		Day:            now.Format(DayFormat),
		ChallengeCount: len(challenges),
		StreaksReset:   len(expired),
		CompletedAt:    time.Now().UTC(),
	}

	log.Info(LogMsgRolloverCompleted,
		"day", result.Day,
		"challenges", result.ChallengeCount,
		"streaks_reset", result.StreaksReset)

	// Publish event (ResilientPublisher will handle retry)
	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewDailyRolloverEvent(result.Day, result.ChallengeCount))
	}

	return result, nil
}

// Shutdown gracefully shuts down the rollover worker.
// Cancels the pending timer and waits for any in-flight rollover to complete
func (w *DailyRolloverWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down daily rollover worker")

	// Signal shutdown to timer callback (safe to close once)
	select {
	case <-w.shutdown:
		// Already closed, nothing to do
	default:
		close(w.shutdown)
	}

	// Cancel pending timer
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		log.Info("Cancelled pending daily rollover")
	}
	w.mu.Unlock()

	// Wait for any in-flight rollover to complete
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Daily rollover worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Daily rollover worker shutdown timeout, a rollover may still be running")
		return ctx.Err()
	}
}

// timeUntilNextRollover calculates the duration until the next 00:00 UTC
func timeUntilNextRollover() time.Duration {
	now := time.Now().UTC()
	nextRollover := time.Date(
		now.Year(), now.Month(), now.Day(),
		0, 0, 0, 0, time.UTC,
	)
	if !nextRollover.After(now) {
		nextRollover = nextRollover.AddDate(0, 0, 1)
	}
	return nextRollover.Sub(now)
}
