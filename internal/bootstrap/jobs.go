package bootstrap

import (
	"log/slog"

	"github.com/babygoats/BabyGoats_Go/internal/challenge"
	"github.com/babygoats/BabyGoats_Go/internal/config"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
	"github.com/babygoats/BabyGoats_Go/internal/scheduler"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
	"github.com/babygoats/BabyGoats_Go/internal/worker"
)

// BackgroundJobs holds the long-running pieces started at boot so shutdown
// can stop them in order.
type BackgroundJobs struct {
	RolloverWorker *worker.DailyRolloverWorker
	WorkerPool     *worker.Pool
	Scheduler      *scheduler.Scheduler
}

// StartBackgroundJobs arms the midnight rollover worker and starts the
// shared job pool with its scheduled maintenance jobs.
func StartBackgroundJobs(cfg *config.Config, challengeService challenge.Service, statsService stats.Service, eventLogService eventlog.Service, publisher *event.ResilientPublisher) *BackgroundJobs {
	rolloverWorker := worker.NewDailyRolloverWorker(challengeService, statsService, publisher)
	rolloverWorker.Start()

	pool := worker.NewPool(JobWorkerCount, JobQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(EventLogCleanupInterval, eventlog.NewCleanupJob(eventLogService, cfg.EventLogRetentionDays))

	slog.Info(LogMsgBackgroundJobsStarted,
		"workers", JobWorkerCount,
		"eventlog_retention_days", cfg.EventLogRetentionDays)

	return &BackgroundJobs{
		RolloverWorker: rolloverWorker,
		WorkerPool:     pool,
		Scheduler:      sched,
	}
}
