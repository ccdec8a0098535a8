package eventlog

import (
	"context"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/logger"
)

// CleanupJob prunes audit rows older than the retention horizon. It runs on
// the shared worker pool via the interval scheduler.
type CleanupJob struct {
	service       Service
	retentionDays int
}

func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{
		service:       service,
		retentionDays: retentionDays,
	}
}

// Process implements worker.Job.
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCleanupJobStarting, "retentionDays", j.retentionDays)

	start := time.Now()
	deleted, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, "error", err, "duration", time.Since(start))
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, "deletedCount", deleted, "duration", time.Since(start))
	return nil
}
