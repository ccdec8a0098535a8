package bootstrap

import (
	"context"
	"log/slog"

	"github.com/babygoats/BabyGoats_Go/internal/discord"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/server"
	"github.com/babygoats/BabyGoats_Go/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Jobs               *BackgroundJobs
	Hub                *sse.Hub
	Announcer          *discord.Announcer
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Background jobs (cancel the rollover timer, drain the job pool)
// 3. SSE hub and announcer (disconnect streaming clients)
// 4. Event publisher last (flush pending events to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Jobs != nil {
		if components.Jobs.Scheduler != nil {
			components.Jobs.Scheduler.Stop()
		}
		if components.Jobs.WorkerPool != nil {
			components.Jobs.WorkerPool.Stop()
		}
		if components.Jobs.RolloverWorker != nil {
			if err := components.Jobs.RolloverWorker.Shutdown(ctx); err != nil {
				slog.Error(LogMsgRolloverShutdownFailed, "error", err)
			}
		}
	}

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.Announcer != nil {
		if err := components.Announcer.Stop(); err != nil {
			slog.Error(LogMsgAnnouncerShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
