package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/config"
	"github.com/babygoats/BabyGoats_Go/internal/discord"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
	"github.com/babygoats/BabyGoats_Go/internal/metrics"
	"github.com/babygoats/BabyGoats_Go/internal/sse"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus           event.Bus
	AchievementService achievement.Service
	EventLogService    eventlog.Service
	Hub                *sse.Hub
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Achievement handler (re-evaluates athletes when their counters move)
// - Metrics collector (for event-based metrics)
// - Event logger (persists events to the audit table)
// - Dashboard stream subscriber (bridges bus events to connected SSE clients)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	achievementHandler := achievement.NewEventHandler(deps.AchievementService)
	achievementHandler.Register(deps.EventBus)
	slog.Info(LogMsgAchievementHandlerRegistered)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	sseSubscriber := sse.NewSubscriber(deps.Hub, deps.EventBus)
	sseSubscriber.Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)

	return nil
}

// InitializeAnnouncer creates, subscribes and starts the Discord announcer.
// Returns nil when no bot token is configured; the engine runs fine without
// community announcements.
func InitializeAnnouncer(cfg *config.Config, bus event.Bus, userService user.Service) (*discord.Announcer, error) {
	if cfg.DiscordBotToken == "" {
		slog.Info(LogMsgAnnouncerDisabled)
		return nil, nil
	}

	announcer, err := discord.NewAnnouncer(cfg.DiscordBotToken, cfg.DiscordAnnounceChannelID, userService)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateAnnouncer, err)
	}

	announcer.Subscribe(bus)

	if err := announcer.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartAnnouncer, err)
	}

	slog.Info(LogMsgAnnouncerEnabled, "channel_id", cfg.DiscordAnnounceChannelID)
	return announcer, nil
}
