package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/bootstrap"
	"github.com/babygoats/BabyGoats_Go/internal/challenge"
	"github.com/babygoats/BabyGoats_Go/internal/config"
	"github.com/babygoats/BabyGoats_Go/internal/database"
	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
	"github.com/babygoats/BabyGoats_Go/internal/guide"
	"github.com/babygoats/BabyGoats_Go/internal/handler"
	"github.com/babygoats/BabyGoats_Go/internal/server"
	"github.com/babygoats/BabyGoats_Go/internal/sse"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

// shutdownTimeout bounds how long graceful shutdown may take before the
// process exits anyway.
const shutdownTimeout = 30 * time.Second

// @title Baby Goats Progression API
// @version 1.0
// @description Youth sports progression engine: activities, streaks, daily challenges, achievements and pillar levels.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Fatal startup error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	eventBus, resilientPublisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	catalog, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	if err := bootstrap.SyncCatalog(ctx, catalog, repos.Achievement, resilientPublisher); err != nil {
		return err
	}

	challengePool, err := bootstrap.LoadChallengePool()
	if err != nil {
		return err
	}

	statsService := stats.NewService(repos.Stats, catalog, eventBus)
	userService := user.NewService(repos.User, statsService, catalog, eventBus)
	achievementService := achievement.NewService(repos.Achievement, statsService, catalog, eventBus)
	challengeService, err := challenge.NewService(repos.Challenge, statsService, eventBus, challengePool)
	if err != nil {
		return err
	}
	eventLogService := eventlog.NewService(repos.EventLog)

	hub := sse.NewHub()
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:           eventBus,
		AchievementService: achievementService,
		EventLogService:    eventLogService,
		Hub:                hub,
	}); err != nil {
		return err
	}

	announcer, err := bootstrap.InitializeAnnouncer(cfg, eventBus, userService)
	if err != nil {
		return err
	}

	jobs := bootstrap.StartBackgroundJobs(cfg, challengeService, statsService, eventLogService, resilientPublisher)

	scenarioEngine := bootstrap.InitializeScenarioEngine(dbPool, userService, statsService, achievementService)

	guideLoader := guide.NewLoader(config.ConfigPathGuidesDir)

	handler.InitValidator()

	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.TrustedProxies,
		dbPool,
		userService,
		statsService,
		achievementService,
		challengeService,
		eventLogService,
		catalog,
		guideLoader,
		jobs.RolloverWorker,
		scenarioEngine,
		hub,
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Jobs:               jobs,
		Hub:                hub,
		Announcer:          announcer,
		ResilientPublisher: resilientPublisher,
	})

	return nil
}
