package bootstrap

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
	"github.com/babygoats/BabyGoats_Go/internal/scenario/providers"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

// InitializeScenarioEngine registers every simulation provider and returns
// the engine the admin simulate endpoints run on.
func InitializeScenarioEngine(dbPool *pgxpool.Pool, userService user.Service, statsService stats.Service, achievementService achievement.Service) *scenario.Engine {
	registry := scenario.NewRegistry()
	registry.Register(providers.NewStreakProvider(dbPool, userService, statsService, achievementService))
	registry.Register(providers.NewProgressionProvider(userService, statsService, achievementService))

	engine := scenario.NewEngine(registry)

	slog.Info("Scenario engine initialized",
		"features", registry.Features(),
		"scenarios", len(registry.GetAllScenarios()))

	return engine
}
