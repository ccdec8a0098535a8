package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babygoats/BabyGoats_Go/internal/database/postgres"
	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
	"github.com/babygoats/BabyGoats_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User        repository.User
	Stats       repository.Stats
	Achievement repository.Achievement
	Challenge   repository.Challenge
	EventLog    eventlog.Repository
}

// InitializeRepositories creates all repository implementations. Every
// repository writes through the shared connection pool; events are published
// at the service layer, so no repository needs the bus.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        postgres.NewUserRepository(dbPool),
		Stats:       postgres.NewStatsRepository(dbPool),
		Achievement: postgres.NewAchievementRepository(dbPool),
		Challenge:   postgres.NewChallengeRepository(dbPool),
		EventLog:    postgres.NewEventLogRepository(dbPool),
	}
}
