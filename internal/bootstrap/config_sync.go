package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/babygoats/BabyGoats_Go/internal/challenge"
	"github.com/babygoats/BabyGoats_Go/internal/config"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/event"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
)

// LoadCatalog builds the achievement catalog the engine runs on. The
// compiled-in catalog is used unless the config names an override file, in
// which case the override is loaded, schema-validated and built.
func LoadCatalog(cfg *config.Config) (*progression.Catalog, error) {
	if cfg.CatalogConfigPath == "" {
		slog.Info(LogMsgUsingCompiledCatalog)
		return progression.DefaultCatalog(), nil
	}

	slog.Info(LogMsgLoadingCatalogFile, "path", cfg.CatalogConfigPath)
	loader := progression.NewCatalogLoader()

	catalogConfig, err := loader.Load(cfg.CatalogConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	catalog, err := loader.Build(catalogConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	return catalog, nil
}

// SyncCatalog publishes the catalog to the database mirror and announces the
// sync on the bus when anything changed. Hash-based change detection keeps
// restarts cheap; an unchanged catalog skips every write.
func SyncCatalog(ctx context.Context, catalog *progression.Catalog, repo progression.Repository, publisher *event.ResilientPublisher) error {
	slog.Info(LogMsgSyncingCatalog, "achievements", catalog.Size())
	loader := progression.NewCatalogLoader()

	result, err := loader.SyncToDatabase(ctx, catalog, repo)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	if result.Inserted == 0 && result.Updated == 0 && result.Removed == 0 {
		slog.Info(LogMsgCatalogUnchanged)
		return nil
	}

	slog.Info(LogMsgCatalogSynced,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"removed", result.Removed)

	publisher.PublishWithRetry(ctx, event.NewCatalogSyncedEvent(result.Inserted, result.Updated, result.Skipped))

	return nil
}

// LoadChallengePool reads and validates the daily challenge pool that the
// rollover worker draws from.
func LoadChallengePool() (*domain.ChallengePool, error) {
	loader := challenge.NewLoader()

	pool, err := loader.Load(config.ConfigPathChallengePool)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadChallenges, err)
	}

	slog.Info(LogMsgChallengePoolLoaded,
		"challenges", len(pool.Challenges),
		"daily_count", pool.DailyCount)

	return pool, nil
}
