package progression

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/validation"
)

// ErrInvalidConfig is returned for catalog override files that cannot be used
var ErrInvalidConfig = errors.New("invalid catalog configuration")

// Schema paths
const (
	CatalogSchemaPath = "configs/schemas/achievements.schema.json"
)

// CatalogConfig represents the JSON catalog override file. When present it
// replaces the compiled-in catalog wholesale; there is no per-entry merge.
type CatalogConfig struct {
	Version      string                       `json:"version"`
	Description  string                       `json:"description"`
	Achievements []AchievementConfig          `json:"achievements"`
	Levels       map[string][]LevelDefinition `json:"levels"`
}

// AchievementConfig represents a single achievement in the catalog JSON.
// The requirement stays raw until Build so unknown tags fail with the
// achievement id attached.
type AchievementConfig struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Tier          string          `json:"tier"`
	Rarity        string          `json:"rarity"`
	Points        int             `json:"points"`
	Requirement   json.RawMessage `json:"requirement"`
	Hidden        bool            `json:"hidden,omitempty"`
	UnlockMessage string          `json:"unlock_message"`
}

// CatalogLoader handles loading and publishing catalog configuration
type CatalogLoader interface {
	Load(path string) (*CatalogConfig, error)
	Build(config *CatalogConfig) (*Catalog, error)
	SyncToDatabase(ctx context.Context, catalog *Catalog, repo Repository) (*SyncResult, error)
}

// SyncResult contains the result of publishing the catalog to the database
type SyncResult struct {
	Inserted int
	Updated  int
	Skipped  int
	Removed  int
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewCatalogLoader creates a new CatalogLoader instance
func NewCatalogLoader() CatalogLoader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a catalog override JSON file
func (l *catalogLoader) Load(path string) (*CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config file: %w", err)
	}

	// Validate against schema first
	if err := l.schemaValidator.ValidateBytes(data, CatalogSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config CatalogConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}

	return &config, nil
}

// Build converts a parsed config into a validated immutable Catalog.
// All catalog invariants (unique ids, known enums, positive targets,
// complete strictly-increasing ladders) are enforced by NewCatalog.
func (l *catalogLoader) Build(config *CatalogConfig) (*Catalog, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	achievements := make([]AchievementDefinition, 0, len(config.Achievements))
	for i, ac := range config.Achievements {
		if ac.ID == "" {
			return nil, fmt.Errorf("%w: achievement at index %d has empty id", ErrInvalidConfig, i)
		}
		if len(ac.Requirement) == 0 {
			return nil, fmt.Errorf("%w: achievement %q has no requirement", ErrInvalidConfig, ac.ID)
		}
		req, err := UnmarshalRequirement(ac.Requirement)
		if err != nil {
			return nil, fmt.Errorf("achievement %q: %w", ac.ID, err)
		}
		achievements = append(achievements, AchievementDefinition{
			ID:            ac.ID,
			Title:         ac.Title,
			Description:   ac.Description,
			Category:      Category(ac.Category),
			Tier:          Tier(ac.Tier),
			Rarity:        Rarity(ac.Rarity),
			Points:        ac.Points,
			Requirement:   req,
			Hidden:        ac.Hidden,
			UnlockMessage: ac.UnlockMessage,
		})
	}

	levels := make(map[domain.Pillar]LevelTable, len(config.Levels))
	for key, table := range config.Levels {
		pillar, err := domain.ParsePillar(key)
		if err != nil {
			return nil, fmt.Errorf("%w: level table key %q", ErrInvalidConfig, key)
		}
		levels[pillar] = LevelTable(table)
	}

	return NewCatalog(achievements, levels)
}

// SyncToDatabase publishes the effective catalog to the database mirror
// idempotently. Rows are compared by content hash; definitions that left
// the catalog are removed.
func (l *catalogLoader) SyncToDatabase(ctx context.Context, catalog *Catalog, repo Repository) (*SyncResult, error) {
	log := logger.FromContext(ctx)
	result := &SyncResult{}

	existing, err := repo.GetDefinitionHashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing definitions: %w", err)
	}

	seen := make(map[string]bool, catalog.Size())
	for _, def := range catalog.Achievements() {
		seen[def.ID] = true

		hash, err := definitionHash(def)
		if err != nil {
			return nil, fmt.Errorf("failed to hash definition %q: %w", def.ID, err)
		}

		prev, exists := existing[def.ID]
		if exists && prev == hash {
			result.Skipped++
			continue
		}

		if err := repo.UpsertDefinition(ctx, def, hash); err != nil {
			return nil, fmt.Errorf("failed to upsert definition %q: %w", def.ID, err)
		}
		if exists {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	var stale []string
	for id := range existing {
		if !seen[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := repo.DeleteDefinitions(ctx, stale); err != nil {
			return nil, fmt.Errorf("failed to remove stale definitions: %w", err)
		}
		result.Removed = len(stale)
	}

	log.Debug("Catalog synced to database",
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"removed", result.Removed)

	return result, nil
}

// definitionHash produces a stable content hash for change detection
func definitionHash(def AchievementDefinition) (string, error) {
	data, err := json.Marshal(def)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
