package challenge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/validation"
)

var (
	// ErrInvalidPool marks semantic problems the schema cannot express
	ErrInvalidPool = errors.New("invalid challenge pool")

	ErrDuplicateChallengeKey = errors.New("duplicate challenge key")
)

// Loader handles loading and validating the challenge pool configuration
type Loader interface {
	Load(path string) (*domain.ChallengePool, error)
	Validate(pool *domain.ChallengePool) error
}

type poolLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &poolLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads, schema-validates and parses a challenge pool JSON file
func (l *poolLoader) Load(path string) (*domain.ChallengePool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read challenge pool file: %w", err)
	}

	if err := l.schemaValidator.ValidateBytes(data, PoolSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var pool domain.ChallengePool
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse challenge pool JSON: %w", err)
	}

	if pool.DailyCount == 0 {
		pool.DailyCount = DefaultDailyCount
	}

	if err := l.Validate(&pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// Validate checks pool semantics the schema cannot express
func (l *poolLoader) Validate(pool *domain.ChallengePool) error {
	if len(pool.Challenges) == 0 {
		return fmt.Errorf("%w: no challenges defined", ErrInvalidPool)
	}
	if pool.DailyCount < 1 {
		return fmt.Errorf("%w: daily_count must be positive", ErrInvalidPool)
	}
	if len(pool.Challenges) < pool.DailyCount {
		return fmt.Errorf("%w: pool has %d challenges but daily_count is %d",
			ErrInvalidPool, len(pool.Challenges), pool.DailyCount)
	}

	seen := make(map[string]bool, len(pool.Challenges))
	for _, tpl := range pool.Challenges {
		if tpl.ChallengeKey == "" {
			return fmt.Errorf("%w: challenge with empty key", ErrInvalidPool)
		}
		if seen[tpl.ChallengeKey] {
			return fmt.Errorf("%w: %s", ErrDuplicateChallengeKey, tpl.ChallengeKey)
		}
		seen[tpl.ChallengeKey] = true

		if tpl.Title == "" {
			return fmt.Errorf("%w: challenge %s has no title", ErrInvalidPool, tpl.ChallengeKey)
		}
		if !tpl.Pillar.Valid() {
			return fmt.Errorf("%w: challenge %s has unknown pillar %q", ErrInvalidPool, tpl.ChallengeKey, tpl.Pillar)
		}
		if tpl.Points <= 0 {
			return fmt.Errorf("%w: challenge %s must award positive points", ErrInvalidPool, tpl.ChallengeKey)
		}
		switch tpl.Difficulty {
		case DifficultyEasy, DifficultyMedium, DifficultyHard:
		default:
			return fmt.Errorf("%w: challenge %s has unknown difficulty %q", ErrInvalidPool, tpl.ChallengeKey, tpl.Difficulty)
		}
	}
	return nil
}
