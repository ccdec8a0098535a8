package progression

import "context"

// Repository defines persistence for the published catalog mirror. The
// catalog itself stays authoritative in code; the mirror exists so
// dashboards and ad-hoc queries can join unlock rows against definitions.
type Repository interface {
	// GetDefinitionHashes returns achievement id -> content hash for every
	// mirrored definition.
	GetDefinitionHashes(ctx context.Context) (map[string]string, error)
	// UpsertDefinition inserts or replaces one mirrored definition.
	UpsertDefinition(ctx context.Context, def AchievementDefinition, contentHash string) error
	// DeleteDefinitions removes mirrored definitions that left the catalog.
	DeleteDefinitions(ctx context.Context, ids []string) error
}
