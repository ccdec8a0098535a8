package progression

import (
	"errors"
	"fmt"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// Sentinel errors for catalog construction
var (
	ErrDuplicateAchievementID = errors.New("duplicate achievement id")
	ErrMissingLevelTable      = errors.New("missing level table")
	ErrInvalidCatalog         = errors.New("invalid catalog")
)

// Catalog is the immutable set of achievement definitions and per-pillar
// level ladders the engine calculates against. It is built once at startup,
// validated, and shared: lookups never mutate it, so it is safe for
// concurrent use without locking.
type Catalog struct {
	achievements []AchievementDefinition
	byID         map[string]int
	levels       map[domain.Pillar]LevelTable
}

// NewCatalog validates and assembles a catalog. The inputs are copied, so
// later mutation of the caller's slices cannot reach the catalog.
func NewCatalog(achievements []AchievementDefinition, levels map[domain.Pillar]LevelTable) (*Catalog, error) {
	if len(achievements) == 0 {
		return nil, fmt.Errorf("%w: no achievements defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		achievements: make([]AchievementDefinition, len(achievements)),
		byID:         make(map[string]int, len(achievements)),
		levels:       make(map[domain.Pillar]LevelTable, len(levels)),
	}
	copy(c.achievements, achievements)

	for i, def := range c.achievements {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[def.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAchievementID, def.ID)
		}
		c.byID[def.ID] = i
	}

	for pillar, table := range levels {
		if !pillar.Valid() {
			return nil, fmt.Errorf("%w: level table for unknown pillar %q", ErrInvalidCatalog, pillar)
		}
		if err := table.Validate(); err != nil {
			return nil, fmt.Errorf("pillar %q: %w", pillar, err)
		}
		copied := make(LevelTable, len(table))
		copy(copied, table)
		c.levels[pillar] = copied
	}

	for _, pillar := range domain.Pillars {
		if _, ok := c.levels[pillar]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingLevelTable, pillar)
		}
	}

	return c, nil
}

// Achievements returns every definition in declaration order
func (c *Catalog) Achievements() []AchievementDefinition {
	out := make([]AchievementDefinition, len(c.achievements))
	copy(out, c.achievements)
	return out
}

// ByID looks up a single definition
func (c *Catalog) ByID(id string) (AchievementDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return AchievementDefinition{}, false
	}
	return c.achievements[i], true
}

// ByCategory returns the definitions in a category, in declaration order.
// An unknown category simply matches nothing.
func (c *Catalog) ByCategory(category Category) []AchievementDefinition {
	out := []AchievementDefinition{}
	for _, def := range c.achievements {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// ByRarity returns the definitions of a rarity, in declaration order
func (c *Catalog) ByRarity(rarity Rarity) []AchievementDefinition {
	out := []AchievementDefinition{}
	for _, def := range c.achievements {
		if def.Rarity == rarity {
			out = append(out, def)
		}
	}
	return out
}

// Hidden returns the hidden definitions, in declaration order
func (c *Catalog) Hidden() []AchievementDefinition {
	out := []AchievementDefinition{}
	for _, def := range c.achievements {
		if def.Hidden {
			out = append(out, def)
		}
	}
	return out
}

// LevelTable returns a copy of one pillar's ladder
func (c *Catalog) LevelTable(pillar domain.Pillar) (LevelTable, error) {
	table, ok := c.levels[pillar]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPillar, pillar)
	}
	out := make(LevelTable, len(table))
	copy(out, table)
	return out, nil
}

// Size returns the number of achievement definitions
func (c *Catalog) Size() int {
	return len(c.achievements)
}
