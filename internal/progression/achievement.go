package progression

import (
	"errors"
	"fmt"
)

// Category groups achievements for browsing
type Category string

const (
	CategoryStreak     Category = "streak"
	CategoryCompletion Category = "completion"
	CategoryPillar     Category = "pillar"
	CategoryMilestone  Category = "milestone"
	CategoryLevel      Category = "level"
	CategorySpecial    Category = "special"
)

// Tier is the visual badge tier of an achievement
type Tier string

const (
	TierBronze    Tier = "bronze"
	TierSilver    Tier = "silver"
	TierGold      Tier = "gold"
	TierPlatinum  Tier = "platinum"
	TierLegendary Tier = "legendary"
)

// Rarity drives how prominently an unlock is celebrated
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ErrInvalidDefinition is returned for a definition that fails validation
var ErrInvalidDefinition = errors.New("invalid achievement definition")

// AchievementDefinition is one immutable entry of the achievement catalog
type AchievementDefinition struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Category      Category    `json:"category"`
	Tier          Tier        `json:"tier"`
	Rarity        Rarity      `json:"rarity"`
	Points        int         `json:"points"`
	Requirement   Requirement `json:"requirement"`
	Hidden        bool        `json:"hidden"`
	UnlockMessage string      `json:"unlock_message"`
}

// Validate checks the definition's fields. Requirement targets must be
// positive here: the calculator tolerates degenerate targets defensively,
// but the catalog refuses to carry them.
func (d AchievementDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	}
	if d.Title == "" {
		return fmt.Errorf("%w: %q has empty title", ErrInvalidDefinition, d.ID)
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %q has unknown category %q", ErrInvalidDefinition, d.ID, d.Category)
	}
	if !d.Tier.Valid() {
		return fmt.Errorf("%w: %q has unknown tier %q", ErrInvalidDefinition, d.ID, d.Tier)
	}
	if !d.Rarity.Valid() {
		return fmt.Errorf("%w: %q has unknown rarity %q", ErrInvalidDefinition, d.ID, d.Rarity)
	}
	if d.Points < 0 {
		return fmt.Errorf("%w: %q has negative points %d", ErrInvalidDefinition, d.ID, d.Points)
	}
	if d.Requirement == nil {
		return fmt.Errorf("%w: %q has no requirement", ErrInvalidDefinition, d.ID)
	}
	if d.Requirement.Target() <= 0 {
		return fmt.Errorf("%w: %q has non-positive target %d", ErrInvalidDefinition, d.ID, d.Requirement.Target())
	}
	return nil
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryStreak, CategoryCompletion, CategoryPillar, CategoryMilestone, CategoryLevel, CategorySpecial:
		return true
	}
	return false
}

// Valid reports whether t is a known tier
func (t Tier) Valid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum, TierLegendary:
		return true
	}
	return false
}

// Valid reports whether r is a known rarity
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}
