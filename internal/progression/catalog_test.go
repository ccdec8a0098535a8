package progression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

func validLevels() map[domain.Pillar]LevelTable {
	table := LevelTable{
		{Level: 1, Title: "Rookie", PointsRequired: 0},
		{Level: 2, Title: "Athlete", PointsRequired: 100},
	}
	return map[domain.Pillar]LevelTable{
		domain.PillarResilient:  table,
		domain.PillarRelentless: table,
		domain.PillarFearless:   table,
	}
}

func validAchievements() []AchievementDefinition {
	return []AchievementDefinition{
		{ID: "a", Title: "A", Category: CategoryStreak, Tier: TierBronze, Rarity: RarityCommon, Points: 10, Requirement: StreakRequirement{TargetDays: 3}},
		{ID: "b", Title: "B", Category: CategoryPillar, Tier: TierSilver, Rarity: RarityRare, Points: 20, Requirement: GoalCompletionRequirement{TargetGoals: 5}},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("valid inputs", func(t *testing.T) {
		catalog, err := NewCatalog(validAchievements(), validLevels())
		require.NoError(t, err)
		assert.Equal(t, 2, catalog.Size())
	})

	t.Run("no achievements", func(t *testing.T) {
		_, err := NewCatalog(nil, validLevels())
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("duplicate achievement id", func(t *testing.T) {
		defs := validAchievements()
		defs[1].ID = defs[0].ID
		_, err := NewCatalog(defs, validLevels())
		assert.ErrorIs(t, err, ErrDuplicateAchievementID)
	})

	t.Run("invalid category", func(t *testing.T) {
		defs := validAchievements()
		defs[0].Category = "casino"
		_, err := NewCatalog(defs, validLevels())
		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})

	t.Run("missing requirement", func(t *testing.T) {
		defs := validAchievements()
		defs[0].Requirement = nil
		_, err := NewCatalog(defs, validLevels())
		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})

	t.Run("non-positive target", func(t *testing.T) {
		defs := validAchievements()
		defs[0].Requirement = StreakRequirement{TargetDays: 0}
		_, err := NewCatalog(defs, validLevels())
		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})

	t.Run("missing pillar table", func(t *testing.T) {
		levels := validLevels()
		delete(levels, domain.PillarFearless)
		_, err := NewCatalog(validAchievements(), levels)
		assert.ErrorIs(t, err, ErrMissingLevelTable)
		assert.Contains(t, err.Error(), "fearless")
	})

	t.Run("unknown pillar table", func(t *testing.T) {
		levels := validLevels()
		levels[domain.Pillar("stamina")] = levels[domain.PillarResilient]
		_, err := NewCatalog(validAchievements(), levels)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("level table not starting at zero", func(t *testing.T) {
		levels := validLevels()
		levels[domain.PillarResilient] = LevelTable{
			{Level: 1, Title: "Rookie", PointsRequired: 50},
		}
		_, err := NewCatalog(validAchievements(), levels)
		assert.ErrorIs(t, err, ErrInvalidLevelTable)
	})

	t.Run("level thresholds must strictly increase", func(t *testing.T) {
		levels := validLevels()
		levels[domain.PillarResilient] = LevelTable{
			{Level: 1, Title: "Rookie", PointsRequired: 0},
			{Level: 2, Title: "Athlete", PointsRequired: 100},
			{Level: 3, Title: "Warrior", PointsRequired: 100},
		}
		_, err := NewCatalog(validAchievements(), levels)
		assert.ErrorIs(t, err, ErrInvalidLevelTable)
	})

	t.Run("level numbering must be sequential", func(t *testing.T) {
		levels := validLevels()
		levels[domain.PillarResilient] = LevelTable{
			{Level: 1, Title: "Rookie", PointsRequired: 0},
			{Level: 3, Title: "Warrior", PointsRequired: 100},
		}
		_, err := NewCatalog(validAchievements(), levels)
		assert.ErrorIs(t, err, ErrInvalidLevelTable)
	})
}

func TestCatalogImmutability(t *testing.T) {
	defs := validAchievements()
	levels := validLevels()
	catalog, err := NewCatalog(defs, levels)
	require.NoError(t, err)

	// Mutating the construction inputs must not reach the catalog
	defs[0].Title = "tampered"
	levels[domain.PillarResilient][0].Title = "tampered"

	def, ok := catalog.ByID("a")
	require.True(t, ok)
	assert.Equal(t, "A", def.Title)

	table, err := catalog.LevelTable(domain.PillarResilient)
	require.NoError(t, err)
	assert.Equal(t, "Rookie", table[0].Title)

	// Mutating returned copies must not reach the catalog either
	got := catalog.Achievements()
	got[0].Title = "tampered again"
	def, _ = catalog.ByID("a")
	assert.Equal(t, "A", def.Title)
}

func TestCatalogQueries(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("by category preserves declaration order", func(t *testing.T) {
		pillar := catalog.ByCategory(CategoryPillar)
		require.Len(t, pillar, 6)
		wantOrder := []string{"resilient_riser", "resilient_rock", "relentless_runner", "relentless_force", "fearless_first", "fearless_heart"}
		for i, def := range pillar {
			assert.Equal(t, wantOrder[i], def.ID)
			assert.Equal(t, CategoryPillar, def.Category)
		}
	})

	t.Run("unknown category matches nothing", func(t *testing.T) {
		assert.Empty(t, catalog.ByCategory(Category("casino")))
	})

	t.Run("by rarity", func(t *testing.T) {
		legendary := catalog.ByRarity(RarityLegendary)
		require.NotEmpty(t, legendary)
		for _, def := range legendary {
			assert.Equal(t, RarityLegendary, def.Rarity)
		}
	})

	t.Run("hidden", func(t *testing.T) {
		hidden := catalog.Hidden()
		require.NotEmpty(t, hidden)
		for _, def := range hidden {
			assert.True(t, def.Hidden)
		}
	})

	t.Run("by id", func(t *testing.T) {
		def, ok := catalog.ByID("streak_fire_3")
		require.True(t, ok)
		assert.Equal(t, "On Fire", def.Title)
		assert.Equal(t, RequirementTypeStreak, def.Requirement.Type())
		assert.Equal(t, 3, def.Requirement.Target())

		_, ok = catalog.ByID("nope")
		assert.False(t, ok)
	})
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	// Shipped resilient ladder carries the published thresholds
	table, err := catalog.LevelTable(domain.PillarResilient)
	require.NoError(t, err)
	thresholds := make([]int, 0, len(table))
	for _, def := range table {
		thresholds = append(thresholds, def.PointsRequired)
	}
	assert.Equal(t, []int{0, 200, 500, 1000, 2000}, thresholds)
	assert.Equal(t, "Resilient Athlete", table[1].Title)

	// Every requirement variant appears in the shipped catalog
	seen := map[string]bool{}
	for _, def := range catalog.Achievements() {
		seen[def.Requirement.Type()] = true
	}
	for _, reqType := range []string{
		RequirementTypeStreak,
		RequirementTypeGoalCompletion,
		RequirementTypeTotalPoints,
		RequirementTypeDaysActive,
		RequirementTypeLevelReached,
	} {
		assert.True(t, seen[reqType], "no shipped achievement uses %s", reqType)
	}
}

func TestLevelTableCopyIsDetached(t *testing.T) {
	catalog := DefaultCatalog()

	table, err := catalog.LevelTable(domain.PillarFearless)
	require.NoError(t, err)
	table[0].Title = "tampered"

	fresh, err := catalog.LevelTable(domain.PillarFearless)
	require.NoError(t, err)
	assert.Equal(t, "Fearless Rookie", fresh[0].Title)
}

func TestLevelTableUnknownPillar(t *testing.T) {
	catalog := DefaultCatalog()

	_, err := catalog.LevelTable(domain.Pillar("agility"))
	assert.True(t, errors.Is(err, domain.ErrUnknownPillar))
}
