package progression

import (
	"fmt"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// pillarOf is a helper for goal_completion requirements scoped to one pillar
func pillarOf(p domain.Pillar) *domain.Pillar {
	return &p
}

// defaultAchievements is the shipped achievement catalog, in display order.
// IDs are stable forever: unlock rows reference them.
var defaultAchievements = []AchievementDefinition{
	// Getting started
	{
		ID:            "first_steps",
		Title:         "First Steps",
		Description:   "Complete your first goal",
		Category:      CategoryCompletion,
		Tier:          TierBronze,
		Rarity:        RarityCommon,
		Points:        10,
		Requirement:   GoalCompletionRequirement{TargetGoals: 1},
		UnlockMessage: "You're on the board! Every champion started here.",
	},

	// Streaks
	{
		ID:            "streak_fire_3",
		Title:         "On Fire",
		Description:   "Keep a 3 day activity streak",
		Category:      CategoryStreak,
		Tier:          TierBronze,
		Rarity:        RarityCommon,
		Points:        15,
		Requirement:   StreakRequirement{TargetDays: 3},
		UnlockMessage: "Three days straight. The fire is lit!",
	},
	{
		ID:            "streak_week_7",
		Title:         "Full Week Warrior",
		Description:   "Keep a 7 day activity streak",
		Category:      CategoryStreak,
		Tier:          TierSilver,
		Rarity:        RarityRare,
		Points:        30,
		Requirement:   StreakRequirement{TargetDays: 7},
		UnlockMessage: "Seven days without missing. That's how habits are built.",
	},
	{
		ID:            "streak_fortnight_14",
		Title:         "Two Week Titan",
		Description:   "Keep a 14 day activity streak",
		Category:      CategoryStreak,
		Tier:          TierGold,
		Rarity:        RarityRare,
		Points:        60,
		Requirement:   StreakRequirement{TargetDays: 14},
		UnlockMessage: "Fourteen days of showing up. Titan status earned.",
	},
	{
		ID:            "streak_month_30",
		Title:         "Monthly Machine",
		Description:   "Keep a 30 day activity streak",
		Category:      CategoryStreak,
		Tier:          TierPlatinum,
		Rarity:        RarityEpic,
		Points:        120,
		Requirement:   StreakRequirement{TargetDays: 30},
		UnlockMessage: "A full month, no days off. You are a machine.",
	},
	{
		ID:            "streak_century_100",
		Title:         "Century Club",
		Description:   "Keep a 100 day activity streak",
		Category:      CategoryStreak,
		Tier:          TierLegendary,
		Rarity:        RarityLegendary,
		Points:        500,
		Requirement:   StreakRequirement{TargetDays: 100},
		Hidden:        true,
		UnlockMessage: "One hundred days. Welcome to the Century Club.",
	},

	// Goal completion
	{
		ID:            "goal_getter_10",
		Title:         "Goal Getter",
		Description:   "Complete 10 goals",
		Category:      CategoryCompletion,
		Tier:          TierBronze,
		Rarity:        RarityCommon,
		Points:        20,
		Requirement:   GoalCompletionRequirement{TargetGoals: 10},
		UnlockMessage: "Ten goals down. Keep them coming!",
	},
	{
		ID:            "goal_machine_50",
		Title:         "Goal Machine",
		Description:   "Complete 50 goals",
		Category:      CategoryCompletion,
		Tier:          TierSilver,
		Rarity:        RarityRare,
		Points:        75,
		Requirement:   GoalCompletionRequirement{TargetGoals: 50},
		UnlockMessage: "Fifty goals! You set them, you smash them.",
	},
	{
		ID:            "goal_legend_100",
		Title:         "Goal Legend",
		Description:   "Complete 100 goals",
		Category:      CategoryCompletion,
		Tier:          TierGold,
		Rarity:        RarityEpic,
		Points:        150,
		Requirement:   GoalCompletionRequirement{TargetGoals: 100},
		UnlockMessage: "One hundred goals completed. Legend.",
	},

	// Pillar focus
	{
		ID:            "resilient_riser",
		Title:         "Resilient Riser",
		Description:   "Complete 5 Resilient goals",
		Category:      CategoryPillar,
		Tier:          TierBronze,
		Rarity:        RarityCommon,
		Points:        25,
		Requirement:   GoalCompletionRequirement{TargetGoals: 5, Pillar: pillarOf(domain.PillarResilient)},
		UnlockMessage: "Bouncing back, five goals at a time.",
	},
	{
		ID:            "resilient_rock",
		Title:         "Resilient Rock",
		Description:   "Complete 25 Resilient goals",
		Category:      CategoryPillar,
		Tier:          TierSilver,
		Rarity:        RarityRare,
		Points:        80,
		Requirement:   GoalCompletionRequirement{TargetGoals: 25, Pillar: pillarOf(domain.PillarResilient)},
		UnlockMessage: "Twenty-five Resilient goals. Nothing shakes you.",
	},
	{
		ID:            "relentless_runner",
		Title:         "Relentless Runner",
		Description:   "Complete 5 Relentless goals",
		Category:      CategoryPillar,
		Tier:          TierBronze,
		Rarity:        RarityCommon,
		Points:        25,
		Requirement:   GoalCompletionRequirement{TargetGoals: 5, Pillar: pillarOf(domain.PillarRelentless)},
		UnlockMessage: "Five Relentless goals. You don't stop.",
	},
	{
		ID:            "relentless_force",
		Title:         "Relentless Force",
		Description:   "Complete 25 Relentless goals",
		Category:      CategoryPillar,
		Tier:          TierSilver,
		Rarity:        RarityRare,
		Points:        80,
		Requirement:   GoalCompletionRequirement{TargetGoals: 25, Pillar: pillarOf(domain.PillarRelentless)},
		UnlockMessage: "Twenty-five Relentless goals. A force of nature.",
	},
	{
		ID:            "fearless_first",
		Title:         "Fearless First",
		Description:   "Complete 5 Fearless goals",
		Category:      CategoryPillar,
		Tier:          TierBronze,
		Rarity:        RarityCommon,
		Points:        25,
		Requirement:   GoalCompletionRequirement{TargetGoals: 5, Pillar: pillarOf(domain.PillarFearless)},
		UnlockMessage: "Five Fearless goals. Courage looks good on you.",
	},
	{
		ID:            "fearless_heart",
		Title:         "Fearless Heart",
		Description:   "Complete 25 Fearless goals",
		Category:      CategoryPillar,
		Tier:          TierSilver,
		Rarity:        RarityRare,
		Points:        80,
		Requirement:   GoalCompletionRequirement{TargetGoals: 25, Pillar: pillarOf(domain.PillarFearless)},
		UnlockMessage: "Twenty-five Fearless goals. Brave to the core.",
	},

	// Milestones
	{
		ID:            "points_500",
		Title:         "Rising Star",
		Description:   "Earn 500 total character points",
		Category:      CategoryMilestone,
		Tier:          TierSilver,
		Rarity:        RarityRare,
		Points:        50,
		Requirement:   TotalPointsRequirement{TargetPoints: 500},
		UnlockMessage: "Five hundred points earned. A star on the rise.",
	},
	{
		ID:            "points_2000",
		Title:         "Point Powerhouse",
		Description:   "Earn 2000 total character points",
		Category:      CategoryMilestone,
		Tier:          TierGold,
		Rarity:        RarityEpic,
		Points:        100,
		Requirement:   TotalPointsRequirement{TargetPoints: 2000},
		UnlockMessage: "Two thousand points. Pure powerhouse.",
	},
	{
		ID:            "regular_20",
		Title:         "Regular",
		Description:   "Be active on 20 different days",
		Category:      CategoryMilestone,
		Tier:          TierBronze,
		Rarity:        RarityCommon,
		Points:        25,
		Requirement:   DaysActiveRequirement{TargetDays: 20},
		UnlockMessage: "Twenty active days. You belong here.",
	},
	{
		ID:            "dedicated_75",
		Title:         "Dedicated",
		Description:   "Be active on 75 different days",
		Category:      CategoryMilestone,
		Tier:          TierSilver,
		Rarity:        RarityRare,
		Points:        75,
		Requirement:   DaysActiveRequirement{TargetDays: 75},
		UnlockMessage: "Seventy-five active days. Dedication defined.",
	},

	// Levels
	{
		ID:            "gold_standard",
		Title:         "Gold Standard",
		Description:   "Reach gold level in any pillar",
		Category:      CategoryLevel,
		Tier:          TierGold,
		Rarity:        RarityEpic,
		Points:        100,
		Requirement:   LevelReachedRequirement{TargetPillars: 1},
		UnlockMessage: "Gold level reached. You set the standard.",
	},
	{
		ID:            "triple_gold",
		Title:         "Triple Gold",
		Description:   "Reach gold level in all three pillars",
		Category:      CategoryLevel,
		Tier:          TierPlatinum,
		Rarity:        RarityLegendary,
		Points:        250,
		Requirement:   LevelReachedRequirement{TargetPillars: 3},
		Hidden:        true,
		UnlockMessage: "Gold across the board. The complete athlete.",
	},

	// Special
	{
		ID:            "founding_goat",
		Title:         "Founding Goat",
		Description:   "Show up for day one",
		Category:      CategorySpecial,
		Tier:          TierBronze,
		Rarity:        RarityRare,
		Points:        20,
		Requirement:   DaysActiveRequirement{TargetDays: 1},
		Hidden:        true,
		UnlockMessage: "Welcome to the herd. It all starts today.",
	},
}

// defaultLevels are the shipped pillar ladders. Thresholds are shared
// across pillars; titles and badges are pillar-specific.
var defaultLevels = map[domain.Pillar]LevelTable{
	domain.PillarResilient: {
		{Level: 1, Title: "Resilient Rookie", Description: "Learning to bounce back", PointsRequired: 0, BadgeIcon: "badge_resilient_1", BadgeColor: "#9CA3AF"},
		{Level: 2, Title: "Resilient Athlete", Description: "Setbacks don't stick", PointsRequired: 200, BadgeIcon: "badge_resilient_2", BadgeColor: "#10B981", Privileges: []string{"profile_badge"}},
		{Level: 3, Title: "Resilient Warrior", Description: "Tough days make you stronger", PointsRequired: 500, BadgeIcon: "badge_resilient_3", BadgeColor: "#F59E0B", Privileges: []string{"profile_badge", "custom_goal_icons"}},
		{Level: 4, Title: "Resilient Champion", Description: "The comeback is your signature", PointsRequired: 1000, BadgeIcon: "badge_resilient_4", BadgeColor: "#8B5CF6", Privileges: []string{"profile_badge", "custom_goal_icons", "team_shoutout"}},
		{Level: 5, Title: "Resilient Legend", Description: "Nothing keeps you down", PointsRequired: 2000, BadgeIcon: "badge_resilient_5", BadgeColor: "#EF4444", Privileges: []string{"profile_badge", "custom_goal_icons", "team_shoutout", "hall_of_fame"}},
	},
	domain.PillarRelentless: {
		{Level: 1, Title: "Relentless Rookie", Description: "Learning to keep going", PointsRequired: 0, BadgeIcon: "badge_relentless_1", BadgeColor: "#9CA3AF"},
		{Level: 2, Title: "Relentless Athlete", Description: "Momentum is building", PointsRequired: 200, BadgeIcon: "badge_relentless_2", BadgeColor: "#10B981", Privileges: []string{"profile_badge"}},
		{Level: 3, Title: "Relentless Warrior", Description: "Quitting is not in your vocabulary", PointsRequired: 500, BadgeIcon: "badge_relentless_3", BadgeColor: "#F59E0B", Privileges: []string{"profile_badge", "custom_goal_icons"}},
		{Level: 4, Title: "Relentless Champion", Description: "You outwork everyone", PointsRequired: 1000, BadgeIcon: "badge_relentless_4", BadgeColor: "#8B5CF6", Privileges: []string{"profile_badge", "custom_goal_icons", "team_shoutout"}},
		{Level: 5, Title: "Relentless Legend", Description: "Effort without end", PointsRequired: 2000, BadgeIcon: "badge_relentless_5", BadgeColor: "#EF4444", Privileges: []string{"profile_badge", "custom_goal_icons", "team_shoutout", "hall_of_fame"}},
	},
	domain.PillarFearless: {
		{Level: 1, Title: "Fearless Rookie", Description: "Learning to be brave", PointsRequired: 0, BadgeIcon: "badge_fearless_1", BadgeColor: "#9CA3AF"},
		{Level: 2, Title: "Fearless Athlete", Description: "Nerves become fuel", PointsRequired: 200, BadgeIcon: "badge_fearless_2", BadgeColor: "#10B981", Privileges: []string{"profile_badge"}},
		{Level: 3, Title: "Fearless Warrior", Description: "You take the big shots", PointsRequired: 500, BadgeIcon: "badge_fearless_3", BadgeColor: "#F59E0B", Privileges: []string{"profile_badge", "custom_goal_icons"}},
		{Level: 4, Title: "Fearless Champion", Description: "Pressure is your home turf", PointsRequired: 1000, BadgeIcon: "badge_fearless_4", BadgeColor: "#8B5CF6", Privileges: []string{"profile_badge", "custom_goal_icons", "team_shoutout"}},
		{Level: 5, Title: "Fearless Legend", Description: "No moment is too big", PointsRequired: 2000, BadgeIcon: "badge_fearless_5", BadgeColor: "#EF4444", Privileges: []string{"profile_badge", "custom_goal_icons", "team_shoutout", "hall_of_fame"}},
	},
}

// DefaultCatalog builds the shipped catalog. It panics on a validation
// failure because the data above is compiled in: a bad entry is a
// programming error, not a runtime condition.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultAchievements, defaultLevels)
	if err != nil {
		panic(fmt.Sprintf("default catalog invalid: %v", err))
	}
	return catalog
}
