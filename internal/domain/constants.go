package domain

// Difficulty constants for daily challenges
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Metadata key constants used in stats event payloads
const (
	MetadataKeyStreak       = "streak"
	MetadataKeyGoalName     = "goal_name"
	MetadataKeyChallengeKey = "challenge_key"
	MetadataKeySource       = "source"
)

// Activity source constants recorded in event metadata
const (
	SourceAPI       = "api"
	SourceChallenge = "challenge"
	SourceScenario  = "scenario"
	SourceSystem    = "system"
)

// Message constants
const (
	MsgStreakAdvanced = "🔥 %d day streak!"
	MsgStreakReset    = "Streak reset. Today is day one."
	MsgMaxLevel       = "Max level reached"
)

// StreakMilestoneMessages maps notable streak lengths to celebration lines
// used by the live feed and community announcements.
var StreakMilestoneMessages = map[int]string{
	3:   "Three days strong. The fire is lit!",
	7:   "A full week of showing up!",
	14:  "Two weeks. This is a habit now.",
	30:  "Thirty days. Unstoppable.",
	100: "One hundred days. Legendary dedication.",
}

// Period constants for stats summaries and leaderboards
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
	PeriodAll     = "all"
)

// Leaderboard metric constants
const (
	MetricPoints = "points"
	MetricStreak = "streak"
	MetricGoals  = "goals"
)

// IsValidPeriod checks if a period string is valid
func IsValidPeriod(period string) bool {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodAll:
		return true
	}
	return false
}

// IsValidMetric checks if a leaderboard metric string is valid
func IsValidMetric(metric string) bool {
	switch metric {
	case MetricPoints, MetricStreak, MetricGoals:
		return true
	}
	return false
}
