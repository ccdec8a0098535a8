package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking. These represent domain events that can be published
// and consumed by multiple modules.
//
// Event types follow the pattern: <entity>.<action> (e.g., "streak.advanced")
const (
	// EventTypeAthleteRegistered is published when a new athlete account is created
	EventTypeAthleteRegistered = "athlete.registered"

	// EventTypeActivityRecorded is published for every recorded activity event
	EventTypeActivityRecorded = "activity.recorded"

	// EventTypeGoalCompleted is published when an athlete completes a goal
	EventTypeGoalCompleted = "goal.completed"

	// EventTypeStreakAdvanced is published when the daily streak increments
	EventTypeStreakAdvanced = "streak.advanced"

	// EventTypeStreakReset is published when a missed day drops the streak back to one
	EventTypeStreakReset = "streak.reset"

	// EventTypeChallengeCompleted is published when a daily challenge is completed
	EventTypeChallengeCompleted = "challenge.completed"

	// EventTypeAchievementUnlocked is published when an achievement requirement is first met
	EventTypeAchievementUnlocked = "achievement.unlocked"

	// EventTypeLevelUp is published when an athlete crosses a pillar level threshold
	EventTypeLevelUp = "level.up"

	// EventTypeCatalogSynced is published after the achievement catalog is synced to the database
	EventTypeCatalogSynced = "catalog.synced"

	// EventTypeDailyRolloverComplete is published when the midnight rollover completes
	EventTypeDailyRolloverComplete = "daily_rollover.complete"
)
