package domain

// UserCounters is a point-in-time snapshot of the activity totals the
// progression calculations run against. It is assembled by the stats
// service from the event log and handed to the engine by value; the
// engine never mutates it.
type UserCounters struct {
	// Streak is the current consecutive-day activity streak.
	Streak int `json:"streak"`
	// GoalsCompleted is the lifetime count of completed goals across all pillars.
	GoalsCompleted int `json:"goals_completed"`
	// PillarGoals breaks GoalsCompleted down per pillar. A pillar with no
	// completions may be absent from the map; readers treat absence as zero.
	PillarGoals map[Pillar]int `json:"pillar_goals"`
	// TotalPoints is the lifetime point total across all pillars.
	TotalPoints int `json:"total_points"`
	// DaysActive is the number of distinct UTC days with at least one activity.
	DaysActive int `json:"days_active"`
	// PillarLevels is the current level per pillar, derived from pillar points.
	PillarLevels map[Pillar]int `json:"pillar_levels"`
	// PillarPoints is the lifetime point total per pillar.
	PillarPoints map[Pillar]int `json:"pillar_points"`
}
