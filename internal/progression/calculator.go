package progression

import (
	"fmt"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// AchievementProgress reports how far a counters snapshot is toward one
// achievement. Percentage is always within [0, 100].
type AchievementProgress struct {
	AchievementID string  `json:"achievement_id"`
	Current       int     `json:"current"`
	Target        int     `json:"target"`
	Percentage    float64 `json:"percentage"`
	IsCompleted   bool    `json:"is_completed"`
}

// UserLevel reports an athlete's standing on one pillar ladder.
// ProgressPercent covers the span between the current and next thresholds
// and is always within [0, 100]; at the ladder cap it is 100, PointsToNext
// is 0 and NextTitle carries the max-level sentinel.
type UserLevel struct {
	Pillar          domain.Pillar `json:"pillar"`
	Level           int           `json:"level"`
	TotalPoints     int           `json:"total_points"`
	PointsToNext    int           `json:"points_to_next"`
	Title           string        `json:"title"`
	NextTitle       string        `json:"next_title"`
	ProgressPercent float64       `json:"progress_percent"`
}

// CalculateAchievementProgress measures a counters snapshot against one
// definition. Pure: neither argument is mutated, the result is freshly
// allocated, and the same inputs always produce the same output.
func CalculateAchievementProgress(def AchievementDefinition, counters domain.UserCounters) AchievementProgress {
	current := def.Requirement.currentValue(counters)
	target := def.Requirement.Target()

	progress := AchievementProgress{
		AchievementID: def.ID,
		Current:       current,
		Target:        target,
	}

	// Catalog validation rejects non-positive targets; guard anyway for
	// ad-hoc definitions so the division below stays defined.
	if target <= 0 {
		progress.Percentage = 100
		progress.IsCompleted = true
		return progress
	}

	progress.Percentage = clampPercent(float64(current) / float64(target) * 100)
	progress.IsCompleted = current >= target
	return progress
}

// AllProgress runs CalculateAchievementProgress across the whole catalog,
// in declaration order.
func (c *Catalog) AllProgress(counters domain.UserCounters) []AchievementProgress {
	out := make([]AchievementProgress, 0, len(c.achievements))
	for _, def := range c.achievements {
		out = append(out, CalculateAchievementProgress(def, counters))
	}
	return out
}

// UserLevel resolves an athlete's level on one pillar from a lifetime point
// total. Unknown pillars are an error; negative totals floor at level 1.
func (c *Catalog) UserLevel(pillar domain.Pillar, totalPoints int) (UserLevel, error) {
	table, ok := c.levels[pillar]
	if !ok {
		return UserLevel{}, fmt.Errorf("%w: %q", domain.ErrUnknownPillar, pillar)
	}

	// Thresholds are strictly increasing, so the last rung whose threshold
	// is covered is the current level. Level 1 requires 0 points.
	idx := 0
	for i, def := range table {
		if totalPoints >= def.PointsRequired {
			idx = i
		}
	}
	cur := table[idx]

	level := UserLevel{
		Pillar:      pillar,
		Level:       cur.Level,
		TotalPoints: totalPoints,
		Title:       cur.Title,
	}

	if idx == len(table)-1 {
		level.NextTitle = domain.MsgMaxLevel
		level.ProgressPercent = 100
		return level, nil
	}

	next := table[idx+1]
	level.NextTitle = next.Title
	level.PointsToNext = next.PointsRequired - totalPoints
	if level.PointsToNext < 0 {
		level.PointsToNext = 0
	}
	span := next.PointsRequired - cur.PointsRequired
	level.ProgressPercent = clampPercent(float64(totalPoints-cur.PointsRequired) / float64(span) * 100)
	return level, nil
}

// AllLevels resolves every pillar's level from a per-pillar point map, in
// canonical pillar order. Pillars absent from the map read as zero points.
func (c *Catalog) AllLevels(pillarPoints map[domain.Pillar]int) ([]UserLevel, error) {
	out := make([]UserLevel, 0, len(domain.Pillars))
	for _, pillar := range domain.Pillars {
		level, err := c.UserLevel(pillar, pillarPoints[pillar])
		if err != nil {
			return nil, err
		}
		out = append(out, level)
	}
	return out, nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
