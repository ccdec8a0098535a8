package progression

import (
	"errors"
	"fmt"
)

// ErrInvalidLevelTable is returned for a level ladder that fails validation
var ErrInvalidLevelTable = errors.New("invalid level table")

// LevelDefinition describes one rung of a pillar's level ladder
type LevelDefinition struct {
	Level          int      `json:"level"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	PointsRequired int      `json:"points_required"`
	BadgeIcon      string   `json:"badge_icon"`
	BadgeColor     string   `json:"badge_color"`
	Privileges     []string `json:"privileges,omitempty"`
}

// LevelTable is one pillar's ordered ladder, level 1 first
type LevelTable []LevelDefinition

// Validate enforces the ladder invariants: non-empty, levels numbered
// sequentially from 1, level 1 free, thresholds strictly increasing.
func (t LevelTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidLevelTable)
	}
	for i, def := range t {
		if def.Level != i+1 {
			return fmt.Errorf("%w: entry %d has level %d, want %d", ErrInvalidLevelTable, i, def.Level, i+1)
		}
		if def.Title == "" {
			return fmt.Errorf("%w: level %d has empty title", ErrInvalidLevelTable, def.Level)
		}
		if i == 0 {
			if def.PointsRequired != 0 {
				return fmt.Errorf("%w: level 1 requires %d points, want 0", ErrInvalidLevelTable, def.PointsRequired)
			}
			continue
		}
		if def.PointsRequired <= t[i-1].PointsRequired {
			return fmt.Errorf("%w: level %d threshold %d not above level %d threshold %d",
				ErrInvalidLevelTable, def.Level, def.PointsRequired, t[i-1].Level, t[i-1].PointsRequired)
		}
	}
	return nil
}

// MaxLevel returns the highest level the ladder reaches
func (t LevelTable) MaxLevel() int {
	return len(t)
}
