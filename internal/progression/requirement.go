package progression

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// Requirement type tag constants - stable wire identifiers used in catalog JSON
const (
	RequirementTypeStreak         = "streak"
	RequirementTypeGoalCompletion = "goal_completion"
	RequirementTypeTotalPoints    = "total_points"
	RequirementTypeDaysActive     = "days_active"
	RequirementTypeLevelReached   = "level_reached"
)

// GoldLevel is the pillar level that counts toward level_reached requirements.
const GoldLevel = 3

// Sentinel errors for requirement decoding
var (
	ErrUnknownRequirement = errors.New("unknown requirement type")
	ErrInvalidRequirement = errors.New("invalid requirement")
)

// Requirement is the closed set of achievement requirement variants. Each
// variant carries its threshold and knows how to read the matching counter
// from a snapshot. The unexported method keeps the set closed: adding a
// variant means adding it here, next to the wire codec that names every tag.
type Requirement interface {
	// Type returns the wire tag for this variant.
	Type() string
	// Target returns the threshold the counter is compared against.
	Target() int
	// currentValue extracts the counter this requirement tracks.
	currentValue(c domain.UserCounters) int
	// isRequirement seals the interface.
	isRequirement()
}

// StreakRequirement is satisfied at a consecutive-day activity streak length.
type StreakRequirement struct {
	TargetDays int
}

func (r StreakRequirement) Type() string { return RequirementTypeStreak }
func (r StreakRequirement) Target() int  { return r.TargetDays }
func (r StreakRequirement) currentValue(c domain.UserCounters) int {
	return c.Streak
}
func (StreakRequirement) isRequirement() {}

// GoalCompletionRequirement is satisfied at a number of completed goals,
// across all pillars or scoped to a single one.
type GoalCompletionRequirement struct {
	TargetGoals int
	// Pillar scopes the count when set; nil means all pillars combined.
	Pillar *domain.Pillar
}

func (r GoalCompletionRequirement) Type() string { return RequirementTypeGoalCompletion }
func (r GoalCompletionRequirement) Target() int  { return r.TargetGoals }
func (r GoalCompletionRequirement) currentValue(c domain.UserCounters) int {
	if r.Pillar != nil {
		// Absent map key reads as zero progress, never an error.
		return c.PillarGoals[*r.Pillar]
	}
	return c.GoalsCompleted
}
func (GoalCompletionRequirement) isRequirement() {}

// TotalPointsRequirement is satisfied at a lifetime character-point total.
type TotalPointsRequirement struct {
	TargetPoints int
}

func (r TotalPointsRequirement) Type() string { return RequirementTypeTotalPoints }
func (r TotalPointsRequirement) Target() int  { return r.TargetPoints }
func (r TotalPointsRequirement) currentValue(c domain.UserCounters) int {
	return c.TotalPoints
}
func (TotalPointsRequirement) isRequirement() {}

// DaysActiveRequirement is satisfied at a number of distinct active days.
type DaysActiveRequirement struct {
	TargetDays int
}

func (r DaysActiveRequirement) Type() string { return RequirementTypeDaysActive }
func (r DaysActiveRequirement) Target() int  { return r.TargetDays }
func (r DaysActiveRequirement) currentValue(c domain.UserCounters) int {
	return c.DaysActive
}
func (DaysActiveRequirement) isRequirement() {}

// LevelReachedRequirement is satisfied when enough pillars are at gold
// level or better.
type LevelReachedRequirement struct {
	TargetPillars int
}

func (r LevelReachedRequirement) Type() string { return RequirementTypeLevelReached }
func (r LevelReachedRequirement) Target() int  { return r.TargetPillars }
func (r LevelReachedRequirement) currentValue(c domain.UserCounters) int {
	count := 0
	for _, level := range c.PillarLevels {
		if level >= GoldLevel {
			count++
		}
	}
	return count
}
func (LevelReachedRequirement) isRequirement() {}

// requirementWire is the JSON form of the tagged union.
type requirementWire struct {
	Type   string         `json:"type"`
	Target int            `json:"target"`
	Pillar *domain.Pillar `json:"pillar,omitempty"`
}

// MarshalJSON encodes the variant with its discriminator tag.
func (r StreakRequirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(requirementWire{Type: r.Type(), Target: r.TargetDays})
}

func (r GoalCompletionRequirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(requirementWire{Type: r.Type(), Target: r.TargetGoals, Pillar: r.Pillar})
}

func (r TotalPointsRequirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(requirementWire{Type: r.Type(), Target: r.TargetPoints})
}

func (r DaysActiveRequirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(requirementWire{Type: r.Type(), Target: r.TargetDays})
}

func (r LevelReachedRequirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(requirementWire{Type: r.Type(), Target: r.TargetPillars})
}

// UnmarshalRequirement decodes a requirement by its discriminator tag.
// An unknown tag is an error, never a silent zero-progress requirement.
func UnmarshalRequirement(data []byte) (Requirement, error) {
	var wire requirementWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequirement, err)
	}

	switch wire.Type {
	case RequirementTypeStreak:
		return StreakRequirement{TargetDays: wire.Target}, nil
	case RequirementTypeGoalCompletion:
		if wire.Pillar != nil && !wire.Pillar.Valid() {
			return nil, fmt.Errorf("%w: goal_completion pillar %q", ErrInvalidRequirement, *wire.Pillar)
		}
		return GoalCompletionRequirement{TargetGoals: wire.Target, Pillar: wire.Pillar}, nil
	case RequirementTypeTotalPoints:
		return TotalPointsRequirement{TargetPoints: wire.Target}, nil
	case RequirementTypeDaysActive:
		return DaysActiveRequirement{TargetDays: wire.Target}, nil
	case RequirementTypeLevelReached:
		return LevelReachedRequirement{TargetPillars: wire.Target}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequirement, wire.Type)
	}
}
