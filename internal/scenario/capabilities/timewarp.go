package capabilities

import (
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
)

// Time warp targets. The default shifts both the event history and the
// streak state so every day-based read stays consistent.
const (
	TargetEvents = "events"
	TargetStreak = "streak"
)

// TimeWarpCapabilityInfo describes the time warp capability: shifting an
// athlete's persisted history into the past so consecutive-day logic can
// be exercised without waiting for real midnights.
func TimeWarpCapabilityInfo() scenario.CapabilityInfo {
	return scenario.CapabilityInfo{
		Type:        scenario.CapabilityTimeWarp,
		Name:        "Time Warp",
		Description: "Shifts the athlete's recorded history into the past by adjusting database timestamps",
		Actions: []scenario.ActionInfo{
			{
				Action:      scenario.ActionTimeWarp,
				Name:        "Time Warp",
				Description: "Moves the athlete's activity events and streak state back by whole days",
				Parameters: []scenario.ParameterInfo{
					{
						Name:        "days",
						Type:        "number",
						Required:    true,
						Description: "Number of days to shift into the past",
					},
					{
						Name:        "target",
						Type:        "string",
						Required:    false,
						Description: "Restrict the shift to 'events' or 'streak'. Omitted shifts both.",
					},
				},
				Example: map[string]interface{}{
					"days": 1,
				},
			},
		},
	}
}

// TimeWarpParams are the parsed parameters of a time_warp step
type TimeWarpParams struct {
	Days   int
	Target string
}

// ParseTimeWarpParams extracts time warp parameters from a step
func ParseTimeWarpParams(params map[string]interface{}) (*TimeWarpParams, error) {
	result := &TimeWarpParams{}

	raw, ok := params["days"]
	if !ok {
		return nil, scenario.NewParameterError("days", "is required")
	}
	days, ok := intFromParam(raw)
	if !ok {
		return nil, scenario.NewParameterError("days", "must be a number")
	}
	if days <= 0 {
		return nil, scenario.NewParameterError("days", "must be positive")
	}
	result.Days = days

	if target, ok := params["target"]; ok {
		if t, ok := target.(string); ok {
			result.Target = t
		}
	}
	switch result.Target {
	case "", TargetEvents, TargetStreak:
	default:
		return nil, scenario.NewParameterError("target", "must be 'events' or 'streak'")
	}

	return result, nil
}

// intFromParam converts a step parameter to int. JSON decoding produces
// float64, while pre-built Go definitions carry native ints.
func intFromParam(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
