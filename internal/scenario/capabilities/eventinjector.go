package capabilities

import (
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
)

// EventInjectorCapabilityInfo describes the event injector capability:
// recording activity events without a real athlete action behind them.
func EventInjectorCapabilityInfo() scenario.CapabilityInfo {
	return scenario.CapabilityInfo{
		Type:        scenario.CapabilityEventInjector,
		Name:        "Event Injector",
		Description: "Records activity events through the real stats pipeline without athlete involvement",
		Actions: []scenario.ActionInfo{
			{
				Action:      scenario.ActionRecordActivity,
				Name:        "Record Activity",
				Description: "Records one or more activity events for the active athlete",
				Parameters: []scenario.ParameterInfo{
					{
						Name:        "event_type",
						Type:        "string",
						Required:    false,
						Description: "Activity event type (e.g. 'workout_logged', 'goal_completed'). Default: workout_logged.",
					},
					{
						Name:        "pillar",
						Type:        "string",
						Required:    false,
						Description: "Pillar to credit (resilient, relentless, fearless)",
					},
					{
						Name:        "points",
						Type:        "number",
						Required:    false,
						Description: "Points per event (default: 0)",
					},
					{
						Name:        "count",
						Type:        "number",
						Required:    false,
						Description: "Number of events to record (default: 1)",
					},
					{
						Name:        "metadata",
						Type:        "object",
						Required:    false,
						Description: "Extra metadata stored on each event",
					},
				},
				Example: map[string]interface{}{
					"event_type": "goal_completed",
					"pillar":     "resilient",
					"points":     25,
					"count":      10,
				},
			},
		},
	}
}

// ActivityParams are the parsed parameters of a record_activity step
type ActivityParams struct {
	EventType string
	Pillar    string
	Points    int
	Count     int
	Metadata  map[string]interface{}
}

// ParseActivityParams extracts activity injection parameters from a step
func ParseActivityParams(params map[string]interface{}) (*ActivityParams, error) {
	result := &ActivityParams{Count: 1}

	if eventType, ok := params["event_type"]; ok {
		et, ok := eventType.(string)
		if !ok {
			return nil, scenario.NewParameterError("event_type", "must be a string")
		}
		result.EventType = et
	}

	if pillar, ok := params["pillar"]; ok {
		p, ok := pillar.(string)
		if !ok {
			return nil, scenario.NewParameterError("pillar", "must be a string")
		}
		result.Pillar = p
	}

	if points, ok := params["points"]; ok {
		p, ok := intFromParam(points)
		if !ok {
			return nil, scenario.NewParameterError("points", "must be a number")
		}
		if p < 0 {
			return nil, scenario.NewParameterError("points", "must not be negative")
		}
		result.Points = p
	}

	if count, ok := params["count"]; ok {
		c, ok := intFromParam(count)
		if !ok {
			return nil, scenario.NewParameterError("count", "must be a number")
		}
		if c < 1 {
			return nil, scenario.NewParameterError("count", "must be at least 1")
		}
		result.Count = c
	}

	if metadata, ok := params["metadata"]; ok {
		if m, ok := metadata.(map[string]interface{}); ok {
			result.Metadata = m
		}
	}

	return result, nil
}
