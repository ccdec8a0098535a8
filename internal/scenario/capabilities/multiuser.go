package capabilities

import (
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
)

// ParamAthleteIndex selects a roster member in a switch_athlete step
const ParamAthleteIndex = "athlete_index"

// MultiUserCapabilityInfo describes the multi-athlete capability: a
// scenario keeps a roster of simulated athletes and switches the active
// one between steps, so competitive reads like leaderboards can be
// exercised end to end.
func MultiUserCapabilityInfo() scenario.CapabilityInfo {
	return scenario.CapabilityInfo{
		Type:        scenario.CapabilityMultiUser,
		Name:        "Multi-Athlete Simulation",
		Description: "Runs several simulated athletes in one scenario and switches the active one between steps",
		Actions: []scenario.ActionInfo{
			{
				Action:      scenario.ActionSetState,
				Name:        "Add Athlete",
				Description: "Registers another simulated athlete and makes it the active one",
				Parameters: []scenario.ParameterInfo{
					{
						Name:        "username",
						Type:        "string",
						Required:    false,
						Description: "Username for the simulated athlete",
					},
					{
						Name:        "discord_id",
						Type:        "string",
						Required:    false,
						Description: "Discord account to link to the athlete",
					},
				},
				Example: map[string]interface{}{
					"username": "scenario_competitor_2",
				},
			},
			{
				Action:      scenario.ActionSwitchAthlete,
				Name:        "Switch Athlete",
				Description: "Makes a previously added athlete the active one for subsequent steps",
				Parameters: []scenario.ParameterInfo{
					{
						Name:        "athlete_index",
						Type:        "number",
						Required:    true,
						Description: "Roster index of the athlete to activate, in set_state order starting at 0",
					},
				},
				Example: map[string]interface{}{
					"athlete_index": 0,
				},
			},
		},
	}
}

// SwitchAthleteParams are the parsed parameters of a switch_athlete step
type SwitchAthleteParams struct {
	AthleteIndex int
}

// ParseSwitchAthleteParams extracts the roster index from a step
func ParseSwitchAthleteParams(params map[string]interface{}) (*SwitchAthleteParams, error) {
	raw, ok := params[ParamAthleteIndex]
	if !ok {
		return nil, scenario.NewParameterError(ParamAthleteIndex, "is required")
	}
	index, ok := intFromParam(raw)
	if !ok {
		return nil, scenario.NewParameterError(ParamAthleteIndex, "must be a number")
	}
	return &SwitchAthleteParams{AthleteIndex: index}, nil
}
