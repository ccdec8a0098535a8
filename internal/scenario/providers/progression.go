package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
	"github.com/babygoats/BabyGoats_Go/internal/scenario/capabilities"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

const (
	FeatureProgression = "progression"

	// Leaderboard parameters
	ParamMetric = "metric"
	ParamPeriod = "period"
	ParamLimit  = "limit"
)

// ProgressionProvider implements the scenario.Provider interface for
// levels and leaderboards. It drives everything through the services,
// so it carries no database handle: bulk activity injection plus the
// multi-athlete roster are enough to stage a leaderboard.
type ProgressionProvider struct {
	userService    user.Service
	statsService   stats.Service
	achievementSvc achievement.Service
}

// NewProgressionProvider creates a progression scenario provider
func NewProgressionProvider(userService user.Service, statsService stats.Service, achievementSvc achievement.Service) *ProgressionProvider {
	return &ProgressionProvider{
		userService:    userService,
		statsService:   statsService,
		achievementSvc: achievementSvc,
	}
}

// Feature returns the feature name
func (p *ProgressionProvider) Feature() string {
	return FeatureProgression
}

// Capabilities returns the QA powers this provider supports
func (p *ProgressionProvider) Capabilities() []scenario.CapabilityType {
	return []scenario.CapabilityType{
		scenario.CapabilityEventInjector,
		scenario.CapabilityMultiUser,
	}
}

// GetCapabilityInfo returns detailed capability information
func (p *ProgressionProvider) GetCapabilityInfo() []scenario.CapabilityInfo {
	return []scenario.CapabilityInfo{
		capabilities.EventInjectorCapabilityInfo(),
		capabilities.MultiUserCapabilityInfo(),
	}
}

// SupportsAction reports whether the provider handles the action
func (p *ProgressionProvider) SupportsAction(action scenario.ActionType) bool {
	switch action {
	case scenario.ActionSetState,
		scenario.ActionRecordActivity,
		scenario.ActionSwitchAthlete,
		scenario.ActionEvaluateAchievements,
		scenario.ActionCheckLevels,
		scenario.ActionCheckLeaderboard,
		scenario.ActionAssert:
		return true
	default:
		return false
	}
}

// PrebuiltScenarios returns the pre-built progression scenarios
func (p *ProgressionProvider) PrebuiltScenarios() []scenario.Scenario {
	return []scenario.Scenario{
		p.levelSprintScenario(),
		p.podiumRaceScenario(),
	}
}

// ExecuteStep executes a single step
func (p *ProgressionProvider) ExecuteStep(ctx context.Context, step scenario.Step, state *scenario.ExecutionState) (*scenario.StepResult, error) {
	result := scenario.NewStepResult(step.Name, 0, step.Action)

	switch step.Action {
	case scenario.ActionSetState:
		return executeSetState(ctx, p.userService, p.statsService, step, state, result, "scenario_competitor")
	case scenario.ActionRecordActivity:
		return executeRecordActivity(ctx, p.statsService, step, state, result)
	case scenario.ActionSwitchAthlete:
		return p.executeSwitchAthlete(step, state, result)
	case scenario.ActionEvaluateAchievements:
		return executeEvaluateAchievements(ctx, p.achievementSvc, state, result)
	case scenario.ActionCheckLevels:
		return p.executeCheckLevels(ctx, state, result)
	case scenario.ActionCheckLeaderboard:
		return p.executeCheckLeaderboard(ctx, step, state, result)
	case scenario.ActionAssert:
		// Pure assertion step; the engine checks the attached assertions
		// against accumulated state.
		return result, nil
	default:
		return nil, fmt.Errorf("%w: %s", scenario.ErrInvalidAction, step.Action)
	}
}

// executeSwitchAthlete changes which roster member later steps act as
func (p *ProgressionProvider) executeSwitchAthlete(step scenario.Step, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	params, err := capabilities.ParseSwitchAthleteParams(step.Parameters)
	if err != nil {
		return nil, err
	}

	athlete, err := state.SwitchAthlete(params.AthleteIndex)
	if err != nil {
		return nil, err
	}

	result.AddOutput("athlete_index", params.AthleteIndex)
	result.AddOutput("active_username", athlete.Username)
	return result, nil
}

// executeCheckLevels reads the active athlete's pillar ladders
func (p *ProgressionProvider) executeCheckLevels(ctx context.Context, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	if state.Athlete == nil {
		return nil, scenario.ErrAthleteNotInitialized
	}

	levels, err := p.achievementSvc.GetUserLevels(ctx, state.Athlete.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels: %w", err)
	}

	for _, lvl := range levels {
		result.AddOutput(fmt.Sprintf("%s_level", lvl.Pillar), lvl.Level)
		result.AddOutput(fmt.Sprintf("%s_points", lvl.Pillar), lvl.TotalPoints)
	}
	result.AddOutput("pillars", len(levels))
	return result, nil
}

// executeCheckLeaderboard reads the live leaderboard and reports where
// the active athlete landed on it
func (p *ProgressionProvider) executeCheckLeaderboard(ctx context.Context, step scenario.Step, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	metric := getStringParam(step.Parameters, ParamMetric, domain.MetricPoints)
	period := getStringParam(step.Parameters, ParamPeriod, domain.PeriodAll)
	limit := getIntParam(step.Parameters, ParamLimit, 10)

	entries, err := p.statsService.GetLeaderboard(ctx, metric, period, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	result.AddOutput("entries", len(entries))
	if len(entries) > 0 {
		result.AddOutput("first_place", entries[0].Username)
		result.AddOutput("first_value", entries[0].Value)
	}
	if state.Athlete != nil {
		rank := 0
		for i, e := range entries {
			if e.UserID == state.Athlete.UserID {
				rank = i + 1
				break
			}
		}
		result.AddOutput("athlete_rank", rank)
	}
	return result, nil
}

// Pre-built scenario definitions

func (p *ProgressionProvider) levelSprintScenario() scenario.Scenario {
	return scenario.Scenario{
		ID:          "progression_level_sprint",
		Name:        "Level Sprint",
		Description: "Injects a burst of completed goals on one pillar and verifies the goal achievements unlock and the pillar level climbs.",
		Feature:     FeatureProgression,
		Capabilities: []scenario.CapabilityType{
			scenario.CapabilityEventInjector,
		},
		Steps: []scenario.Step{
			initializeStep(fmt.Sprintf("scenario_climber_%d", time.Now().UnixNano())),
			{
				Name:        "goal_burst",
				Description: "Complete ten resilience goals in one burst",
				Action:      scenario.ActionRecordActivity,
				Parameters: map[string]interface{}{
					ParamEventType: string(domain.EventGoalCompleted),
					ParamPillar:    string(domain.PillarResilient),
					ParamPoints:    25,
					ParamCount:     10,
				},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.events_recorded", Value: 10},
					{Type: scenario.AssertEquals, Path: "output.points_awarded", Value: 250},
				},
			},
			{
				Name:        "evaluate",
				Description: "Evaluate achievements after the burst",
				Action:      scenario.ActionEvaluateAchievements,
				Parameters:  map[string]interface{}{},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertGreaterThan, Path: "output.new_unlocks", Value: 0},
					{Type: scenario.AssertContains, Path: "output.unlocked_ids", Value: "goal_getter_10"},
				},
			},
			{
				Name:        "check_levels",
				Description: "Confirm the resilient ladder registered the points",
				Action:      scenario.ActionCheckLevels,
				Parameters:  map[string]interface{}{},
				Assertions: []scenario.Assertion{
					{
						Type:   scenario.AssertGreaterThan,
						Path:   "output.resilient_level",
						Value:  1,
						Reason: "250 pillar points clears the level two threshold of 200",
					},
					{Type: scenario.AssertGreaterThan, Path: "output.resilient_points", Value: 249},
				},
			},
		},
	}
}

func (p *ProgressionProvider) podiumRaceScenario() scenario.Scenario {
	nonce := time.Now().UnixNano()
	return scenario.Scenario{
		ID:          "progression_podium_race",
		Name:        "Podium Race",
		Description: "Registers three athletes, gives each a different point total, then checks the live leaderboard orders them correctly.",
		Feature:     FeatureProgression,
		Capabilities: []scenario.CapabilityType{
			scenario.CapabilityEventInjector,
			scenario.CapabilityMultiUser,
		},
		Steps: []scenario.Step{
			{
				Name:        "register_alice",
				Description: "Register the eventual winner",
				Action:      scenario.ActionSetState,
				Parameters:  map[string]interface{}{ParamUsername: fmt.Sprintf("alice_%d", nonce)},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.athlete_index", Value: 0},
				},
			},
			{
				Name:        "alice_training",
				Description: "Alice banks ninety points",
				Action:      scenario.ActionRecordActivity,
				Parameters: map[string]interface{}{
					ParamEventType: string(domain.EventGoalCompleted),
					ParamPillar:    string(domain.PillarRelentless),
					ParamPoints:    30,
					ParamCount:     3,
				},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.points_awarded", Value: 90},
				},
			},
			{
				Name:        "register_blake",
				Description: "Register the runner up",
				Action:      scenario.ActionSetState,
				Parameters:  map[string]interface{}{ParamUsername: fmt.Sprintf("blake_%d", nonce)},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.athlete_index", Value: 1},
				},
			},
			{
				Name:        "blake_training",
				Description: "Blake banks fifty points",
				Action:      scenario.ActionRecordActivity,
				Parameters: map[string]interface{}{
					ParamEventType: string(domain.EventGoalCompleted),
					ParamPillar:    string(domain.PillarFearless),
					ParamPoints:    25,
					ParamCount:     2,
				},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.points_awarded", Value: 50},
				},
			},
			{
				Name:        "register_casey",
				Description: "Register the third competitor",
				Action:      scenario.ActionSetState,
				Parameters:  map[string]interface{}{ParamUsername: fmt.Sprintf("casey_%d", nonce)},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.athlete_index", Value: 2},
				},
			},
			{
				Name:        "casey_training",
				Description: "Casey banks ten points",
				Action:      scenario.ActionRecordActivity,
				Parameters: map[string]interface{}{
					ParamEventType: string(domain.EventWorkoutLogged),
					ParamPoints:    10,
				},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.points_awarded", Value: 10},
				},
			},
			{
				Name:        "back_to_alice",
				Description: "Switch the roster back to the first athlete",
				Action:      scenario.ActionSwitchAthlete,
				Parameters:  map[string]interface{}{capabilities.ParamAthleteIndex: 0},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertContains, Path: "output.active_username", Value: "alice"},
				},
			},
			{
				Name:        "alice_final_push",
				Description: "Alice adds a final workout",
				Action:      scenario.ActionRecordActivity,
				Parameters: map[string]interface{}{
					ParamEventType: string(domain.EventWorkoutLogged),
					ParamPoints:    5,
				},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.points_awarded", Value: 5},
				},
			},
			{
				Name:        "podium",
				Description: "Read the all-time points leaderboard",
				Action:      scenario.ActionCheckLeaderboard,
				Parameters: map[string]interface{}{
					ParamMetric: domain.MetricPoints,
					ParamPeriod: domain.PeriodAll,
					ParamLimit:  50,
				},
				Assertions: []scenario.Assertion{
					{
						Type:   scenario.AssertGreaterThan,
						Path:   "output.entries",
						Value:  2,
						Reason: "All three competitors should appear on the board",
					},
					{
						Type:   scenario.AssertGreaterThan,
						Path:   "output.first_value",
						Value:  94,
						Reason: "First place scores at least Alice's ninety five points",
					},
					{
						Type:   scenario.AssertGreaterThan,
						Path:   "output.athlete_rank",
						Value:  0,
						Reason: "Alice must rank somewhere on a board of this size",
					},
				},
			},
		},
	}
}
