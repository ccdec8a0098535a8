package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
	"github.com/babygoats/BabyGoats_Go/internal/scenario/capabilities"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

const (
	FeatureStreak = "streak"

	// Streak-specific parameters
	ParamBefore = "before"
)

// StreakProvider implements the scenario.Provider interface for the
// daily streak feature. Its time warp shifts an athlete's persisted
// history back by whole days, so a multi-day streak can be built by
// alternating record_activity and time_warp steps: each rewind turns
// "today" into "yesterday" from the streak engine's point of view.
type StreakProvider struct {
	db             *pgxpool.Pool
	userService    user.Service
	statsService   stats.Service
	achievementSvc achievement.Service
}

// NewStreakProvider creates a streak scenario provider
func NewStreakProvider(db *pgxpool.Pool, userService user.Service, statsService stats.Service, achievementSvc achievement.Service) *StreakProvider {
	return &StreakProvider{
		db:             db,
		userService:    userService,
		statsService:   statsService,
		achievementSvc: achievementSvc,
	}
}

// Feature returns the feature name
func (p *StreakProvider) Feature() string {
	return FeatureStreak
}

// Capabilities returns the QA powers this provider supports
func (p *StreakProvider) Capabilities() []scenario.CapabilityType {
	return []scenario.CapabilityType{
		scenario.CapabilityTimeWarp,
		scenario.CapabilityEventInjector,
	}
}

// GetCapabilityInfo returns detailed capability information
func (p *StreakProvider) GetCapabilityInfo() []scenario.CapabilityInfo {
	return []scenario.CapabilityInfo{
		capabilities.TimeWarpCapabilityInfo(),
		capabilities.EventInjectorCapabilityInfo(),
	}
}

// SupportsAction reports whether the provider handles the action
func (p *StreakProvider) SupportsAction(action scenario.ActionType) bool {
	switch action {
	case scenario.ActionSetState,
		scenario.ActionRecordActivity,
		scenario.ActionTimeWarp,
		scenario.ActionCheckStreak,
		scenario.ActionSweepStreaks,
		scenario.ActionEvaluateAchievements,
		scenario.ActionAssert:
		return true
	default:
		return false
	}
}

// PrebuiltScenarios returns the pre-built streak scenarios
func (p *StreakProvider) PrebuiltScenarios() []scenario.Scenario {
	return []scenario.Scenario{
		p.threeDaySparkScenario(),
		p.fullWeekScenario(),
		p.brokenChainScenario(),
		p.overnightSurvivorScenario(),
	}
}

// ExecuteStep executes a single step
func (p *StreakProvider) ExecuteStep(ctx context.Context, step scenario.Step, state *scenario.ExecutionState) (*scenario.StepResult, error) {
	result := scenario.NewStepResult(step.Name, 0, step.Action)

	switch step.Action {
	case scenario.ActionSetState:
		return executeSetState(ctx, p.userService, p.statsService, step, state, result, "scenario_athlete")
	case scenario.ActionRecordActivity:
		return executeRecordActivity(ctx, p.statsService, step, state, result)
	case scenario.ActionTimeWarp:
		return p.executeTimeWarp(ctx, step, state, result)
	case scenario.ActionCheckStreak:
		return p.executeCheckStreak(ctx, state, result)
	case scenario.ActionSweepStreaks:
		return p.executeSweepStreaks(ctx, step, state, result)
	case scenario.ActionEvaluateAchievements:
		return executeEvaluateAchievements(ctx, p.achievementSvc, state, result)
	case scenario.ActionAssert:
		// Pure assertion step; the engine checks the attached assertions
		// against accumulated state.
		return result, nil
	default:
		return nil, fmt.Errorf("%w: %s", scenario.ErrInvalidAction, step.Action)
	}
}

// executeTimeWarp shifts the active athlete's history into the past.
// Moving both the event timestamps and the streak's last active day
// keeps every day-based read consistent: after a one-day warp the
// engine sees an athlete who was last active yesterday.
func (p *StreakProvider) executeTimeWarp(ctx context.Context, step scenario.Step, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	if state.Athlete == nil {
		return nil, scenario.ErrAthleteNotInitialized
	}

	params, err := capabilities.ParseTimeWarpParams(step.Parameters)
	if err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(state.Athlete.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid athlete ID: %w", err)
	}

	if params.Target == "" || params.Target == capabilities.TargetEvents {
		query := `UPDATE stats_events SET created_at = created_at - make_interval(days => $1) WHERE user_id = $2`
		if _, err := p.db.Exec(ctx, query, params.Days, userUUID); err != nil {
			return nil, scenario.WrapDatabaseError("shift event history", err)
		}
	}

	if params.Target == "" || params.Target == capabilities.TargetStreak {
		query := `UPDATE user_streaks SET last_active_day = last_active_day - $1, updated_at = NOW() WHERE user_id = $2`
		if _, err := p.db.Exec(ctx, query, params.Days, userUUID); err != nil {
			return nil, scenario.WrapDatabaseError("shift streak state", err)
		}
	}

	state.SetResult("warped_days", params.Days)
	result.AddOutput("warped_days", params.Days)
	if params.Target != "" {
		result.AddOutput("target", params.Target)
	}
	return result, nil
}

// executeCheckStreak reads the streak and counters back through the
// real services so assertions exercise the same path the API serves
func (p *StreakProvider) executeCheckStreak(ctx context.Context, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	if state.Athlete == nil {
		return nil, scenario.ErrAthleteNotInitialized
	}

	streak, err := p.statsService.GetUserCurrentStreak(ctx, state.Athlete.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read streak: %w", err)
	}
	counters, err := p.statsService.GetUserCounters(ctx, state.Athlete.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	result.AddOutput("current_streak", streak)
	result.AddOutput("days_active", counters.DaysActive)
	result.AddOutput("total_points", counters.TotalPoints)
	result.AddOutput("goals_completed", counters.GoalsCompleted)
	state.SetResult("current_streak", streak)
	return result, nil
}

// executeSweepStreaks runs the expiry sweep the nightly rollover runs.
// The default cutoff matches the rollover's: yesterday, because a streak
// last active yesterday can still be continued today.
func (p *StreakProvider) executeSweepStreaks(ctx context.Context, step scenario.Step, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	if state.Athlete == nil {
		return nil, scenario.ErrAthleteNotInitialized
	}

	defaultCutoff := state.Clock.Now().UTC().AddDate(0, 0, -1).Format(DayFormat)
	before := getStringParam(step.Parameters, ParamBefore, defaultCutoff)

	expired, err := p.statsService.ResetExpiredStreaks(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep streaks: %w", err)
	}

	athleteReset := false
	previous := 0
	for _, e := range expired {
		if e.UserID == state.Athlete.UserID {
			athleteReset = true
			previous = e.PreviousStreak
		}
	}

	result.AddOutput("streaks_reset", len(expired))
	result.AddOutput("athlete_reset", athleteReset)
	result.AddOutput("previous_streak", previous)
	result.AddOutput("cutoff_day", before)
	return result, nil
}

// Pre-built scenario definitions

func (p *StreakProvider) threeDaySparkScenario() scenario.Scenario {
	steps := []scenario.Step{
		initializeStep(fmt.Sprintf("scenario_spark_%d", time.Now().UnixNano())),
	}
	steps = append(steps, streakLadderSteps(3)...)
	steps = append(steps,
		scenario.Step{
			Name:        "evaluate",
			Description: "Evaluate achievements after the third consecutive day",
			Action:      scenario.ActionEvaluateAchievements,
			Parameters:  map[string]interface{}{},
			Assertions: []scenario.Assertion{
				{
					Type:   scenario.AssertGreaterThan,
					Path:   "output.new_unlocks",
					Value:  0,
					Reason: "Three consecutive days should earn at least the first streak milestone",
				},
				{
					Type:  scenario.AssertContains,
					Path:  "output.unlocked_ids",
					Value: "streak_fire_3",
				},
			},
		},
		finalStreakCheckStep(3),
	)

	return scenario.Scenario{
		ID:          "streak_three_day_spark",
		Name:        "Three Day Spark",
		Description: "Builds a three day streak by rewinding history one day between activities, then verifies the first streak milestone unlocks.",
		Feature:     FeatureStreak,
		Capabilities: []scenario.CapabilityType{
			scenario.CapabilityTimeWarp,
			scenario.CapabilityEventInjector,
		},
		Steps: steps,
	}
}

func (p *StreakProvider) fullWeekScenario() scenario.Scenario {
	steps := []scenario.Step{
		initializeStep(fmt.Sprintf("scenario_weekly_%d", time.Now().UnixNano())),
	}
	steps = append(steps, streakLadderSteps(7)...)
	steps = append(steps,
		scenario.Step{
			Name:        "evaluate",
			Description: "Evaluate achievements after a full week of activity",
			Action:      scenario.ActionEvaluateAchievements,
			Parameters:  map[string]interface{}{},
			Assertions: []scenario.Assertion{
				{
					Type:  scenario.AssertContains,
					Path:  "output.unlocked_ids",
					Value: "streak_week_7",
				},
			},
		},
		finalStreakCheckStep(7),
	)

	return scenario.Scenario{
		ID:          "streak_full_week",
		Name:        "Full Week Streak",
		Description: "Builds a seven day streak day by day and verifies the week-long milestone unlocks along with the streak reading back as seven.",
		Feature:     FeatureStreak,
		Capabilities: []scenario.CapabilityType{
			scenario.CapabilityTimeWarp,
			scenario.CapabilityEventInjector,
		},
		Steps: steps,
	}
}

func (p *StreakProvider) brokenChainScenario() scenario.Scenario {
	return scenario.Scenario{
		ID:          "streak_broken_chain",
		Name:        "Broken Chain",
		Description: "Lets a fresh streak go stale for two days, runs the expiry sweep the rollover runs, and verifies the streak resets to zero.",
		Feature:     FeatureStreak,
		Capabilities: []scenario.CapabilityType{
			scenario.CapabilityTimeWarp,
			scenario.CapabilityEventInjector,
		},
		Steps: []scenario.Step{
			initializeStep(fmt.Sprintf("scenario_lapsed_%d", time.Now().UnixNano())),
			{
				Name:        "first_activity",
				Description: "Start a one day streak",
				Action:      scenario.ActionRecordActivity,
				Parameters: map[string]interface{}{
					ParamEventType: string(domain.EventWorkoutLogged),
					ParamPoints:    10,
				},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.current_streak", Value: 1},
				},
			},
			{
				Name:        "lapse",
				Description: "Shift history back two days so the streak goes stale",
				Action:      scenario.ActionTimeWarp,
				Parameters:  map[string]interface{}{ParamDays: 2},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.warped_days", Value: 2},
				},
			},
			{
				Name:        "sweep",
				Description: "Run the expiry sweep with the rollover's cutoff",
				Action:      scenario.ActionSweepStreaks,
				Parameters:  map[string]interface{}{},
				Assertions: []scenario.Assertion{
					{
						Type:   scenario.AssertTrue,
						Path:   "output.athlete_reset",
						Reason: "A streak last active two days ago is expired",
					},
					{Type: scenario.AssertEquals, Path: "output.previous_streak", Value: 1},
				},
			},
			{
				Name:        "confirm",
				Description: "Confirm the streak reads back as zero",
				Action:      scenario.ActionCheckStreak,
				Parameters:  map[string]interface{}{},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.current_streak", Value: 0},
				},
			},
		},
	}
}

func (p *StreakProvider) overnightSurvivorScenario() scenario.Scenario {
	return scenario.Scenario{
		ID:          "streak_overnight_survivor",
		Name:        "Overnight Survivor",
		Description: "Verifies the expiry sweep spares a streak whose last activity was yesterday, since the athlete can still continue it today.",
		Feature:     FeatureStreak,
		Capabilities: []scenario.CapabilityType{
			scenario.CapabilityTimeWarp,
			scenario.CapabilityEventInjector,
		},
		Steps: []scenario.Step{
			initializeStep(fmt.Sprintf("scenario_survivor_%d", time.Now().UnixNano())),
			{
				Name:        "first_activity",
				Description: "Start a one day streak",
				Action:      scenario.ActionRecordActivity,
				Parameters: map[string]interface{}{
					ParamEventType: string(domain.EventWorkoutLogged),
					ParamPoints:    10,
				},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.current_streak", Value: 1},
				},
			},
			{
				Name:        "overnight",
				Description: "Shift history back one day, as if a night passed",
				Action:      scenario.ActionTimeWarp,
				Parameters:  map[string]interface{}{ParamDays: 1},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.warped_days", Value: 1},
				},
			},
			{
				Name:        "sweep",
				Description: "Run the expiry sweep with the rollover's cutoff",
				Action:      scenario.ActionSweepStreaks,
				Parameters:  map[string]interface{}{},
				Assertions: []scenario.Assertion{
					{
						Type:   scenario.AssertFalse,
						Path:   "output.athlete_reset",
						Reason: "A streak last active yesterday is still alive",
					},
				},
			},
			{
				Name:        "confirm",
				Description: "Confirm the streak survived the sweep",
				Action:      scenario.ActionCheckStreak,
				Parameters:  map[string]interface{}{},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.current_streak", Value: 1},
				},
			},
		},
	}
}

// initializeStep registers a fresh athlete as the scenario's subject
func initializeStep(username string) scenario.Step {
	return scenario.Step{
		Name:        "initialize",
		Description: "Register a fresh athlete",
		Action:      scenario.ActionSetState,
		Parameters: map[string]interface{}{
			ParamUsername: username,
		},
		Assertions: []scenario.Assertion{
			{Type: scenario.AssertNotEmpty, Path: "output.user_id"},
			{Type: scenario.AssertEquals, Path: "output.current_streak", Value: 0},
		},
	}
}

// streakLadderSteps alternates record_activity and one-day time_warp
// steps so each activity lands on what the streak engine reads as a
// fresh consecutive day. After the day N step the streak is N.
func streakLadderSteps(days int) []scenario.Step {
	steps := make([]scenario.Step, 0, days*2-1)
	for day := 1; day <= days; day++ {
		steps = append(steps, scenario.Step{
			Name:        fmt.Sprintf("day_%d_activity", day),
			Description: fmt.Sprintf("Record the day %d workout", day),
			Action:      scenario.ActionRecordActivity,
			Parameters: map[string]interface{}{
				ParamEventType: string(domain.EventWorkoutLogged),
				ParamPoints:    10,
			},
			Assertions: []scenario.Assertion{
				{Type: scenario.AssertEquals, Path: "output.current_streak", Value: day},
			},
		})
		if day < days {
			steps = append(steps, scenario.Step{
				Name:        fmt.Sprintf("rewind_day_%d", day),
				Description: "Shift history back one day so the next activity lands on a fresh day",
				Action:      scenario.ActionTimeWarp,
				Parameters:  map[string]interface{}{ParamDays: 1},
				Assertions: []scenario.Assertion{
					{Type: scenario.AssertEquals, Path: "output.warped_days", Value: 1},
				},
			})
		}
	}
	return steps
}

// finalStreakCheckStep verifies the streak and history read back with
// the expected day count through the same services the API uses
func finalStreakCheckStep(days int) scenario.Step {
	return scenario.Step{
		Name:        "final_check",
		Description: fmt.Sprintf("Confirm the streak reads back as %d days", days),
		Action:      scenario.ActionCheckStreak,
		Parameters:  map[string]interface{}{},
		Assertions: []scenario.Assertion{
			{Type: scenario.AssertEquals, Path: "output.current_streak", Value: days},
			{
				Type:   scenario.AssertGreaterThan,
				Path:   "output.days_active",
				Value:  days - 1,
				Reason: "Activity history should span the same distinct days as the streak",
			},
		},
	}
}
