package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babygoats/BabyGoats_Go/internal/achievement"
	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
	"github.com/babygoats/BabyGoats_Go/internal/scenario/capabilities"
	"github.com/babygoats/BabyGoats_Go/internal/stats"
	"github.com/babygoats/BabyGoats_Go/internal/user"
)

// Parameter keys shared across providers
const (
	ParamUsername  = "username"
	ParamDiscordID = "discord_id"
	ParamEventType = "event_type"
	ParamPillar    = "pillar"
	ParamPoints    = "points"
	ParamCount     = "count"
	ParamDays      = "days"

	DayFormat = "2006-01-02"
)

// Shared step executors. Every provider registers athletes, injects
// activity, and evaluates achievements the same way; only the scenario
// definitions and the feature-specific powers differ per provider.

// executeSetState registers the named athlete, or picks it up if a
// previous run already created it, and adds it to the scenario roster
// as the active athlete.
func executeSetState(ctx context.Context, userSvc user.Service, statsSvc stats.Service, step scenario.Step, state *scenario.ExecutionState, result *scenario.StepResult, defaultUsername string) (*scenario.StepResult, error) {
	username := getStringParam(step.Parameters, ParamUsername, defaultUsername)
	discordID := getStringParam(step.Parameters, ParamDiscordID, "")

	registered := false
	athlete, err := userSvc.GetAthleteByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up athlete: %w", err)
		}
		athlete, err = userSvc.RegisterAthlete(ctx, username, discordID)
		if err != nil {
			return nil, fmt.Errorf("failed to register athlete: %w", err)
		}
		registered = true
	}

	index := state.AddAthlete(&scenario.SimulatedAthlete{
		UserID:    athlete.ID,
		Username:  athlete.Username,
		DiscordID: athlete.DiscordID,
	})

	streak, err := statsSvc.GetUserCurrentStreak(ctx, athlete.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read streak: %w", err)
	}

	result.AddOutput("user_id", athlete.ID)
	result.AddOutput("username", athlete.Username)
	result.AddOutput("registered", registered)
	result.AddOutput("athlete_index", index)
	result.AddOutput("current_streak", streak)
	return result, nil
}

// executeRecordActivity records one or more activity events for the
// active athlete through the real stats pipeline, tagged with the
// scenario source so downstream consumers can tell them apart.
func executeRecordActivity(ctx context.Context, statsSvc stats.Service, step scenario.Step, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	if state.Athlete == nil {
		return nil, scenario.ErrAthleteNotInitialized
	}

	params, err := capabilities.ParseActivityParams(step.Parameters)
	if err != nil {
		return nil, err
	}

	eventType := domain.EventWorkoutLogged
	if params.EventType != "" {
		eventType = domain.EventType(params.EventType)
		if !domain.IsValidEventType(eventType) {
			return nil, scenario.NewParameterError(ParamEventType, fmt.Sprintf("unknown event type %q", params.EventType))
		}
	}

	var pillar *domain.Pillar
	if params.Pillar != "" {
		parsed, err := domain.ParsePillar(params.Pillar)
		if err != nil {
			return nil, scenario.NewParameterError(ParamPillar, err.Error())
		}
		pillar = &parsed
	}

	total := 0
	for i := 0; i < params.Count; i++ {
		if _, err := statsSvc.RecordActivity(ctx, state.Athlete.UserID, eventType, pillar, params.Points, params.Metadata, domain.SourceScenario); err != nil {
			return nil, fmt.Errorf("failed to record activity: %w", err)
		}
		total += params.Points
	}

	streak, err := statsSvc.GetUserCurrentStreak(ctx, state.Athlete.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read streak: %w", err)
	}

	result.AddOutput("events_recorded", params.Count)
	result.AddOutput("points_awarded", total)
	result.AddOutput("event_type", string(eventType))
	result.AddOutput("current_streak", streak)
	state.SetResult("current_streak", streak)
	return result, nil
}

// executeEvaluateAchievements runs the achievement evaluation for the
// active athlete and reports what newly unlocked.
func executeEvaluateAchievements(ctx context.Context, achievementSvc achievement.Service, state *scenario.ExecutionState, result *scenario.StepResult) (*scenario.StepResult, error) {
	if state.Athlete == nil {
		return nil, scenario.ErrAthleteNotInitialized
	}

	unlocks, err := achievementSvc.EvaluateUser(ctx, state.Athlete.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate achievements: %w", err)
	}

	ids := make([]string, len(unlocks))
	points := 0
	for i, u := range unlocks {
		ids[i] = u.AchievementID
		points += u.Points
	}
	joined := strings.Join(ids, ",")

	result.AddOutput("new_unlocks", len(unlocks))
	result.AddOutput("unlocked_ids", joined)
	result.AddOutput("unlock_points", points)
	state.SetResult("unlocked_ids", joined)
	return result, nil
}

func getStringParam(params map[string]interface{}, key, defaultVal string) string {
	if val, ok := params[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return defaultVal
}

func getIntParam(params map[string]interface{}, key string, defaultVal int) int {
	val, ok := params[key]
	if !ok {
		return defaultVal
	}
	switch n := val.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return defaultVal
	}
}
