package scenario

import (
	"fmt"
)

// CapabilityType identifies a QA power a provider brings to scenarios
type CapabilityType string

const (
	// CapabilityTimeWarp shifts persisted history into the past so
	// day-based logic runs without waiting real days
	CapabilityTimeWarp CapabilityType = "time_warp"
	// CapabilityEventInjector records activity events without a real
	// athlete action behind them
	CapabilityEventInjector CapabilityType = "event_injector"
	// CapabilityMultiUser runs several simulated athletes in one scenario
	CapabilityMultiUser CapabilityType = "multi_user"
)

// ActionType identifies what a scenario step does
type ActionType string

const (
	// Common actions
	ActionSetState ActionType = "set_state"
	ActionTimeWarp ActionType = "time_warp"
	ActionAssert   ActionType = "assert"

	// Activity and progression actions
	ActionRecordActivity       ActionType = "record_activity"
	ActionEvaluateAchievements ActionType = "evaluate_achievements"
	ActionCheckLevels          ActionType = "check_levels"
	ActionCheckLeaderboard     ActionType = "check_leaderboard"

	// Streak actions
	ActionCheckStreak  ActionType = "check_streak"
	ActionSweepStreaks ActionType = "sweep_streaks"

	// Multi-athlete actions
	ActionSwitchAthlete ActionType = "switch_athlete"
)

// AssertionType identifies how a step outcome is checked
type AssertionType string

const (
	AssertEquals        AssertionType = "equals"
	AssertGreaterThan   AssertionType = "greater_than"
	AssertLessThan      AssertionType = "less_than"
	AssertContains      AssertionType = "contains"
	AssertNotEmpty      AssertionType = "not_empty"
	AssertEmpty         AssertionType = "empty"
	AssertTrue          AssertionType = "true"
	AssertFalse         AssertionType = "false"
	AssertBetween       AssertionType = "between"
	AssertErrorContains AssertionType = "error_contains"
)

// Scenario is a complete executable QA scenario
type Scenario struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Feature      string           `json:"feature"`
	Capabilities []CapabilityType `json:"capabilities"`
	Steps        []Step           `json:"steps"`
}

// Step is a single action within a scenario
type Step struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Action      ActionType             `json:"action"`
	Parameters  map[string]interface{} `json:"parameters"`
	Assertions  []Assertion            `json:"assertions"`
}

// Assertion is an expected outcome attached to a step. Path addresses a
// value in the step output, accumulated state, or active athlete, using
// dotted notation such as "output.current_streak" or "athlete.username".
type Assertion struct {
	Type   AssertionType `json:"type"`
	Path   string        `json:"path"`
	Value  interface{}   `json:"value,omitempty"`
	Min    interface{}   `json:"min,omitempty"`
	Max    interface{}   `json:"max,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// SimulatedAthlete is an athlete account a scenario drives. It is a real
// row in the users table; only the usage is simulated.
type SimulatedAthlete struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	DiscordID string `json:"discord_id,omitempty"`
}

// ExecutionState carries the mutable context of one scenario run. Steps
// read and write it through the provider; assertions read it through
// "state." and "athlete." paths.
type ExecutionState struct {
	Clock    Clock
	Athlete  *SimulatedAthlete
	Athletes []*SimulatedAthlete
	Results  map[string]interface{}
	Errors   []error
}

// NewExecutionState creates an empty state on the real clock
func NewExecutionState() *ExecutionState {
	return &ExecutionState{
		Clock:   NewRealClock(),
		Results: make(map[string]interface{}),
		Errors:  make([]error, 0),
	}
}

// SetResult stores a value under the given key
func (s *ExecutionState) SetResult(key string, value interface{}) {
	s.Results[key] = value
}

// GetResult retrieves a stored value by key
func (s *ExecutionState) GetResult(key string) (interface{}, bool) {
	v, ok := s.Results[key]
	return v, ok
}

// AddAthlete appends an athlete to the roster, makes it the active one,
// and returns its roster index
func (s *ExecutionState) AddAthlete(a *SimulatedAthlete) int {
	s.Athletes = append(s.Athletes, a)
	s.Athlete = a
	return len(s.Athletes) - 1
}

// SwitchAthlete makes the athlete at the given roster index active
func (s *ExecutionState) SwitchAthlete(index int) (*SimulatedAthlete, error) {
	if index < 0 || index >= len(s.Athletes) {
		return nil, fmt.Errorf("athlete index %d out of range, roster has %d", index, len(s.Athletes))
	}
	s.Athlete = s.Athletes[index]
	return s.Athlete, nil
}

// AddError appends an error to the state
func (s *ExecutionState) AddError(err error) {
	s.Errors = append(s.Errors, err)
}

// HasErrors reports whether any step recorded an error
func (s *ExecutionState) HasErrors() bool {
	return len(s.Errors) > 0
}

// CapabilityInfo describes a capability for API consumers
type CapabilityInfo struct {
	Type        CapabilityType `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Actions     []ActionInfo   `json:"actions"`
}

// ActionInfo describes an action a capability offers
type ActionInfo struct {
	Action      ActionType             `json:"action"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  []ParameterInfo        `json:"parameters"`
	Example     map[string]interface{} `json:"example,omitempty"`
}

// ParameterInfo describes one parameter of an action
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// ScenarioSummary is the listing view of a scenario
type ScenarioSummary struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Feature      string           `json:"feature"`
	Capabilities []CapabilityType `json:"capabilities"`
	StepCount    int              `json:"step_count"`
}

// ToSummary converts a Scenario to its listing view
func (s *Scenario) ToSummary() ScenarioSummary {
	return ScenarioSummary{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		Feature:      s.Feature,
		Capabilities: s.Capabilities,
		StepCount:    len(s.Steps),
	}
}
