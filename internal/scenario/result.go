package scenario

import (
	"time"
)

// ExecutionResult is the complete record of one scenario run
type ExecutionResult struct {
	ScenarioID   string                 `json:"scenario_id"`
	ScenarioName string                 `json:"scenario_name"`
	Success      bool                   `json:"success"`
	DurationMS   int64                  `json:"duration_ms"`
	StartedAt    time.Time              `json:"started_at"`
	CompletedAt  time.Time              `json:"completed_at"`
	Steps        []StepResult           `json:"steps"`
	Error        string                 `json:"error,omitempty"`
	Athlete      *SimulatedAthlete      `json:"athlete,omitempty"`
	Athletes     []*SimulatedAthlete    `json:"athletes,omitempty"`
	FinalState   map[string]interface{} `json:"final_state,omitempty"`
}

// StepResult is the record of one executed step
type StepResult struct {
	StepName   string                 `json:"step_name"`
	StepIndex  int                    `json:"step_index"`
	Action     ActionType             `json:"action"`
	Success    bool                   `json:"success"`
	DurationMS int64                  `json:"duration_ms"`
	Output     map[string]interface{} `json:"output,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Assertions []AssertionResult      `json:"assertions,omitempty"`
}

// AssertionResult is the outcome of one assertion
type AssertionResult struct {
	Type     AssertionType `json:"type"`
	Path     string        `json:"path"`
	Expected interface{}   `json:"expected,omitempty"`
	Actual   interface{}   `json:"actual,omitempty"`
	Passed   bool          `json:"passed"`
	Reason   string        `json:"reason,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// NewExecutionResult creates a result that is successful until a step
// or assertion proves otherwise
func NewExecutionResult(scenarioID, scenarioName string) *ExecutionResult {
	return &ExecutionResult{
		ScenarioID:   scenarioID,
		ScenarioName: scenarioName,
		Success:      true,
		StartedAt:    time.Now(),
		Steps:        make([]StepResult, 0),
		FinalState:   make(map[string]interface{}),
	}
}

// Complete stamps the completion time and total duration
func (r *ExecutionResult) Complete() {
	r.CompletedAt = time.Now()
	r.DurationMS = r.CompletedAt.Sub(r.StartedAt).Milliseconds()
}

// AddStepResult appends a step result and folds its outcome into the
// overall success flag
func (r *ExecutionResult) AddStepResult(step StepResult) {
	r.Steps = append(r.Steps, step)
	if !step.Success {
		r.Success = false
	}
}

// SetError marks the run as failed
func (r *ExecutionResult) SetError(err error) {
	r.Success = false
	r.Error = err.Error()
}

// GetStepByName finds a step result by step name
func (r *ExecutionResult) GetStepByName(name string) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].StepName == name {
			return &r.Steps[i]
		}
	}
	return nil
}

// TotalAssertions counts the assertions across all executed steps
func (r *ExecutionResult) TotalAssertions() int {
	total := 0
	for _, step := range r.Steps {
		total += len(step.Assertions)
	}
	return total
}

// PassedAssertions counts the assertions that passed
func (r *ExecutionResult) PassedAssertions() int {
	passed := 0
	for _, step := range r.Steps {
		for _, assertion := range step.Assertions {
			if assertion.Passed {
				passed++
			}
		}
	}
	return passed
}

// FailedAssertions counts the assertions that failed
func (r *ExecutionResult) FailedAssertions() int {
	return r.TotalAssertions() - r.PassedAssertions()
}

// NewStepResult creates a step result that is successful until an error
// or failed assertion is recorded
func NewStepResult(stepName string, stepIndex int, action ActionType) *StepResult {
	return &StepResult{
		StepName:   stepName,
		StepIndex:  stepIndex,
		Action:     action,
		Success:    true,
		Output:     make(map[string]interface{}),
		Assertions: make([]AssertionResult, 0),
	}
}

// SetDuration stamps the elapsed time since start
func (r *StepResult) SetDuration(start time.Time) {
	r.DurationMS = time.Since(start).Milliseconds()
}

// SetError marks the step as failed
func (r *StepResult) SetError(err error) {
	r.Success = false
	r.Error = err.Error()
}

// AddOutput records a key-value pair in the step output
func (r *StepResult) AddOutput(key string, value interface{}) {
	r.Output[key] = value
}

// AddAssertionResult appends an assertion outcome and folds it into the
// step success flag
func (r *StepResult) AddAssertionResult(assertion AssertionResult) {
	r.Assertions = append(r.Assertions, assertion)
	if !assertion.Passed {
		r.Success = false
	}
}

// ExecutionSummary is the condensed view of a run for listings
type ExecutionSummary struct {
	ScenarioID       string `json:"scenario_id"`
	ScenarioName     string `json:"scenario_name"`
	Success          bool   `json:"success"`
	DurationMS       int64  `json:"duration_ms"`
	TotalSteps       int    `json:"total_steps"`
	PassedSteps      int    `json:"passed_steps"`
	TotalAssertions  int    `json:"total_assertions"`
	PassedAssertions int    `json:"passed_assertions"`
}

// ToSummary condenses the result for listings
func (r *ExecutionResult) ToSummary() ExecutionSummary {
	passedSteps := 0
	for _, step := range r.Steps {
		if step.Success {
			passedSteps++
		}
	}

	return ExecutionSummary{
		ScenarioID:       r.ScenarioID,
		ScenarioName:     r.ScenarioName,
		Success:          r.Success,
		DurationMS:       r.DurationMS,
		TotalSteps:       len(r.Steps),
		PassedSteps:      passedSteps,
		TotalAssertions:  r.TotalAssertions(),
		PassedAssertions: r.PassedAssertions(),
	}
}
