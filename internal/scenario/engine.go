package scenario

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Engine executes scenarios through registered providers. It owns the
// step loop and the assertion evaluation; everything domain-specific
// happens inside the provider.
type Engine struct {
	registry *Registry
}

// NewEngine creates a scenario execution engine
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// GetRegistry returns the engine's provider registry
func (e *Engine) GetRegistry() *Registry {
	return e.registry
}

// Execute runs a pre-built scenario by ID
func (e *Engine) Execute(ctx context.Context, scenarioID string, params map[string]interface{}) (*ExecutionResult, error) {
	s, provider, err := e.registry.GetScenario(scenarioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}

	return e.ExecuteScenario(ctx, *s, provider, params)
}

// ExecuteCustom runs a caller-supplied scenario definition against the
// provider registered for its feature
func (e *Engine) ExecuteCustom(ctx context.Context, s Scenario, params map[string]interface{}) (*ExecutionResult, error) {
	provider, ok := e.registry.Get(s.Feature)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, s.Feature)
	}

	return e.ExecuteScenario(ctx, s, provider, params)
}

// ExecuteScenario runs a scenario with the given provider. Execution
// stops at the first failed step; everything executed so far stays in
// the result so a failure can be diagnosed from the response alone.
func (e *Engine) ExecuteScenario(ctx context.Context, s Scenario, provider Provider, params map[string]interface{}) (*ExecutionResult, error) {
	result := NewExecutionResult(s.ID, s.Name)
	state := NewExecutionState()

	// Caller parameters seed the state so steps and assertions can
	// reference them through "state." paths.
	for k, v := range params {
		state.SetResult(k, v)
	}

	for i, step := range s.Steps {
		select {
		case <-ctx.Done():
			result.SetError(ctx.Err())
			result.Complete()
			return result, ctx.Err()
		default:
		}

		stepResult := e.executeStep(ctx, step, i, provider, state)
		result.AddStepResult(*stepResult)

		if !stepResult.Success {
			break
		}
	}

	result.FinalState = state.Results
	result.Athlete = state.Athlete
	result.Athletes = state.Athletes
	result.Complete()

	return result, nil
}

// executeStep runs one step and evaluates its assertions
func (e *Engine) executeStep(ctx context.Context, step Step, index int, provider Provider, state *ExecutionState) *StepResult {
	stepStart := time.Now()
	stepResult := NewStepResult(step.Name, index, step.Action)

	if !provider.SupportsAction(step.Action) {
		stepResult.SetError(fmt.Errorf("%w: %s", ErrInvalidAction, step.Action))
		stepResult.SetDuration(stepStart)
		return stepResult
	}

	providerResult, err := provider.ExecuteStep(ctx, step, state)
	if err != nil {
		stepResult.SetError(err)
		stepResult.SetDuration(stepStart)
		return stepResult
	}

	if providerResult != nil {
		for k, v := range providerResult.Output {
			stepResult.AddOutput(k, v)
		}
	}

	for _, assertion := range step.Assertions {
		stepResult.AddAssertionResult(e.checkAssertion(assertion, stepResult.Output, state))
	}

	stepResult.SetDuration(stepStart)
	return stepResult
}

// checkAssertion evaluates one assertion against the step output and state
func (e *Engine) checkAssertion(assertion Assertion, output map[string]interface{}, state *ExecutionState) AssertionResult {
	result := AssertionResult{
		Type:     assertion.Type,
		Path:     assertion.Path,
		Expected: assertion.Value,
		Reason:   assertion.Reason,
		Passed:   true,
	}

	actual, found := e.getValueByPath(assertion.Path, output, state)
	result.Actual = actual

	if !found {
		// A missing path satisfies only the empty assertion.
		if assertion.Type == AssertEmpty {
			return result
		}
		result.Passed = false
		result.Error = fmt.Sprintf("path %q not found", assertion.Path)
		return result
	}

	switch assertion.Type {
	case AssertEquals:
		result.Passed = e.valuesEqual(actual, assertion.Value)
		if !result.Passed {
			result.Error = fmt.Sprintf("expected %v, got %v", assertion.Value, actual)
		}

	case AssertGreaterThan:
		passed, err := e.compareNumeric(actual, assertion.Value, ">")
		result.Passed = passed
		if err != nil {
			result.Error = err.Error()
		}

	case AssertLessThan:
		passed, err := e.compareNumeric(actual, assertion.Value, "<")
		result.Passed = passed
		if err != nil {
			result.Error = err.Error()
		}

	case AssertBetween:
		passedMin, errMin := e.compareNumeric(actual, assertion.Min, ">=")
		passedMax, errMax := e.compareNumeric(actual, assertion.Max, "<=")
		result.Passed = passedMin && passedMax
		if errMin != nil || errMax != nil {
			result.Error = fmt.Sprintf("between comparison failed: min=%v, max=%v", errMin, errMax)
		}
		result.Expected = fmt.Sprintf("between %v and %v", assertion.Min, assertion.Max)

	case AssertContains:
		str, ok := actual.(string)
		expected, expectedOK := assertion.Value.(string)
		if !ok || !expectedOK {
			result.Passed = false
			result.Error = "contains assertion requires string values"
		} else if result.Passed = strings.Contains(str, expected); !result.Passed {
			result.Error = fmt.Sprintf("%q does not contain %q", str, expected)
		}

	case AssertNotEmpty:
		result.Passed = !e.isEmpty(actual)
		if !result.Passed {
			result.Error = "value is empty"
		}

	case AssertEmpty:
		result.Passed = e.isEmpty(actual)
		if !result.Passed {
			result.Error = fmt.Sprintf("expected empty, got %v", actual)
		}

	case AssertTrue:
		b, ok := actual.(bool)
		result.Passed = ok && b
		if !result.Passed {
			result.Error = fmt.Sprintf("expected true, got %v", actual)
		}

	case AssertFalse:
		b, ok := actual.(bool)
		result.Passed = ok && !b
		if !result.Passed {
			result.Error = fmt.Sprintf("expected false, got %v", actual)
		}

	case AssertErrorContains:
		str, ok := actual.(string)
		expected, expectedOK := assertion.Value.(string)
		if !ok || !expectedOK {
			result.Passed = false
			result.Error = "error_contains assertion requires string values"
		} else if result.Passed = strings.Contains(strings.ToLower(str), strings.ToLower(expected)); !result.Passed {
			result.Error = fmt.Sprintf("error %q does not contain %q", str, expected)
		}

	default:
		result.Passed = false
		result.Error = fmt.Sprintf("unknown assertion type: %s", assertion.Type)
	}

	return result
}

// getValueByPath resolves a dotted path against the step output, the
// accumulated state, or the active athlete. A bare path without a root
// prefix tries output first, then state.
func (e *Engine) getValueByPath(path string, output map[string]interface{}, state *ExecutionState) (interface{}, bool) {
	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, false
	}

	var current interface{}
	switch parts[0] {
	case "output":
		current = output
		parts = parts[1:]
	case "state":
		current = state.Results
		parts = parts[1:]
	case "athlete":
		if state.Athlete == nil {
			return nil, false
		}
		current = map[string]interface{}{
			"user_id":    state.Athlete.UserID,
			"username":   state.Athlete.Username,
			"discord_id": state.Athlete.DiscordID,
		}
		parts = parts[1:]
	default:
		if v, ok := output[parts[0]]; ok {
			current = v
			parts = parts[1:]
		} else if v, ok := state.Results[parts[0]]; ok {
			current = v
			parts = parts[1:]
		} else {
			return nil, false
		}
	}

	for _, part := range parts {
		switch v := current.(type) {
		case map[string]interface{}:
			var ok bool
			current, ok = v[part]
			if !ok {
				return nil, false
			}
		case map[string]int:
			val, ok := v[part]
			if !ok {
				return nil, false
			}
			current = val
		default:
			return nil, false
		}
	}

	return current, true
}

// valuesEqual compares two values, treating all numeric types as one
func (e *Engine) valuesEqual(a, b interface{}) bool {
	aNum, aIsNum := e.toFloat64(a)
	bNum, bIsNum := e.toFloat64(b)
	if aIsNum && bIsNum {
		return aNum == bNum
	}
	return reflect.DeepEqual(a, b)
}

// compareNumeric compares two values that must both be numeric
func (e *Engine) compareNumeric(actual, expected interface{}, op string) (bool, error) {
	a, aOK := e.toFloat64(actual)
	b, bOK := e.toFloat64(expected)

	if !aOK || !bOK {
		return false, fmt.Errorf("cannot compare non-numeric values: %v, %v", actual, expected)
	}

	switch op {
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	default:
		return false, fmt.Errorf("unknown comparison operator: %s", op)
	}
}

// toFloat64 widens any numeric value to float64. JSON decoding hands the
// engine float64 while providers output Go ints; comparisons must not
// care which side came from the wire.
func (e *Engine) toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// isEmpty reports whether a value counts as empty for assertions
func (e *Engine) isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}

	switch val := v.(type) {
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	case map[string]int:
		return len(val) == 0
	default:
		return false
	}
}
