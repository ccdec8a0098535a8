package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babygoats/BabyGoats_Go/internal/scenario"
)

// stubScenarioProvider is a minimal in-memory provider so handler tests
// can drive the engine without a database
type stubScenarioProvider struct {
	feature   string
	scenarios []scenario.Scenario
}

func (p *stubScenarioProvider) Feature() string { return p.feature }

func (p *stubScenarioProvider) Capabilities() []scenario.CapabilityType {
	return []scenario.CapabilityType{scenario.CapabilityEventInjector}
}

func (p *stubScenarioProvider) GetCapabilityInfo() []scenario.CapabilityInfo {
	return []scenario.CapabilityInfo{
		{
			Type:        scenario.CapabilityEventInjector,
			Name:        "Activity Injection",
			Description: "Stub capability",
		},
	}
}

func (p *stubScenarioProvider) SupportsAction(action scenario.ActionType) bool {
	return action == scenario.ActionCheckStreak
}

func (p *stubScenarioProvider) PrebuiltScenarios() []scenario.Scenario {
	return p.scenarios
}

func (p *stubScenarioProvider) ExecuteStep(ctx context.Context, step scenario.Step, state *scenario.ExecutionState) (*scenario.StepResult, error) {
	result := scenario.NewStepResult(step.Name, 0, step.Action)
	result.AddOutput("current_streak", 1)
	return result, nil
}

func newScenarioTestEngine() *scenario.Engine {
	registry := scenario.NewRegistry()
	registry.Register(&stubScenarioProvider{
		feature: "streak",
		scenarios: []scenario.Scenario{
			{
				ID:          "streak_demo",
				Name:        "Streak Demo",
				Description: "Checks a fresh streak reads back as one",
				Feature:     "streak",
				Steps: []scenario.Step{
					{
						Name:       "check",
						Action:     scenario.ActionCheckStreak,
						Parameters: map[string]interface{}{},
						Assertions: []scenario.Assertion{
							{Type: scenario.AssertEquals, Path: "output.current_streak", Value: 1},
						},
					},
				},
			},
		},
	})
	return scenario.NewEngine(registry)
}

func TestHandleGetCapabilities(t *testing.T) {
	h := NewScenarioHandler(newScenarioTestEngine())

	req := httptest.NewRequest("GET", "/api/v1/admin/simulate/capabilities", nil)
	w := httptest.NewRecorder()

	h.HandleGetCapabilities(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"event_injector"`)
	assert.Contains(t, w.Body.String(), `"features":["streak"]`)
}

func TestHandleGetScenarios(t *testing.T) {
	h := NewScenarioHandler(newScenarioTestEngine())

	req := httptest.NewRequest("GET", "/api/v1/admin/simulate/scenarios", nil)
	w := httptest.NewRecorder()

	h.HandleGetScenarios(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"streak_demo"`)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestHandleGetScenario(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Found",
			target:         "/api/v1/admin/simulate/scenario?id=streak_demo",
			expectedStatus: http.StatusOK,
			expectedBody:   `"Streak Demo"`,
		},
		{
			name:           "Missing ID Param",
			target:         "/api/v1/admin/simulate/scenario",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing id query parameter",
		},
		{
			name:           "Not Found",
			target:         "/api/v1/admin/simulate/scenario?id=nope",
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgScenarioNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewScenarioHandler(newScenarioTestEngine())

			req := httptest.NewRequest("GET", tt.target, nil)
			w := httptest.NewRecorder()

			h.HandleGetScenario(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleRunScenario(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		h := NewScenarioHandler(newScenarioTestEngine())

		body := []byte(`{"scenario_id":"streak_demo"}`)
		req := httptest.NewRequest("POST", "/api/v1/admin/simulate/run", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleRunScenario(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), `"passed":true`)
	})

	t.Run("Missing Scenario ID", func(t *testing.T) {
		h := NewScenarioHandler(newScenarioTestEngine())

		req := httptest.NewRequest("POST", "/api/v1/admin/simulate/run", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()

		h.HandleRunScenario(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown Scenario", func(t *testing.T) {
		h := NewScenarioHandler(newScenarioTestEngine())

		body := []byte(`{"scenario_id":"nope"}`)
		req := httptest.NewRequest("POST", "/api/v1/admin/simulate/run", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleRunScenario(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgScenarioNotFound)
	})
}

func TestHandleRunCustomScenario(t *testing.T) {
	InitValidator()

	customBody := func(id, feature string) []byte {
		return []byte(`{"scenario":{"id":"` + id + `","name":"Custom","feature":"` + feature + `","steps":[{"name":"check","action":"check_streak","parameters":{}}]}}`)
	}

	t.Run("Success", func(t *testing.T) {
		h := NewScenarioHandler(newScenarioTestEngine())

		req := httptest.NewRequest("POST", "/api/v1/admin/simulate/run-custom", bytes.NewBuffer(customBody("custom_1", "streak")))
		w := httptest.NewRecorder()

		h.HandleRunCustomScenario(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), `"custom_1"`)
	})

	t.Run("Missing Scenario ID", func(t *testing.T) {
		h := NewScenarioHandler(newScenarioTestEngine())

		req := httptest.NewRequest("POST", "/api/v1/admin/simulate/run-custom", bytes.NewBuffer(customBody("", "streak")))
		w := httptest.NewRecorder()

		h.HandleRunCustomScenario(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Scenario ID is required")
	})

	t.Run("Missing Feature", func(t *testing.T) {
		h := NewScenarioHandler(newScenarioTestEngine())

		req := httptest.NewRequest("POST", "/api/v1/admin/simulate/run-custom", bytes.NewBuffer(customBody("custom_1", "")))
		w := httptest.NewRecorder()

		h.HandleRunCustomScenario(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Scenario feature is required")
	})

	t.Run("Unknown Feature", func(t *testing.T) {
		h := NewScenarioHandler(newScenarioTestEngine())

		req := httptest.NewRequest("POST", "/api/v1/admin/simulate/run-custom", bytes.NewBuffer(customBody("custom_1", "quidditch")))
		w := httptest.NewRecorder()

		h.HandleRunCustomScenario(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnknownFeature)
	})
}
