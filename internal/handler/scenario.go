package handler

import (
	"errors"
	"net/http"

	"github.com/babygoats/BabyGoats_Go/internal/logger"
	"github.com/babygoats/BabyGoats_Go/internal/scenario"
)

// ScenarioHandler exposes the QA scenario engine through the admin API
type ScenarioHandler struct {
	engine *scenario.Engine
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(engine *scenario.Engine) *ScenarioHandler {
	return &ScenarioHandler{engine: engine}
}

// CapabilitiesResponse lists the simulation powers of all registered providers
type CapabilitiesResponse struct {
	Capabilities []scenario.CapabilityInfo `json:"capabilities"`
	Features     []string                  `json:"features"`
}

// ScenariosResponse lists the available pre-built scenarios
type ScenariosResponse struct {
	Scenarios []scenario.ScenarioSummary `json:"scenarios"`
	Total     int                        `json:"total"`
}

// RunScenarioRequest selects a pre-built scenario to run
type RunScenarioRequest struct {
	ScenarioID string                 `json:"scenario_id" validate:"required"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// RunCustomScenarioRequest carries a caller-defined scenario
type RunCustomScenarioRequest struct {
	Scenario   scenario.Scenario      `json:"scenario"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// HandleGetCapabilities lists simulation capabilities
// GET /api/v1/admin/simulate/capabilities
// @Summary List simulation capabilities
// @Description Returns the QA powers (time warp, event injection, multi-athlete) of every registered scenario provider
// @Tags admin
// @Produce json
// @Success 200 {object} CapabilitiesResponse
// @Router /admin/simulate/capabilities [get]
// @Security ApiKeyAuth
func (h *ScenarioHandler) HandleGetCapabilities(w http.ResponseWriter, r *http.Request) {
	registry := h.engine.GetRegistry()

	respondJSON(w, http.StatusOK, CapabilitiesResponse{
		Capabilities: registry.GetAllCapabilities(),
		Features:     registry.Features(),
	})
}

// HandleGetScenarios lists the pre-built scenarios
// GET /api/v1/admin/simulate/scenarios
// @Summary List pre-built scenarios
// @Tags admin
// @Produce json
// @Success 200 {object} ScenariosResponse
// @Router /admin/simulate/scenarios [get]
// @Security ApiKeyAuth
func (h *ScenarioHandler) HandleGetScenarios(w http.ResponseWriter, r *http.Request) {
	summaries := h.engine.GetRegistry().GetScenarioSummaries()

	respondJSON(w, http.StatusOK, ScenariosResponse{
		Scenarios: summaries,
		Total:     len(summaries),
	})
}

// HandleGetScenario returns one scenario's full definition
// GET /api/v1/admin/simulate/scenario?id=X
// @Summary Get a scenario definition
// @Tags admin
// @Produce json
// @Param id query string true "Scenario ID"
// @Success 200 {object} scenario.Scenario
// @Failure 404 {object} ErrorResponse
// @Router /admin/simulate/scenario [get]
// @Security ApiKeyAuth
func (h *ScenarioHandler) HandleGetScenario(w http.ResponseWriter, r *http.Request) {
	scenarioID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	s, _, err := h.engine.GetRegistry().GetScenario(scenarioID)
	if err != nil {
		respondError(w, http.StatusNotFound, ErrMsgScenarioNotFound)
		return
	}

	respondJSON(w, http.StatusOK, s)
}

// HandleRunScenario executes a pre-built scenario
// POST /api/v1/admin/simulate/run
// @Summary Run a pre-built scenario
// @Description Executes the scenario's steps through the real services and returns every step result and assertion outcome
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RunScenarioRequest true "Scenario selection"
// @Success 200 {object} scenario.ExecutionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/simulate/run [post]
// @Security ApiKeyAuth
func (h *ScenarioHandler) HandleRunScenario(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RunScenarioRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Run scenario"); err != nil {
		return
	}

	result, err := h.engine.Execute(r.Context(), req.ScenarioID, req.Parameters)
	if err != nil {
		if errors.Is(err, scenario.ErrScenarioNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgScenarioNotFound)
			return
		}
		log.Error("Scenario run failed", "scenario_id", req.ScenarioID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgRunScenarioFailed)
		return
	}

	log.Info("Scenario run completed",
		"scenario_id", req.ScenarioID,
		"success", result.Success,
		"steps", len(result.Steps),
		"duration_ms", result.DurationMS)

	respondJSON(w, http.StatusOK, result)
}

// HandleRunCustomScenario executes a caller-defined scenario
// POST /api/v1/admin/simulate/run-custom
// @Summary Run a custom scenario
// @Description Executes a caller-supplied scenario definition against the provider registered for its feature
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RunCustomScenarioRequest true "Scenario definition"
// @Success 200 {object} scenario.ExecutionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/simulate/run-custom [post]
// @Security ApiKeyAuth
func (h *ScenarioHandler) HandleRunCustomScenario(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RunCustomScenarioRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Run custom scenario"); err != nil {
		return
	}

	if req.Scenario.ID == "" {
		respondError(w, http.StatusBadRequest, "Scenario ID is required")
		return
	}
	if req.Scenario.Feature == "" {
		respondError(w, http.StatusBadRequest, "Scenario feature is required")
		return
	}

	result, err := h.engine.ExecuteCustom(r.Context(), req.Scenario, req.Parameters)
	if err != nil {
		if errors.Is(err, scenario.ErrProviderNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgUnknownFeature)
			return
		}
		log.Error("Custom scenario run failed", "scenario_id", req.Scenario.ID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgRunScenarioFailed)
		return
	}

	log.Info("Custom scenario run completed",
		"scenario_id", req.Scenario.ID,
		"feature", req.Scenario.Feature,
		"success", result.Success,
		"steps", len(result.Steps))

	respondJSON(w, http.StatusOK, result)
}
