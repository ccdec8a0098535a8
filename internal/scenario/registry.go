package scenario

import (
	"context"
	"sync"
)

// Provider is the contract a feature implements to participate in the
// QA harness. A provider owns its action vocabulary, ships pre-built
// scenarios, and executes individual steps against the real services.
type Provider interface {
	// Feature returns the feature name this provider handles
	Feature() string

	// Capabilities returns the QA powers this provider supports
	Capabilities() []CapabilityType

	// PrebuiltScenarios returns the scenarios this provider ships
	PrebuiltScenarios() []Scenario

	// ExecuteStep runs a single step against the real services
	ExecuteStep(ctx context.Context, step Step, state *ExecutionState) (*StepResult, error)

	// SupportsAction reports whether the provider handles the action
	SupportsAction(action ActionType) bool

	// GetCapabilityInfo returns capability metadata for API consumers
	GetCapabilityInfo() []CapabilityInfo
}

// Registry maps feature names to their scenario providers. Handlers
// read it concurrently while bootstrap registers providers, hence the
// RWMutex.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register installs a provider. A later registration for the same
// feature wins.
func (r *Registry) Register(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Feature()] = provider
}

// Get looks up the provider for a feature.
func (r *Registry) Get(feature string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[feature]
	return p, ok
}

// GetAll snapshots the registered providers.
func (r *Registry) GetAll() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		providers = append(providers, p)
	}
	return providers
}

// Features lists the registered feature names.
func (r *Registry) Features() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	features := make([]string, 0, len(r.providers))
	for f := range r.providers {
		features = append(features, f)
	}
	return features
}

// GetScenario finds a pre-built scenario by ID across all providers and
// returns it together with the provider that owns it
func (r *Registry) GetScenario(scenarioID string) (*Scenario, Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, provider := range r.providers {
		for _, s := range provider.PrebuiltScenarios() {
			if s.ID == scenarioID {
				return &s, provider, nil
			}
		}
	}

	return nil, nil, ErrScenarioNotFound
}

// GetAllScenarios concatenates every provider's pre-built scenarios.
func (r *Registry) GetAllScenarios() []Scenario {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenarios := make([]Scenario, 0)
	for _, provider := range r.providers {
		scenarios = append(scenarios, provider.PrebuiltScenarios()...)
	}
	return scenarios
}

// GetScenarioSummaries projects every scenario down to its listing view.
func (r *Registry) GetScenarioSummaries() []ScenarioSummary {
	scenarios := r.GetAllScenarios()
	summaries := make([]ScenarioSummary, len(scenarios))
	for i, s := range scenarios {
		summaries[i] = s.ToSummary()
	}
	return summaries
}

// GetAllCapabilities deduplicates capability metadata across providers.
func (r *Registry) GetAllCapabilities() []CapabilityInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	capabilities := make([]CapabilityInfo, 0)
	seen := make(map[CapabilityType]bool)

	for _, provider := range r.providers {
		for _, info := range provider.GetCapabilityInfo() {
			if !seen[info.Type] {
				capabilities = append(capabilities, info)
				seen[info.Type] = true
			}
		}
	}
	return capabilities
}

// HasCapability reports whether at least one provider supports it.
func (r *Registry) HasCapability(capability CapabilityType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, provider := range r.providers {
		for _, c := range provider.Capabilities() {
			if c == capability {
				return true
			}
		}
	}
	return false
}

// ProvidersWithCapability filters providers by a capability.
func (r *Registry) ProvidersWithCapability(capability CapabilityType) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0)
	for _, provider := range r.providers {
		for _, c := range provider.Capabilities() {
			if c == capability {
				providers = append(providers, provider)
				break
			}
		}
	}
	return providers
}
