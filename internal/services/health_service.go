package services

import (
	"context"

	"workflow-auto/backend/internal/repository"
)

// ProviderHealth is an interface for the LLM provider's readiness
// probe.
type ProviderHealth interface {
	// Health reports whether the provider is configured, with an
	// explanatory message when not.
	Health() (bool, string)
}

// HealthService reports the readiness of the service's collaborators.
type HealthService struct {
	store    repository.RunStore
	provider ProviderHealth
}

// NewHealthService creates a new HealthService.
func NewHealthService(store repository.RunStore, provider ProviderHealth) *HealthService {
	return &HealthService{store: store, provider: provider}
}

// StoreConnected reports whether the run store answers a ping.
func (s *HealthService) StoreConnected(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}

// ProviderConfigured reports whether the LLM provider has credentials.
// This is a cheap readiness probe, not a live call.
func (s *HealthService) ProviderConfigured() (bool, string) {
	return s.provider.Health()
}
