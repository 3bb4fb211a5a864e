package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports the readiness of the service's collaborators.
type HealthChecker interface {
	// StoreConnected reports whether the run store is reachable.
	StoreConnected(ctx context.Context) bool
	// ProviderConfigured reports whether the LLM provider has the
	// credentials it needs, with an explanatory message when not.
	ProviderConfigured() (bool, string)
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status   string `json:"status"`
	Backend  string `json:"backend"`
	Database string `json:"database"`
	LLM      string `json:"llm"`
	LLMError string `json:"llmError,omitempty"`
}

// GetHealth returns the readiness of the database and the LLM
// provider (GET /health). It always returns 200; degraded
// collaborators show up in the body.
func (s *Server) GetHealth(c echo.Context) error {
	ctx := c.Request().Context()

	status := HealthStatus{
		Status:   "ok",
		Backend:  "running",
		Database: "disconnected",
		LLM:      "not_configured",
	}
	if s.Health.StoreConnected(ctx) {
		status.Database = "connected"
	}
	if configured, errMsg := s.Health.ProviderConfigured(); configured {
		status.LLM = "configured"
	} else {
		status.LLMError = errMsg
	}

	return c.JSON(http.StatusOK, status)
}
