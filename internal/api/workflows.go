// Package api contains the HTTP handlers for the workflow service
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"workflow-auto/backend/internal/engine"
	"workflow-auto/backend/pkg/models"
)

// historyLimit is the number of runs returned by the history
// endpoint. It matches the store's retention cap.
const historyLimit = 5

// WorkflowService is the engine-facing collaborator the handlers
// delegate to.
type WorkflowService interface {
	SubmitRun(ctx context.Context, inputText string, steps []string) (*models.WorkflowRun, error)
	ListRecentRuns(ctx context.Context, limit int) ([]*models.WorkflowRun, error)
}

// Server holds the dependencies for the API server.
type Server struct {
	Workflows WorkflowService
	Health    HealthChecker
}

// NewServer creates a new Server.
func NewServer(workflows WorkflowService, health HealthChecker) *Server {
	return &Server{Workflows: workflows, Health: health}
}

// RegisterRoutes mounts the API routes on e.
func RegisterRoutes(e *echo.Echo, s *Server) {
	e.POST("/workflow/run", s.RunWorkflow)
	e.GET("/workflow/history", s.GetHistory)
	e.GET("/health", s.GetHealth)
}

type runRequest struct {
	InputText string   `json:"inputText"`
	Steps     []string `json:"steps"`
}

// RunWorkflow executes a workflow and returns the persisted run
// (POST /workflow/run)
func (s *Server) RunWorkflow(c echo.Context) error {
	ctx := c.Request().Context()

	var req runRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "invalid request body: " + err.Error(),
		})
	}

	run, err := s.Workflows.SubmitRun(ctx, req.InputText, req.Steps)
	if err != nil {
		var validationErr *engine.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error": validationErr.Reason,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":   "Internal server error",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"workflowRun": run,
	})
}

// GetHistory returns the most recent runs, most recent first
// (GET /workflow/history)
func (s *Server) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()

	runs, err := s.Workflows.ListRecentRuns(ctx, historyLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":   "Internal server error",
			"message": err.Error(),
		})
	}
	if runs == nil {
		runs = []*models.WorkflowRun{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"runs":    runs,
	})
}
