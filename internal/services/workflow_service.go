package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"workflow-auto/backend/internal/engine"
	"workflow-auto/backend/internal/repository"
	"workflow-auto/backend/pkg/models"
)

// WorkflowService is a service for executing and recording workflow
// runs.
type WorkflowService struct {
	engine *engine.Engine
	store  repository.RunStore
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(eng *engine.Engine, store repository.RunStore) *WorkflowService {
	return &WorkflowService{
		engine: eng,
		store:  store,
	}
}

// SubmitRun executes the requested workflow, persists the resulting
// run, and enforces the retention cap. A failing step produces a
// partial run, not an error; only validation failures and store
// outages surface as errors.
func (s *WorkflowService) SubmitRun(ctx context.Context, inputText string, steps []string) (*models.WorkflowRun, error) {
	outputs, err := s.engine.Execute(ctx, inputText, steps)
	if err != nil {
		return nil, err
	}

	run := &models.WorkflowRun{
		ID:        uuid.New().String(),
		InputText: inputText,
		Steps:     steps,
		Outputs:   outputs,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Save(ctx, run); err != nil {
		return nil, err
	}
	if err := s.store.TrimHistory(ctx, repository.RetentionCap); err != nil {
		return nil, err
	}

	return run, nil
}

// ListRecentRuns returns up to limit runs, most recent first.
func (s *WorkflowService) ListRecentRuns(ctx context.Context, limit int) ([]*models.WorkflowRun, error) {
	return s.store.ListRecent(ctx, limit)
}
