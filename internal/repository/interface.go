package repository

import (
	"context"

	"workflow-auto/backend/pkg/models"
)

// RetentionCap is the maximum number of historical runs kept; oldest
// excess runs are evicted.
const RetentionCap = 5

// RunStore is an interface for persisting and listing workflow runs.
type RunStore interface {
	// Save persists a completed run. Runs are immutable after creation.
	Save(ctx context.Context, run *models.WorkflowRun) error
	// ListRecent returns up to limit runs ordered by creation time descending.
	ListRecent(ctx context.Context, limit int) ([]*models.WorkflowRun, error)
	// TrimHistory deletes all but the keep most recent runs.
	TrimHistory(ctx context.Context, keep int) error
	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
