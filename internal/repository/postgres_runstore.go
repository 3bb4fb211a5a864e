package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"workflow-auto/backend/pkg/models"
)

// PostgresRunStore is a PostgreSQL implementation of the RunStore
// interface.
type PostgresRunStore struct {
	db *pgxpool.Pool
}

// NewPostgresRunStore creates a new PostgresRunStore.
func NewPostgresRunStore(db *pgxpool.Pool) *PostgresRunStore {
	return &PostgresRunStore{db: db}
}

// Save persists a completed run.
func (s *PostgresRunStore) Save(ctx context.Context, run *models.WorkflowRun) error {
	outputs, err := json.Marshal(run.Outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}
	_, err = s.db.Exec(ctx,
		"INSERT INTO workflow_runs (id, input_text, steps, outputs, created_at) VALUES ($1, $2, $3, $4, $5)",
		run.ID, run.InputText, run.Steps, outputs, run.CreatedAt)
	return err
}

// ListRecent returns up to limit runs, most recent first.
func (s *PostgresRunStore) ListRecent(ctx context.Context, limit int) ([]*models.WorkflowRun, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, input_text, steps, outputs, created_at FROM workflow_runs ORDER BY created_at DESC, id DESC LIMIT $1",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.WorkflowRun
	for rows.Next() {
		var run models.WorkflowRun
		var outputs []byte
		if err := rows.Scan(&run.ID, &run.InputText, &run.Steps, &outputs, &run.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(outputs, &run.Outputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outputs: %w", err)
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// TrimHistory deletes all but the keep most recent runs. A single
// conditional DELETE keeps the eviction atomic under concurrent runs;
// id breaks ties between equal timestamps.
func (s *PostgresRunStore) TrimHistory(ctx context.Context, keep int) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM workflow_runs WHERE id IN (SELECT id FROM workflow_runs ORDER BY created_at DESC, id DESC OFFSET $1)",
		keep)
	return err
}

// Ping reports whether the store is reachable.
func (s *PostgresRunStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
