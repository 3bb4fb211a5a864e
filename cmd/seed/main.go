// Seed creates the workflow_runs schema and inserts a sample run for
// local development.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"workflow-auto/backend/internal/config"
	"workflow-auto/backend/internal/logging"
	"workflow-auto/backend/internal/repository"
	"workflow-auto/backend/pkg/models"
)

const schema = `CREATE TABLE IF NOT EXISTS workflow_runs (
	id UUID PRIMARY KEY,
	input_text TEXT NOT NULL,
	steps TEXT[] NOT NULL,
	outputs JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS workflow_runs_created_at_idx ON workflow_runs (created_at DESC);`

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "workflow-seed",
		Short: "Create the workflow_runs schema and seed a sample run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "path to config file")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run(configFile string) error {
	ctx := context.Background()
	logger := logging.NewLogger()

	// Load config
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Connect to DB
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer pool.Close()

	// 1. Ensure schema exists
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Info("Schema ready")

	store := repository.NewPostgresRunStore(pool)

	// 2. Skip seeding if history already has runs
	existing, err := store.ListRecent(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to check existing runs: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Runs already present, skipping sample run")
		return nil
	}

	// 3. Insert a sample run
	sample := &models.WorkflowRun{
		ID:        uuid.New().String(),
		InputText: "  The   quick brown fox jumps over the lazy dog.  ",
		Steps:     []string{"clean_text", "summarize"},
		Outputs: []models.StepOutput{
			{Step: "clean_text", OutputText: "The quick brown fox jumps over the lazy dog."},
			{Step: "summarize", OutputText: "A fox jumps over a dog."},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Save(ctx, sample); err != nil {
		return fmt.Errorf("failed to seed sample run: %w", err)
	}

	logger.Info("Seeded sample run %s", sample.ID)
	return nil
}
