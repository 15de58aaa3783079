package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema creates the documents table and its collection index if missing.
// Safe to run on every startup.
func EnsureSchema(ctx context.Context, config *RepositoryConfig) error {
	table := config.Tables.Documents
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				collection TEXT NOT NULL,
				id TEXT NOT NULL,
				data JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (collection, id)
			)
		`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_collection_created_idx ON %s (collection, created_at)`, table, table),
	}

	exec := GetExecutor(ctx, config.Pool)
	for _, stmt := range statements {
		if _, err := exec.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	if config.Logger != nil {
		config.Logger.Debug("documents schema ready", "table", table)
	}
	return nil
}
