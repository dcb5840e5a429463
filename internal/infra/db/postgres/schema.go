package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
  id BIGSERIAL PRIMARY KEY,
  organization TEXT NOT NULL,
  name TEXT NOT NULL UNIQUE
);`,
	`CREATE TABLE IF NOT EXISTS audit_runs (
  run_id TEXT PRIMARY KEY,
  project TEXT NOT NULL DEFAULT '',
  scope TEXT[] NOT NULL,
  status TEXT NOT NULL,
  start_time TIMESTAMPTZ NOT NULL,
  end_time TIMESTAMPTZ NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_audit_runs_start ON audit_runs (start_time DESC);`,
	`CREATE TABLE IF NOT EXISTS audit_findings (
  id BIGSERIAL PRIMARY KEY,
  run_id TEXT NOT NULL,
  question TEXT NOT NULL,
  answer TEXT NOT NULL,
  explanation TEXT NOT NULL,
  timestamp TIMESTAMPTZ NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_audit_findings_run ON audit_findings (run_id);`,
}

// Migrate creates the audit tables when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
