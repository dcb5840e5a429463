package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  organization VARCHAR(255) NOT NULL,
  name VARCHAR(255) NOT NULL,
  UNIQUE KEY uq_projects_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	`CREATE TABLE IF NOT EXISTS audit_runs (
  run_id VARCHAR(255) PRIMARY KEY,
  project VARCHAR(255) NOT NULL DEFAULT '',
  scope VARCHAR(512) NOT NULL,
  status VARCHAR(32) NOT NULL,
  start_time DATETIME(6) NOT NULL,
  end_time DATETIME(6) NULL,
  KEY idx_audit_runs_start (start_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	`CREATE TABLE IF NOT EXISTS audit_findings (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  run_id VARCHAR(255) NOT NULL,
  question TEXT NOT NULL,
  answer VARCHAR(16) NOT NULL,
  explanation TEXT NOT NULL,
  timestamp DATETIME(6) NOT NULL,
  KEY idx_audit_findings_run (run_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
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
