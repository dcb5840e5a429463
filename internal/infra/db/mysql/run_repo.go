package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) StartRun(ctx context.Context, run *audit.Run) error {
	const q = `
INSERT INTO audit_runs (run_id, project, scope, status, start_time)
VALUES (?,?,?,?,?);`
	start := run.StartTime
	if start.IsZero() {
		start = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q, run.ID, run.Project, joinScope(run.Scope), run.Status, start)
	if isDuplicate(err) {
		return audit.ErrRunExists
	}
	return err
}

func (r *RunRepository) GetRun(ctx context.Context, id string) (*audit.Run, error) {
	const q = `
SELECT run_id, project, scope, status, start_time, end_time
FROM audit_runs
WHERE run_id=? LIMIT 1;`
	var (
		run   audit.Run
		scope string
		end   sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&run.ID, &run.Project, &scope, &run.Status, &run.StartTime, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, audit.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	run.Scope = splitScope(scope)
	if end.Valid {
		t := end.Time
		run.EndTime = &t
	}
	return &run, nil
}

// CompleteRun hanya transisi in_progress -> completed
func (r *RunRepository) CompleteRun(ctx context.Context, id string, at time.Time) (*audit.Run, error) {
	const q = `
UPDATE audit_runs
SET status = ?, end_time = ?
WHERE run_id = ? AND status = ?;`
	res, err := r.db.ExecContext(ctx, q, audit.RunCompleted, at, id, audit.RunInProgress)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	run, err := r.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, audit.ErrRunCompleted
	}
	return run, nil
}

func (r *RunRepository) ListRunIDs(ctx context.Context) ([]string, error) {
	const q = `SELECT run_id FROM audit_runs ORDER BY start_time DESC, run_id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
