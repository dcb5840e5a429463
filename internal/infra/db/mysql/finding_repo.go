package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

type FindingRepository struct {
	db *sql.DB
}

func NewFindingRepository(db *sql.DB) *FindingRepository {
	return &FindingRepository{db: db}
}

const findingColumns = `id, run_id, question, answer, explanation, timestamp`

func (r *FindingRepository) SubmitFinding(ctx context.Context, f *audit.Finding) error {
	const q = `
INSERT INTO audit_findings (run_id, question, answer, explanation, timestamp)
VALUES (?,?,?,?,?);`
	res, err := r.db.ExecContext(ctx, q, f.RunID, f.Question, f.Answer, f.Explanation, f.Timestamp)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (r *FindingRepository) UpdateFinding(ctx context.Context, id int64, answer audit.Answer, explanation string) (*audit.Finding, error) {
	const q = `UPDATE audit_findings SET answer = ?, explanation = ? WHERE id = ?;`
	if _, err := r.db.ExecContext(ctx, q, answer, explanation, id); err != nil {
		return nil, err
	}
	// RowsAffected is 0 for unchanged values in MySQL, so re-read instead
	return r.GetFinding(ctx, id)
}

func (r *FindingRepository) GetFinding(ctx context.Context, id int64) (*audit.Finding, error) {
	q := `SELECT ` + findingColumns + ` FROM audit_findings WHERE id = ? LIMIT 1;`
	var f audit.Finding
	err := r.db.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.RunID, &f.Question, &f.Answer, &f.Explanation, &f.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, audit.ErrFindingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FindingRepository) ListFindings(ctx context.Context, runID string) ([]*audit.Finding, error) {
	q := `SELECT ` + findingColumns + ` FROM audit_findings`
	var args []any
	if runID != "" {
		q += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	q += ` ORDER BY id ASC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*audit.Finding{}
	for rows.Next() {
		var f audit.Finding
		if err := rows.Scan(&f.ID, &f.RunID, &f.Question, &f.Answer, &f.Explanation, &f.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
