package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

type FindingRepository struct{ db *sql.DB }

func NewFindingRepository(db *sql.DB) *FindingRepository { return &FindingRepository{db: db} }

const findingColumns = `id, run_id, question, answer, explanation, timestamp`

func scanFinding(row interface{ Scan(...any) error }) (*audit.Finding, error) {
	var f audit.Finding
	if err := row.Scan(&f.ID, &f.RunID, &f.Question, &f.Answer, &f.Explanation, &f.Timestamp); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FindingRepository) SubmitFinding(ctx context.Context, f *audit.Finding) error {
	const q = `
INSERT INTO audit_findings (run_id, question, answer, explanation, timestamp)
VALUES ($1,$2,$3,$4,$5)
RETURNING id;`
	return r.db.QueryRowContext(ctx, q, f.RunID, f.Question, f.Answer, f.Explanation, f.Timestamp).Scan(&f.ID)
}

func (r *FindingRepository) UpdateFinding(ctx context.Context, id int64, answer audit.Answer, explanation string) (*audit.Finding, error) {
	q := `UPDATE audit_findings SET answer = $1, explanation = $2 WHERE id = $3 RETURNING ` + findingColumns + `;`
	f, err := scanFinding(r.db.QueryRowContext(ctx, q, answer, explanation, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, audit.ErrFindingNotFound
	}
	return f, err
}

func (r *FindingRepository) GetFinding(ctx context.Context, id int64) (*audit.Finding, error) {
	q := `SELECT ` + findingColumns + ` FROM audit_findings WHERE id = $1 LIMIT 1;`
	f, err := scanFinding(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, audit.ErrFindingNotFound
	}
	return f, err
}

func (r *FindingRepository) ListFindings(ctx context.Context, runID string) ([]*audit.Finding, error) {
	q := `SELECT ` + findingColumns + ` FROM audit_findings`
	var args []any
	if runID != "" {
		q += ` WHERE run_id = $1`
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
		f, err := scanFinding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
