package postgres

import (
	"context"
	"database/sql"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

type ProjectRepository struct{ db *sql.DB }

func NewProjectRepository(db *sql.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) CreateProject(ctx context.Context, p *audit.Project) error {
	const q = `INSERT INTO projects (organization, name) VALUES ($1, $2) RETURNING id;`
	err := r.db.QueryRowContext(ctx, q, stringOrDash(p.Organization), p.Name).Scan(&p.ID)
	if isDuplicate(err) {
		return audit.ErrProjectExists
	}
	return err
}

func (r *ProjectRepository) ListProjects(ctx context.Context) ([]*audit.Project, error) {
	const q = `SELECT id, organization, name FROM projects ORDER BY id;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*audit.Project
	for rows.Next() {
		var p audit.Project
		if err := rows.Scan(&p.ID, &p.Organization, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
