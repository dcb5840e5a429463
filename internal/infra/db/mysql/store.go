package mysql

import (
	"context"
	"database/sql"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

// Store bundles the MySQL repositories into an audit.Store.
type Store struct {
	*ProjectRepository
	*RunRepository
	*FindingRepository
	db *sql.DB
}

var _ audit.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{
		ProjectRepository: NewProjectRepository(db),
		RunRepository:     NewRunRepository(db),
		FindingRepository: NewFindingRepository(db),
		db:                db,
	}
}

// Ping dipakai health check
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// DB exposes the pool for migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }
