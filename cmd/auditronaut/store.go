package main

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/auditronaut/internal/config"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/auditronaut/internal/infra/db/mysql"
	"github.com/bryanwahyu/auditronaut/internal/infra/db/postgres"
)

// backend is an audit.Store with a health ping and a release hook.
type backend interface {
	audit.Store
	Ping(ctx context.Context) error
}

// openStore connects the configured driver. migrate applies the schema
// first for SQL drivers.
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (backend, func() error, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		s, err := mysqlp.Open(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := mysqlp.Migrate(ctx, s.DB()); err != nil {
				s.Close()
				return nil, nil, err
			}
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := postgres.Migrate(ctx, s.DB()); err != nil {
				s.Close()
				return nil, nil, err
			}
		}
		return s, s.Close, nil
	case config.DriverMemory:
		return memory.New(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}
