// Package infrastructure selects and opens the configured backing store.
package infrastructure

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/config"
	"github.com/oksasatya/task-tracker/internal/domain/repository"
	pginfra "github.com/oksasatya/task-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/task-tracker/internal/infrastructure/sqlite"
)

// OpenStore connects to the database named by cfg.DBDriver, brings its schema
// up to date and returns the store with a function that releases it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.Store, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return repository.Store{}, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:         cfg.PostgresDSN(),
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return repository.Store{}, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.WithField("driver", cfg.DBDriver).Info("store ready")
		return pginfra.NewStore(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return repository.Store{}, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return repository.Store{}, nil, err
		}
		logger.WithFields(logrus.Fields{"driver": cfg.DBDriver, "path": cfg.SQLitePath}).Info("store ready")
		return sqlite.NewStore(db), func() { _ = sqlDB.Close() }, nil
	}
	return repository.Store{}, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}
