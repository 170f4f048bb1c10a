// Package storage opens the configured database, bootstraps its schema and
// exposes the repositories built on it.
package storage

import (
	"context"
	"database/sql"

	"sellerbooks/internal/book"
	"sellerbooks/internal/config"
	"sellerbooks/internal/migrations"
	"sellerbooks/internal/platform/database"
	"sellerbooks/internal/seller"

	"github.com/pkg/errors"
)

type Storage struct {
	Books   book.Repository
	Sellers seller.Repository

	ping  func(ctx context.Context) error
	close func()
}

// Open connects to cfg.DBDriver at cfg.DBDSN and applies pending migrations.
func Open(ctx context.Context, cfg config.Config) (*Storage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		sqlDB := database.SQLFromPool(pool)
		defer sqlDB.Close()
		if err := migrations.Up(ctx, sqlDB, config.DriverPostgres); err != nil {
			pool.Close()
			return nil, err
		}
		return &Storage{
			Books:   book.NewPostgresRepo(pool, cfg.DBQueryTimeout),
			Sellers: seller.NewPostgresRepo(pool, cfg.DBQueryTimeout),
			ping:    pool.Ping,
			close:   pool.Close,
		}, nil

	case config.DriverMySQL:
		db, err := database.OpenMySQL(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(ctx, db, config.DriverMySQL); err != nil {
			db.Close()
			return nil, err
		}
		return &Storage{
			Books:   book.NewMySQLRepo(db, cfg.DBQueryTimeout),
			Sellers: seller.NewMySQLRepo(db, cfg.DBQueryTimeout),
			ping:    db.PingContext,
			close:   closer(db),
		}, nil

	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// Ping reports whether the database answers.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Storage) Close() {
	s.close()
}

func closer(db *sql.DB) func() {
	return func() { _ = db.Close() }
}
