// Package migrations bootstraps the database schema from SQL files embedded
// in the binary. Each supported dialect has its own directory.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql mysql/*.sql
var files embed.FS

// FS returns the migration files for dialect ("postgres" or "mysql").
func FS(dialect string) (fs.FS, error) {
	switch dialect {
	case "postgres", "mysql":
		return fs.Sub(files, dialect)
	default:
		return nil, errors.Errorf("no migrations for dialect %q", dialect)
	}
}

// Up applies every pending migration for dialect.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	fsys, err := FS(dialect)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.Dialect(dialect), db, fsys)
	if err != nil {
		return errors.Wrap(err, "create migration provider")
	}
	if _, err := provider.Up(ctx); err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
