package db

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/udisondev/tactica/internal/db/migrations"
)

// Migrate applies the embedded goose migrations.
func (d *DB) Migrate(ctx context.Context) error {
	dialect := "postgres"
	if d.driver == DriverSQLite {
		dialect = "sqlite3"
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.sql, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
