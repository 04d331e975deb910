package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate runs the SQL migrations in dir against the connected pool.
// goose needs a database/sql handle, so the pool config is re-opened
// through pgx's stdlib adapter for the duration of the run.
func (db *PostgresDB) Migrate(ctx context.Context, dir string) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	sqldb := stdlib.OpenDB(*db.Pool.Config().ConnConfig)
	defer sqldb.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqldb, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
