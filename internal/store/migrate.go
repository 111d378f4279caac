package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrator wraps goose against the embedded migration set, mirroring
// the shape used for relational-store migrations elsewhere in this
// stack, adapted from Postgres to the sqlite3 dialect.
type Migrator struct {
	db  *sql.DB
	dir string
}

// NewMigrator builds a Migrator over an already-open database handle.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, dir: "migrations"}
}

// Up applies every pending migration, monotonically. Production code
// paths only ever call Up; Down exists for local development and no
// CLI verb or flag calls it.
func (m *Migrator) Up(ctx context.Context) error {
	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration. Not part of the Control
// CLI's public verb surface.
func (m *Migrator) Down(ctx context.Context) error {
	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.DownContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	return nil
}

// Status reports the applied-migration status through goose's own
// status logging.
func (m *Migrator) Status(ctx context.Context) error {
	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return goose.StatusContext(ctx, m.db, m.dir)
}
