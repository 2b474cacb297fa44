package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// migrationCommands are the goose commands exposed to operators. Commands that
// write new migration files are left out since the set is embedded.
var migrationCommands = map[string]bool{
	"up": true, "up-by-one": true, "up-to": true,
	"down": true, "down-to": true, "redo": true, "reset": true,
	"status": true, "version": true,
}

var gooseInit = sync.OnceValue(func() error {
	goose.SetBaseFS(migrationFiles)
	return goose.SetDialect("postgres")
})

// RunMigrations brings the schema up to date. A nil database is a no-op so
// memory-backed runs can call it unconditionally.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	return Migrate(ctx, database, "up")
}

// Migrate runs one goose command against the embedded documents, analyses
// and suggestions migrations.
func Migrate(ctx context.Context, database *sql.DB, command string, args ...string) error {
	if database == nil {
		return nil
	}
	if !migrationCommands[command] {
		return fmt.Errorf("unsupported migration command %q", command)
	}
	if err := gooseInit(); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	if err := goose.RunContext(ctx, command, database, migrationsDir, args...); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

// SchemaVersion reports the applied migration version.
func SchemaVersion(ctx context.Context, database *sql.DB) (int64, error) {
	if err := gooseInit(); err != nil {
		return 0, fmt.Errorf("configure goose: %w", err)
	}
	return goose.GetDBVersionContext(ctx, database)
}
