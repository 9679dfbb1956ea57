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
var migrationFS embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Migrate applies the embedded migrations up to the latest version.
func Migrate(ctx context.Context, database *sql.DB, dialect Dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(goose.NopLogger())
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Version reports the applied schema version.
func Version(ctx context.Context, database *sql.DB, dialect Dialect) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, database)
}

func gooseDialect(d Dialect) string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}
