package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Store bundles an open pool with its dialect.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open connects to the document store and applies migrations. driver is
// "sqlite" (dsn is a file path or ":memory:") or "postgres" (dsn is a
// connection URL).
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch Dialect(driver) {
	case DialectSQLite, "":
		database, err := OpenDB(dsn)
		if err != nil {
			return nil, err
		}
		return &Store{DB: database, Dialect: DialectSQLite}, nil
	case DialectPostgres:
		database, err := openPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Store{DB: database, Dialect: DialectPostgres}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		database.SetMaxOpenConns(1)
	}

	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil {
		database.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(context.Background(), database, DialectSQLite); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing postgres dsn")
	}
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	database.SetMaxOpenConns(10)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(30 * time.Minute)

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := Migrate(ctx, database, DialectPostgres); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return database, nil
}

// Conn returns a DBTX that accepts "?" placeholders on every dialect.
func (s *Store) Conn() DBTX {
	return Bind(s.DB, s.Dialect)
}

// UnitOfWork returns a transaction runner over the store.
func (s *Store) UnitOfWork() UnitOfWork {
	return NewUnitOfWork(s.DB, s.Dialect)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
