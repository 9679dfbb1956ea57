package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
// Repository implementations depend on this interface instead of the
// concrete *sql.DB, enabling transactional composition.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time verification that *sql.DB and *sql.Tx satisfy DBTX.
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// Bind adapts conn so repositories can write "?" placeholders regardless
// of dialect.
func Bind(conn DBTX, dialect Dialect) DBTX {
	if dialect != DialectPostgres {
		return conn
	}
	return dollarBinder{conn}
}

type dollarBinder struct {
	DBTX
}

func (b dollarBinder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return b.DBTX.ExecContext(ctx, Rebind(query), args...)
}

func (b dollarBinder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return b.DBTX.QueryContext(ctx, Rebind(query), args...)
}

func (b dollarBinder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return b.DBTX.QueryRowContext(ctx, Rebind(query), args...)
}

// Rebind rewrites "?" placeholders as $1, $2, ... Question marks inside
// single-quoted literals are left alone.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
