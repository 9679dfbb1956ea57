package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/domain"
)

var ErrNotFound = errors.New("session not found")

// Store keeps negotiation sessions between transitions.
type Store interface {
	Save(ctx context.Context, s *domain.Session) error
	Load(ctx context.Context, runID string) (*domain.Session, error)
	Ping(ctx context.Context) error
	Close() error
}

const (
	BackendSQL    = "sql"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultTTL bounds how long an idle session can be resumed.
const DefaultTTL = 24 * time.Hour

// Open returns the store for backend. An empty backend means the sessions
// table reached through conn.
func Open(backend, redisURL string, ttl time.Duration, conn db.DBTX) (Store, error) {
	switch backend {
	case "", BackendSQL:
		if conn == nil {
			return nil, errors.New("sql session store needs a database connection")
		}
		return NewSQLStore(conn, ttl), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(redisURL, ttl)
	default:
		return nil, fmt.Errorf("unknown session backend %q", backend)
	}
}
