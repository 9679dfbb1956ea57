package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/domain"
)

// expiry timestamps are compared as text, so the layout must sort.
const expiryLayout = "2006-01-02T15:04:05.000000000Z"

// SQLStore keeps sessions in the sessions table of the document store, so
// a run started by one process can be resumed by the next.
type SQLStore struct {
	db  db.DBTX
	ttl time.Duration
	now func() time.Time
}

func NewSQLStore(conn db.DBTX, ttl time.Duration) *SQLStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLStore{db: conn, ttl: ttl, now: time.Now}
}

func (s *SQLStore) stamp(t time.Time) string {
	return t.UTC().Format(expiryLayout)
}

// Save upserts the session and drops every session past its expiry.
func (s *SQLStore) Save(ctx context.Context, sess *domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	now := s.now()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, s.stamp(now)); err != nil {
		return fmt.Errorf("purging sessions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (run_id, data, updated_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (run_id) DO UPDATE SET
			data = excluded.data, updated_at = excluded.updated_at, expires_at = excluded.expires_at`,
		sess.RunID, string(b), s.stamp(now), s.stamp(now.Add(s.ttl)))
	if err != nil {
		return fmt.Errorf("saving session %s: %w", sess.RunID, err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, runID string) (*domain.Session, error) {
	var data, expires string
	err := s.db.QueryRowContext(ctx,
		`SELECT data, expires_at FROM sessions WHERE run_id = ?`, runID).Scan(&data, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", runID, err)
	}
	if expires < s.stamp(s.now()) {
		return nil, ErrNotFound
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}

// Close is a no-op: the connection belongs to the document store.
func (s *SQLStore) Close() error { return nil }
