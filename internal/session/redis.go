package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexanderramin/cotador/internal/domain"
)

const keyPrefix = "cotador:session:"

// RedisStore keeps sessions as JSON values that expire after ttl without
// a save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	if url == "" {
		return nil, errors.New("redis session store needs a url")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: redis.NewClient(opt), ttl: ttl}, nil
}

func sessionKey(runID string) string { return keyPrefix + runID }

func (r *RedisStore) Save(ctx context.Context, s *domain.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(s.RunID), b, r.ttl).Err()
}

func (r *RedisStore) Load(ctx context.Context, runID string) (*domain.Session, error) {
	b, err := r.client.Get(ctx, sessionKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", runID, err)
	}
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
