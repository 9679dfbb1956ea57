package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/testutil"
)

func TestMemoryStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := &domain.Session{
		RunID: "run-1",
		Phase: domain.PhaseSupplierChat,
		Task:  domain.Task{RunID: "run-1", Text: "camiseta preta", ServiceType: domain.ServiceTshirtSale},
		Queue: []domain.Supplier{{ID: "t1", Name: "Ana Malhas", ServiceType: domain.ServiceTshirtSale}},
	}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSupplierChat, got.Phase)
	require.Len(t, got.Queue, 1)
	assert.Equal(t, "Ana Malhas", got.Queue[0].Name)

	_, err = store.Load(ctx, "run-9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_LoadedSessionIsACopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := &domain.Session{RunID: "run-2", Queue: []domain.Supplier{{ID: "f1"}}}
	require.NoError(t, store.Save(ctx, s))

	s.Queue = nil
	got, err := store.Load(ctx, "run-2")
	require.NoError(t, err)
	assert.Len(t, got.Queue, 1)

	got.Phase = domain.PhaseBudget
	again, err := store.Load(ctx, "run-2")
	require.NoError(t, err)
	assert.NotEqual(t, domain.PhaseBudget, again.Phase)
}

func TestOpen(t *testing.T) {
	conn := testutil.NewTestStore(t).Conn()

	s, err := Open("", "", 0, conn)
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	assert.NoError(t, s.Ping(context.Background()))

	_, err = Open(BackendSQL, "", 0, nil)
	assert.Error(t, err)

	m, err := Open(BackendMemory, "", 0, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, m)

	_, err = Open("memcached", "", 0, conn)
	assert.Error(t, err)

	_, err = Open(BackendRedis, "", 0, conn)
	assert.Error(t, err)

	_, err = Open(BackendRedis, "not-a-url", 0, conn)
	assert.Error(t, err)
}

func TestSQLStore_SaveLoadUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewSQLStore(testutil.NewTestStore(t).Conn(), time.Hour)

	s := &domain.Session{
		RunID: "run-1",
		Phase: domain.PhaseSupplierChat,
		Task:  domain.Task{RunID: "run-1", Text: "camiseta preta", ServiceType: domain.ServiceTshirtSale},
		Queue: []domain.Supplier{{ID: "t1", Name: "Ana Malhas", ServiceType: domain.ServiceTshirtSale}},
	}
	require.NoError(t, store.Save(ctx, s))

	s.Phase = domain.PhaseBudget
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseBudget, got.Phase)
	require.Len(t, got.Queue, 1)
	assert.Equal(t, "Ana Malhas", got.Queue[0].Name)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_ResumeAcrossInstances(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewTestStore(t).Conn()

	first, err := Open("", "", 0, conn)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, &domain.Session{RunID: "run-7", Phase: domain.PhaseSupplierChat}))
	require.NoError(t, first.Close())

	second, err := Open("", "", 0, conn)
	require.NoError(t, err)
	got, err := second.Load(ctx, "run-7")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSupplierChat, got.Phase)
}

func TestSQLStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewSQLStore(testutil.NewTestStore(t).Conn(), time.Minute)
	now := time.Date(2025, 8, 8, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &domain.Session{RunID: "old"}))

	now = now.Add(2 * time.Minute)
	_, err := store.Load(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	// A later save purges the expired row.
	require.NoError(t, store.Save(ctx, &domain.Session{RunID: "new"}))
	var n int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRedisStore_SaveLoadExpire(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr()+"/0", time.Minute)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Save(ctx, &domain.Session{
		RunID: "run-3",
		Phase: domain.PhaseSupplierChat,
		Queue: []domain.Supplier{{ID: "f1", Name: "Hidro Silva"}},
	}))
	assert.True(t, mr.Exists("cotador:session:run-3"))
	assert.Equal(t, time.Minute, mr.TTL("cotador:session:run-3"))

	got, err := store.Load(ctx, "run-3")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSupplierChat, got.Phase)
	require.Len(t, got.Queue, 1)
	assert.Equal(t, "Hidro Silva", got.Queue[0].Name)

	mr.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, "run-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_DefaultsTTLAndKeys(t *testing.T) {
	s, err := NewRedisStore("redis://127.0.0.1:1/2", 0)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, DefaultTTL, s.ttl)
	assert.Equal(t, "cotador:session:abc", sessionKey("abc"))
	assert.Equal(t, 2, s.client.Options().DB)
}

func TestRedisStore_UnreachableServer(t *testing.T) {
	s, err := NewRedisStore("redis://127.0.0.1:1/0?dial_timeout=100ms&max_retries=-1", time.Minute)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, s.Ping(ctx))
	_, err = s.Load(ctx, "missing")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
