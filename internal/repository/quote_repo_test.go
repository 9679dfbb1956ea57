package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/testutil"
)

func newQuote(task domain.Task, created time.Time, offers ...domain.Offer) *domain.Quote {
	return &domain.Quote{
		ID:        uuid.New().String(),
		RunID:     task.RunID,
		Task:      task,
		Offers:    offers,
		Message:   "Olá! Seguem as opções que atendem ao seu pedido:",
		CreatedAt: created,
	}
}

func TestQuoteRepo_CreateAndGetByRun(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLQuoteRepo(testutil.NewTestDB(t))

	task := testutil.NewTestTask("camiseta preta GG", domain.ServiceTshirtSale,
		testutil.WithColor("preta"), testutil.WithSize("GG"))
	q := newQuote(task, time.Now().UTC().Truncate(time.Millisecond),
		testutil.NewTestOffer("Ana Malhas", 49.9),
		testutil.NewTestOffer("Zeca Camisetas", 55))
	require.NoError(t, repo.Create(ctx, q))

	got, err := repo.GetByRun(ctx, task.RunID)
	require.NoError(t, err)
	if diff := cmp.Diff(q, got); diff != "" {
		t.Fatalf("quote mismatch (-want +got):\n%s", diff)
	}
}

func TestQuoteRepo_OncePerRun(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLQuoteRepo(testutil.NewTestDB(t))

	task := testutil.NewTestTask("torneira pingando", domain.ServiceFaucetRepair)
	require.NoError(t, repo.Create(ctx, newQuote(task, time.Now().UTC())))
	assert.Error(t, repo.Create(ctx, newQuote(task, time.Now().UTC())))
}

func TestQuoteRepo_GetByRunNotFound(t *testing.T) {
	repo := NewSQLQuoteRepo(testutil.NewTestDB(t))

	_, err := repo.GetByRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteRepo_ListRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLQuoteRepo(testutil.NewTestDB(t))

	base := time.Date(2025, time.August, 8, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		task := testutil.NewTestTask("torneira", domain.ServiceFaucetRepair)
		require.NoError(t, repo.Create(ctx, newQuote(task, base.Add(time.Duration(i)*time.Minute))))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
	assert.Empty(t, got[0].Offers)
}
