package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/repository"
	"github.com/alexanderramin/cotador/internal/testutil"
)

func newBudgetFixture(t *testing.T) (BudgetService, *repository.SQLOfferRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	offers := repository.NewSQLOfferRepo(database)
	return NewBudgetService(repository.NewSQLQuoteRepo(database), offers, nil), offers
}

func TestBudgetService_GeneratePersistsOncePerRun(t *testing.T) {
	svc, _ := newBudgetFixture(t)
	ctx := context.Background()
	task := testutil.NewTestTask("camiseta preta GG", domain.ServiceTshirtSale, testutil.WithRunID("run-42"))
	offers := []domain.Offer{testutil.NewTestOffer("Ana Malhas", 39.9)}

	first := svc.Generate(ctx, task, offers)
	assert.Equal(t, "run-42", first.RunID)
	assert.Contains(t, first.Message, "- Ana Malhas • Preço: R$39,90")

	second := svc.Generate(ctx, task, append(offers, testutil.NewTestOffer("Zeca Estampas", 42)))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Message, second.Message)

	detail, err := svc.Get(ctx, "run-42")
	require.NoError(t, err)
	if diff := cmp.Diff(first.Offers, detail.Quote.Offers); diff != "" {
		t.Errorf("stored offers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, first.Message, detail.Quote.Message)
}

func TestBudgetService_GetIncludesOfferRecords(t *testing.T) {
	svc, offers := newBudgetFixture(t)
	ctx := context.Background()
	task := testutil.NewTestTask("torneira", domain.ServiceFaucetRepair, testutil.WithRunID("run-7"))
	offer := testutil.NewTestOffer("Hidráulica Silva", 150)

	require.NoError(t, offers.Create(ctx, &domain.OfferRecord{
		ID: "o1", RunID: "run-7", SupplierID: "f1", SupplierName: "Hidráulica Silva",
		Task: task, Offer: offer, CreatedAt: time.Now().UTC(),
	}))
	svc.Generate(ctx, task, []domain.Offer{offer})

	detail, err := svc.Get(ctx, "run-7")
	require.NoError(t, err)
	require.Len(t, detail.Offers, 1)
	assert.Equal(t, "f1", detail.Offers[0].SupplierID)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBudgetService_ListRecent(t *testing.T) {
	svc, _ := newBudgetFixture(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		svc.Generate(ctx, testutil.NewTestTask("camiseta", domain.ServiceTshirtSale, testutil.WithRunID(id)), nil)
	}

	got, err := svc.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

type brokenQuoteRepo struct {
	repository.QuoteRepo
}

func (brokenQuoteRepo) GetByRun(context.Context, string) (*domain.Quote, error) {
	return nil, repository.ErrNotFound
}

func (brokenQuoteRepo) Create(context.Context, *domain.Quote) error {
	return assert.AnError
}

func TestBudgetService_PersistFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	obs := &stubUseCaseObserver{}
	svc := NewBudgetService(brokenQuoteRepo{}, nil, zap.New(core), obs)

	q := svc.Generate(context.Background(), testutil.NewTestTask("camiseta", domain.ServiceTshirtSale), nil)

	assert.Contains(t, q.Message, "Nenhum fornecedor confirmou")
	assert.NotNil(t, q.Offers)
	assert.Equal(t, 1, logs.FilterMessage("budget not persisted").Len())
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}
