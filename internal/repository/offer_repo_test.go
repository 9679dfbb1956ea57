package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/testutil"
)

func TestOfferRepo_CreateAndListByRun(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLOfferRepo(testutil.NewTestDB(t))

	task := testutil.NewTestTask("trocar registro amanhã", domain.ServiceFaucetRepair,
		testutil.WithDesiredDate(testutil.Date(2025, time.August, 9)))
	offer := testutil.NewTestOffer("Hidráulica Silva", 180,
		testutil.WithAvailableDate(testutil.Date(2025, time.August, 9)),
		testutil.WithOfferNotes("levo a peça"))
	offer.SupplierID = "f1"

	rec := &domain.OfferRecord{
		ID:           uuid.New().String(),
		RunID:        task.RunID,
		SupplierID:   "f1",
		SupplierName: offer.Name,
		Task:         task,
		Offer:        offer,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.Create(ctx, &domain.OfferRecord{
		ID: uuid.New().String(), RunID: "other-run", Task: task,
		Offer: testutil.NewTestOffer("X", 1), CreatedAt: time.Now().UTC(),
	}))

	got, err := repo.ListByRun(ctx, task.RunID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, offer, got[0].Offer)
	assert.Equal(t, task.ServiceType, got[0].Task.ServiceType)
	assert.Equal(t, "2025-08-09", got[0].Task.DesiredDateISO())
	assert.Nil(t, got[0].Offer.LeadTimeDays)
}
