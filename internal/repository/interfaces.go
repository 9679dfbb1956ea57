package repository

import (
	"context"

	"github.com/alexanderramin/cotador/internal/domain"
)

// SupplierRepo reads the supplier directory. Each collection is one
// partition of the directory keyed by service family.
type SupplierRepo interface {
	ListByService(ctx context.Context, collection domain.Collection, serviceType domain.ServiceType) ([]domain.Supplier, error)
	ListCollection(ctx context.Context, collection domain.Collection) ([]domain.Supplier, error)
	ReplaceCollection(ctx context.Context, collection domain.Collection, suppliers []domain.Supplier) error
	Count(ctx context.Context) (int, error)
}

// OfferRepo appends accepted offers.
type OfferRepo interface {
	Create(ctx context.Context, rec *domain.OfferRecord) error
	ListByRun(ctx context.Context, runID string) ([]domain.OfferRecord, error)
}

// QuoteRepo appends final quotes, one per run.
type QuoteRepo interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByRun(ctx context.Context, runID string) (*domain.Quote, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Quote, error)
}
