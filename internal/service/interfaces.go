package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/intelligence"
	"github.com/alexanderramin/cotador/internal/seed"
)

// LookupService finds the suppliers able to serve a task.
type LookupService interface {
	Lookup(ctx context.Context, task domain.Task) []domain.Supplier
}

// BudgetService renders and stores the final quote of a run.
type BudgetService interface {
	Generate(ctx context.Context, task domain.Task, offers []domain.Offer) domain.Quote
	Get(ctx context.Context, runID string) (*QuoteDetail, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Quote, error)
}

// QuoteDetail is a stored quote together with every offer accepted in its
// run.
type QuoteDetail struct {
	Quote  domain.Quote
	Offers []domain.OfferRecord
}

// WorkflowService runs the front half of the pipeline: classify, normalize
// and look up suppliers.
type WorkflowService interface {
	Normalize(ctx context.Context, text string, today *time.Time) (intelligence.Classification, domain.Task)
	Prepare(ctx context.Context, text string, today *time.Time) (domain.Task, []domain.Supplier)
	// Suppliers looks up the suppliers for an already normalized task.
	Suppliers(ctx context.Context, task domain.Task) []domain.Supplier
}

// SupplierService manages the supplier directory.
type SupplierService interface {
	List(ctx context.Context, serviceType domain.ServiceType) ([]domain.Supplier, error)
	Seed(ctx context.Context, fixture seed.Fixture) (seed.Result, error)
	Count(ctx context.Context) (int, error)
}

// FollowUpResult is the outcome of asking for a follow-up. When no
// follow-up is needed the conversation is interpreted right away and
// Interpretation carries the verdict.
type FollowUpResult struct {
	Question       string
	Asked          bool
	Interpretation *intelligence.Interpretation
}

// NegotiationService drives one quotation run through its phases:
// form, supplier chat and budget. Every transition is saved so a run can
// be resumed.
type NegotiationService interface {
	Begin(ctx context.Context, text string, today time.Time) (*domain.Session, error)
	Resume(ctx context.Context, runID string) (*domain.Session, error)
	Current(ctx context.Context, s *domain.Session) (*domain.Supplier, error)
	Submit(ctx context.Context, s *domain.Session, answer string) (intelligence.Interpretation, error)
	FollowUp(ctx context.Context, s *domain.Session, answer string) (FollowUpResult, error)
	Skip(ctx context.Context, s *domain.Session) error
	End(ctx context.Context, s *domain.Session) error
	Budget(ctx context.Context, s *domain.Session) (domain.Quote, error)
}
