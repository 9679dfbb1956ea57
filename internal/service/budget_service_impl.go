package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/repository"
)

type budgetService struct {
	quotes   repository.QuoteRepo
	offers   repository.OfferRepo
	log      *zap.Logger
	observer UseCaseObserver
	now      func() time.Time
}

func NewBudgetService(quotes repository.QuoteRepo, offers repository.OfferRepo, log *zap.Logger, observers ...UseCaseObserver) BudgetService {
	return &budgetService{
		quotes:   quotes,
		offers:   offers,
		log:      orNop(log),
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Generate renders the quote for a run and stores it. A run that already
// has a stored quote gets that quote back unchanged. Store failures are
// logged; the rendered quote is returned either way.
func (s *budgetService) Generate(ctx context.Context, task domain.Task, offers []domain.Offer) domain.Quote {
	var err error
	fields := map[string]any{"run_id": task.RunID, "offers": len(offers)}
	defer observe(ctx, s.observer, "generate-budget", fields, &err)()

	if task.RunID != "" {
		existing, getErr := s.quotes.GetByRun(ctx, task.RunID)
		if getErr == nil {
			fields["reused"] = true
			return *existing
		}
		if !errors.Is(getErr, repository.ErrNotFound) {
			s.log.Warn("budget lookup failed", zap.Error(getErr), zap.String("run_id", task.RunID))
		}
	}

	if offers == nil {
		offers = []domain.Offer{}
	}
	q := domain.Quote{
		ID:        uuid.New().String(),
		RunID:     task.RunID,
		Task:      task,
		Offers:    offers,
		Message:   RenderBudget(task, offers),
		CreatedAt: s.now(),
	}
	if err = s.quotes.Create(ctx, &q); err != nil {
		s.log.Warn("budget not persisted", zap.Error(err), zap.String("run_id", task.RunID))
	}
	return q
}

func (s *budgetService) Get(ctx context.Context, runID string) (*QuoteDetail, error) {
	q, err := s.quotes.GetByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", runID, err)
	}
	recs, err := s.offers.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &QuoteDetail{Quote: *q, Offers: recs}, nil
}

func (s *budgetService) ListRecent(ctx context.Context, limit int) ([]domain.Quote, error) {
	return s.quotes.ListRecent(ctx, limit)
}
