package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/intelligence"
	"github.com/alexanderramin/cotador/internal/session"
)

// NegotiationDeps groups the collaborators of the negotiation service.
type NegotiationDeps struct {
	Workflow    WorkflowService
	Questions   intelligence.QuestionGenerator
	Interpreter intelligence.Interpreter
	FollowUps   intelligence.FollowUpGenerator
	Budgets     BudgetService
	Sessions    session.Store
	MaxOffers   int
	Log         *zap.Logger
}

type negotiationService struct {
	NegotiationDeps
	observer UseCaseObserver
	now      func() time.Time
}

func NewNegotiationService(deps NegotiationDeps, observers ...UseCaseObserver) NegotiationService {
	if deps.MaxOffers <= 0 {
		deps.MaxOffers = domain.DefaultMaxOffers
	}
	deps.Log = orNop(deps.Log)
	return &negotiationService{
		NegotiationDeps: deps,
		observer:        useCaseObserverOrNoop(observers),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (n *negotiationService) Begin(ctx context.Context, text string, today time.Time) (s *domain.Session, err error) {
	fields := map[string]any{}
	defer observe(ctx, n.observer, "begin-negotiation", fields, &err)()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTask
	}

	task, suppliers := n.Workflow.Prepare(ctx, text, &today)
	runID := uuid.New().String()
	task.RunID = runID
	if task.CurrentDate == nil {
		task.CurrentDate = &today
	}

	s = &domain.Session{
		RunID:     runID,
		Phase:     domain.PhaseSupplierChat,
		Task:      task,
		Queue:     suppliers,
		Offers:    []domain.Offer{},
		MaxOffers: n.MaxOffers,
	}
	fields["run_id"] = runID
	fields["service_type"] = string(task.ServiceType)
	fields["suppliers"] = len(suppliers)

	if err = n.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (n *negotiationService) Resume(ctx context.Context, runID string) (*domain.Session, error) {
	s, err := n.Sessions.Load(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("resuming %s: %w", runID, err)
	}
	return s, nil
}

// Current returns the supplier under negotiation, taking the next one from
// the queue and writing its question when none is active. It returns nil
// once the queue is exhausted, which closes the session.
func (n *negotiationService) Current(ctx context.Context, s *domain.Session) (*domain.Supplier, error) {
	if s.Closed() {
		return nil, nil
	}
	if s.Current != nil {
		return s.Current, nil
	}
	if len(s.Queue) == 0 {
		s.Phase = domain.PhaseBudget
		return nil, n.save(ctx, s)
	}

	next := s.Queue[0]
	s.Queue = s.Queue[1:]
	s.Current = &next
	s.Question = n.Questions.Question(ctx, s.Task, next)
	s.Transcript = []domain.Exchange{{Speaker: domain.SpeakerAttendant, Text: s.Question}}
	return s.Current, n.save(ctx, s)
}

// Submit interprets the supplier's conversation so far plus answer and
// moves on to the next supplier.
func (n *negotiationService) Submit(ctx context.Context, s *domain.Session, answer string) (res intelligence.Interpretation, err error) {
	fields := map[string]any{"run_id": s.RunID}
	defer observe(ctx, n.observer, "submit-answer", fields, &err)()

	if err = n.requireSupplier(s); err != nil {
		return res, err
	}
	n.recordAnswer(s, answer)
	res = n.interpret(ctx, s)
	fields["supplier"] = s.Current.ID
	fields["accepted"] = res.Accepted
	err = n.advance(ctx, s)
	return res, err
}

// FollowUp records answer and asks the follow-up generator for one more
// question. When the generator has nothing to ask the conversation is
// interpreted as in Submit.
func (n *negotiationService) FollowUp(ctx context.Context, s *domain.Session, answer string) (out FollowUpResult, err error) {
	fields := map[string]any{"run_id": s.RunID}
	defer observe(ctx, n.observer, "follow-up", fields, &err)()

	if err = n.requireSupplier(s); err != nil {
		return out, err
	}
	n.recordAnswer(s, answer)
	fields["supplier"] = s.Current.ID

	q, more := n.FollowUps.FollowUp(ctx, s.Task, *s.Current, s.Transcript)
	if more {
		s.Question = q
		s.Transcript = append(s.Transcript, domain.Exchange{Speaker: domain.SpeakerAttendant, Text: q})
		fields["asked"] = true
		return FollowUpResult{Question: q, Asked: true}, n.save(ctx, s)
	}

	res := n.interpret(ctx, s)
	fields["accepted"] = res.Accepted
	err = n.advance(ctx, s)
	return FollowUpResult{Interpretation: &res}, err
}

func (n *negotiationService) Skip(ctx context.Context, s *domain.Session) error {
	if err := n.requireSupplier(s); err != nil {
		return err
	}
	n.Log.Info("supplier skipped", zap.String("run_id", s.RunID), zap.String("supplier", s.Current.ID))
	s.ClearCurrent()
	return n.save(ctx, s)
}

func (n *negotiationService) End(ctx context.Context, s *domain.Session) error {
	s.ClearCurrent()
	s.Phase = domain.PhaseBudget
	return n.save(ctx, s)
}

// Budget closes the session and renders its quote. Calling it again
// returns the stored quote.
func (n *negotiationService) Budget(ctx context.Context, s *domain.Session) (domain.Quote, error) {
	s.ClearCurrent()
	s.Phase = domain.PhaseBudget
	q := n.Budgets.Generate(ctx, s.Task, s.Offers)
	s.Message = q.Message
	return q, n.save(ctx, s)
}

func (n *negotiationService) requireSupplier(s *domain.Session) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	if s.Current == nil {
		return ErrNoActiveSupplier
	}
	return nil
}

func (n *negotiationService) recordAnswer(s *domain.Session, answer string) {
	if answer = strings.TrimSpace(answer); answer != "" {
		s.Transcript = append(s.Transcript, domain.Exchange{Speaker: domain.SpeakerSupplier, Text: answer})
	}
}

func (n *negotiationService) interpret(ctx context.Context, s *domain.Session) intelligence.Interpretation {
	answer := strings.Join(s.SupplierReplies(), "\n")
	res := n.Interpreter.Interpret(ctx, s.Task, *s.Current, answer)
	if res.Accepted && res.Offer != nil {
		s.Offers = append(s.Offers, *res.Offer)
	}
	return res
}

// advance drops the current supplier and closes the session when enough
// offers were collected or nobody is left to ask.
func (n *negotiationService) advance(ctx context.Context, s *domain.Session) error {
	s.ClearCurrent()
	if s.OfferLimitReached() || len(s.Queue) == 0 {
		s.Phase = domain.PhaseBudget
	}
	return n.save(ctx, s)
}

func (n *negotiationService) save(ctx context.Context, s *domain.Session) error {
	s.UpdatedAt = n.now()
	if err := n.Sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("saving session %s: %w", s.RunID, err)
	}
	return nil
}
