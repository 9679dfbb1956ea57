package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/intelligence"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/repository"
	"github.com/alexanderramin/cotador/internal/seed"
	"github.com/alexanderramin/cotador/internal/session"
	"github.com/alexanderramin/cotador/internal/testutil"
)

var friday = testutil.Date(2025, time.August, 8)

type negotiationHarness struct {
	llm      *testutil.FakeLLM
	svc      NegotiationService
	budget   BudgetService
	offers   *repository.SQLOfferRepo
	sessions *session.MemoryStore
	observer *stubUseCaseObserver
}

func newNegotiationHarness(t *testing.T, fake *testutil.FakeLLM, maxOffers int) *negotiationHarness {
	t.Helper()
	database := testutil.NewTestDB(t)
	fixture, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.Apply(context.Background(), testutil.NewTestUoW(database), fixture)
	require.NoError(t, err)

	offers := repository.NewSQLOfferRepo(database)
	budget := NewBudgetService(repository.NewSQLQuoteRepo(database), offers, nil)
	workflow := NewWorkflowService(
		intelligence.NewClassifier(fake, nil),
		intelligence.NewManualNormalizer(fake, nil),
		intelligence.NewClothingNormalizer(fake, nil),
		NewLookupService(repository.NewSQLSupplierRepo(database), nil),
	)
	sessions := session.NewMemoryStore()
	obs := &stubUseCaseObserver{}

	svc := NewNegotiationService(NegotiationDeps{
		Workflow:    workflow,
		Questions:   intelligence.NewQuestionGenerator(fake, nil),
		Interpreter: intelligence.NewInterpreter(fake, offers, nil),
		FollowUps:   intelligence.NewFollowUpGenerator(fake, nil),
		Budgets:     budget,
		Sessions:    sessions,
		MaxOffers:   maxOffers,
	}, obs)

	return &negotiationHarness{llm: fake, svc: svc, budget: budget, offers: offers, sessions: sessions, observer: obs}
}

func TestNegotiation_ClothingRoundStopsAtOfferLimit(t *testing.T) {
	fake := testutil.NewFakeLLM().On(llm.TaskInterpret,
		`{"can_do": true, "price": 39.9, "notes": "pronta entrega"}`,
		`{"can_do": true, "price": "45"}`,
	)
	h := newNegotiationHarness(t, fake, 2)
	ctx := context.Background()

	s, err := h.svc.Begin(ctx, "quero uma camiseta preta tamanho GG", friday)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSupplierChat, s.Phase)
	assert.Equal(t, s.RunID, s.Task.RunID)
	assert.Equal(t, domain.ServiceTshirtSale, s.Task.ServiceType)
	assert.Equal(t, "2025-08-08", s.Task.CurrentDateISO())
	assert.Equal(t, []string{"t1", "t2", "t3"}, supplierIDs(s.Queue))

	sup, err := h.svc.Current(ctx, s)
	require.NoError(t, err)
	require.NotNil(t, sup)
	assert.Equal(t, "t1", sup.ID)
	assert.Equal(t, "Olá Ana Malhas, você tem camiseta preta tamanho GG? Qual seria o preço?", s.Question)

	res, err := h.svc.Submit(ctx, s, "tenho, R$ 39,90")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Nil(t, s.Current)
	assert.Equal(t, domain.PhaseSupplierChat, s.Phase)

	sup, err = h.svc.Current(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "t2", sup.ID)

	res, err = h.svc.Submit(ctx, s, "R$ 45 à vista")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, domain.PhaseBudget, s.Phase)
	assert.Len(t, s.Queue, 1, "t3 is never asked")

	sup, err = h.svc.Current(ctx, s)
	require.NoError(t, err)
	assert.Nil(t, sup)

	q, err := h.svc.Budget(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "Olá! Seguem as opções que atendem ao seu pedido:\n\n"+
		"- Ana Malhas • Preço: R$39,90 • Obs: pronta entrega\n"+
		"- Camisetaria Central • Preço: R$45,00 • Obs: R$ 45 à vista\n\n"+
		"Deseja seguir com alguma dessas opções ou quer que eu verifique mais fornecedores?", q.Message)
	assert.Equal(t, q.Message, s.Message)

	again, err := h.svc.Budget(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, q.ID, again.ID)

	recs, err := h.offers.ListByRun(ctx, s.RunID)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	resumed, err := h.svc.Resume(ctx, s.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseBudget, resumed.Phase)
	assert.Equal(t, q.Message, resumed.Message)
	assert.Len(t, resumed.Offers, 2)

	assert.Contains(t, h.observer.names(), "begin-negotiation")
	assert.Contains(t, h.observer.names(), "submit-answer")
}

func TestNegotiation_FaucetQueueExhaustedWithoutOffers(t *testing.T) {
	h := newNegotiationHarness(t, testutil.NewFakeLLM(), 0)
	ctx := context.Background()

	s, err := h.svc.Begin(ctx, "torneira pingando terça de manhã", friday)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceFaucetRepair, s.Task.ServiceType)
	assert.Equal(t, domain.DefaultMaxOffers, s.MaxOffers)

	asked := 0
	for {
		sup, err := h.svc.Current(ctx, s)
		require.NoError(t, err)
		if sup == nil {
			break
		}
		if asked == 0 {
			assert.Equal(t, "Olá Hidráulica Silva, você consegue consertar uma torneira pingando na terça-feira (12/08/2025) de manhã? Qual seria o preço?", s.Question)
		}
		asked++
		res, err := h.svc.Submit(ctx, s, "não consigo essa semana")
		require.NoError(t, err)
		assert.False(t, res.Accepted)
		assert.True(t, res.NeedMore)
	}

	assert.Equal(t, 4, asked)
	assert.True(t, s.Closed())
	assert.Empty(t, s.Offers)

	q, err := h.svc.Budget(ctx, s)
	require.NoError(t, err)
	assert.Contains(t, q.Message, "Nenhum fornecedor confirmou disponibilidade e preço para este pedido.")
}

func TestNegotiation_SkipAndEnd(t *testing.T) {
	h := newNegotiationHarness(t, testutil.NewFakeLLM(), 0)
	ctx := context.Background()

	s, err := h.svc.Begin(ctx, "calça jeans 42", friday)
	require.NoError(t, err)

	assert.ErrorIs(t, h.svc.Skip(ctx, s), ErrNoActiveSupplier)
	_, err = h.svc.Submit(ctx, s, "R$ 100")
	assert.ErrorIs(t, err, ErrNoActiveSupplier)

	sup, err := h.svc.Current(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "p1", sup.ID)
	require.NoError(t, h.svc.Skip(ctx, s))
	assert.Nil(t, s.Current)
	assert.Empty(t, s.Transcript)

	sup, err = h.svc.Current(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "p2", sup.ID)

	require.NoError(t, h.svc.End(ctx, s))
	assert.True(t, s.Closed())
	assert.Nil(t, s.Current)

	_, err = h.svc.Submit(ctx, s, "R$ 100")
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, h.svc.Skip(ctx, s), ErrSessionClosed)
	_, err = h.svc.FollowUp(ctx, s, "oi")
	assert.ErrorIs(t, err, ErrSessionClosed)

	stored, err := h.sessions.Load(ctx, s.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseBudget, stored.Phase)
}

func TestNegotiation_FollowUpThenSubmitUsesWholeConversation(t *testing.T) {
	fake := testutil.NewFakeLLM().On(llm.TaskInterpret, `{"can_do": true, "price": 42}`)
	h := newNegotiationHarness(t, fake, 0)
	ctx := context.Background()

	s, err := h.svc.Begin(ctx, "camiseta preta GG", friday)
	require.NoError(t, err)
	_, err = h.svc.Current(ctx, s)
	require.NoError(t, err)

	out, err := h.svc.FollowUp(ctx, s, "tenho sim")
	require.NoError(t, err)
	assert.True(t, out.Asked)
	assert.Equal(t, "Qual seria o preço?", out.Question)
	assert.Nil(t, out.Interpretation)
	require.Len(t, s.Transcript, 3)
	assert.Equal(t, domain.SpeakerAttendant, s.Transcript[2].Speaker)
	assert.Equal(t, "Qual seria o preço?", s.Question)

	res, err := h.svc.Submit(ctx, s, "R$ 42")
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	calls := fake.CallsFor(llm.TaskInterpret)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].UserPrompt, `tenho sim\nR$ 42`)
}

func TestNegotiation_FollowUpStopInterprets(t *testing.T) {
	fake := testutil.NewFakeLLM().
		On(llm.TaskFollowUp, "STOP").
		On(llm.TaskInterpret, `{"can_do": true, "price": 39.9}`)
	h := newNegotiationHarness(t, fake, 0)
	ctx := context.Background()

	s, err := h.svc.Begin(ctx, "camiseta preta GG", friday)
	require.NoError(t, err)
	_, err = h.svc.Current(ctx, s)
	require.NoError(t, err)

	out, err := h.svc.FollowUp(ctx, s, "tenho por 39,90")
	require.NoError(t, err)
	assert.False(t, out.Asked)
	require.NotNil(t, out.Interpretation)
	assert.True(t, out.Interpretation.Accepted)
	assert.Len(t, s.Offers, 1)
	assert.Nil(t, s.Current)
}

func TestNegotiation_BeginRejectsEmptyText(t *testing.T) {
	h := newNegotiationHarness(t, testutil.NewFakeLLM(), 0)

	_, err := h.svc.Begin(context.Background(), "   ", friday)
	assert.ErrorIs(t, err, ErrEmptyTask)
}

func TestNegotiation_ResumeUnknownRun(t *testing.T) {
	h := newNegotiationHarness(t, testutil.NewFakeLLM(), 0)

	_, err := h.svc.Resume(context.Background(), "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
