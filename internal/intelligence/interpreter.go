package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

// Interpretation is the verdict on one supplier reply.
type Interpretation struct {
	Accepted bool          `json:"accepted"`
	NeedMore bool          `json:"need_more"`
	Offer    *domain.Offer `json:"offer,omitempty"`
}

// Interpreter decides whether a supplier reply is an acceptable offer.
type Interpreter interface {
	Interpret(ctx context.Context, task domain.Task, supplier domain.Supplier, answer string) Interpretation
}

// OfferSink stores accepted offers.
type OfferSink interface {
	Create(ctx context.Context, rec *domain.OfferRecord) error
}

type interpretation struct {
	CanDo           bool    `json:"can_do"`
	MeetsDate       *bool   `json:"meets_date"`
	MeetsTimeWindow *bool   `json:"meets_time_window"`
	Price           any     `json:"price"`
	SupplierDate    *string `json:"supplier_date"`
	Notes           *string `json:"notes"`
}

// price reads the model's price as a number or a numeric string.
func (i interpretation) price() (float64, bool) {
	switch v := i.Price.(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return v, true
	case string:
		return ptbr.ParsePrice(v)
	}
	return 0, false
}

type interpreter struct {
	client llm.LLMClient
	offers OfferSink
	log    *zap.Logger
	now    func() time.Time
}

// NewInterpreter creates an Interpreter. Accepted offers are written to
// offers when it is non-nil.
func NewInterpreter(client llm.LLMClient, offers OfferSink, log *zap.Logger) Interpreter {
	return &interpreter{
		client: client,
		offers: offers,
		log:    orNop(log),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (it *interpreter) Interpret(ctx context.Context, task domain.Task, supplier domain.Supplier, answer string) Interpretation {
	data, err := it.extract(ctx, task, supplier, answer)
	if err != nil {
		it.log.Warn("interpreter fallback", zap.Error(err), zap.String("supplier", supplier.ID))
		data = interpretation{CanDo: false}
	}

	price, hasPrice := data.price()
	canDo := data.CanDo
	if task.DesiredDate != nil {
		canDo = canDo && data.MeetsDate != nil && *data.MeetsDate
	}
	if task.TimeWindow != domain.WindowNone {
		canDo = canDo && data.MeetsTimeWindow != nil && *data.MeetsTimeWindow
	}
	if !canDo || !hasPrice {
		return Interpretation{NeedMore: true}
	}

	offer := &domain.Offer{
		SupplierID:    supplier.ID,
		Name:          supplier.DisplayName(),
		Price:         price,
		AvailableDate: it.availableDate(task, data, answer),
		Notes:         strOr(data.Notes, answer),
	}
	it.record(ctx, task, supplier, offer)
	return Interpretation{Accepted: true, Offer: offer}
}

func (it *interpreter) availableDate(task domain.Task, data interpretation, answer string) *time.Time {
	if task.DesiredDate != nil {
		d := *task.DesiredDate
		return &d
	}
	src := strOr(data.SupplierDate, answer)
	if d, ok := ptbr.ParseDate(src, task.CurrentDate); ok {
		return d
	}
	return nil
}

func (it *interpreter) record(ctx context.Context, task domain.Task, supplier domain.Supplier, offer *domain.Offer) {
	if it.offers == nil {
		return
	}
	rec := &domain.OfferRecord{
		ID:           uuid.New().String(),
		RunID:        task.RunID,
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Task:         task,
		Offer:        *offer,
		CreatedAt:    it.now(),
	}
	if err := it.offers.Create(ctx, rec); err != nil {
		it.log.Warn("offer not persisted", zap.Error(err), zap.String("run_id", task.RunID))
	}
}

func (it *interpreter) extract(ctx context.Context, task domain.Task, supplier domain.Supplier, answer string) (interpretation, error) {
	payload, err := json.Marshal(map[string]any{
		"task": map[string]string{
			"service_type": string(task.ServiceType),
			"description":  task.Description,
			"desired_date": task.DesiredDateISO(),
			"time_window":  string(task.TimeWindow),
			"location":     task.Location,
			"color":        task.Color,
			"size":         task.Size,
		},
		"supplier": map[string]string{"name": supplier.Name, "id": supplier.ID},
		"answer":   answer,
	})
	if err != nil {
		return interpretation{}, err
	}
	out, err := llm.Ask(ctx, it.client, llm.TaskInterpret, interpretSystemPrompt, string(payload))
	if err != nil {
		return interpretation{}, err
	}
	return llm.ExtractJSON[interpretation](out, interpretSchema, nil)
}
