package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/cotador/internal/domain"
)

var supplierCounter atomic.Int64

// Date returns midnight UTC of the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date returning a pointer.
func DatePtr(y int, m time.Month, d int) *time.Time {
	t := Date(y, m, d)
	return &t
}

// Supplier options
type SupplierOption func(*domain.Supplier)

func WithLocation(loc string) SupplierOption {
	return func(s *domain.Supplier) { s.Location = loc }
}

func WithSupplierNotes(n string) SupplierOption {
	return func(s *domain.Supplier) { s.Notes = n }
}

func WithSupplierID(id string) SupplierOption {
	return func(s *domain.Supplier) { s.ID = id }
}

func NewTestSupplier(name string, st domain.ServiceType, opts ...SupplierOption) domain.Supplier {
	s := domain.Supplier{
		ID:          fmt.Sprintf("s%03d", supplierCounter.Add(1)),
		Name:        name,
		ServiceType: st,
		Location:    "Centro",
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithDesiredDate(d time.Time) TaskOption {
	return func(t *domain.Task) { t.DesiredDate = &d }
}

func WithTimeWindow(w domain.TimeWindow) TaskOption {
	return func(t *domain.Task) { t.TimeWindow = w }
}

func WithColor(c string) TaskOption {
	return func(t *domain.Task) { t.Color = c }
}

func WithSize(s string) TaskOption {
	return func(t *domain.Task) { t.Size = s }
}

func WithCurrentDate(d time.Time) TaskOption {
	return func(t *domain.Task) { t.CurrentDate = &d }
}

func WithRunID(id string) TaskOption {
	return func(t *domain.Task) { t.RunID = id }
}

func NewTestTask(text string, st domain.ServiceType, opts ...TaskOption) domain.Task {
	t := domain.Task{
		RunID:       uuid.New().String(),
		Text:        text,
		Description: text,
		Category:    st.Category(),
		ServiceType: st,
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

// Offer options
type OfferOption func(*domain.Offer)

func WithAvailableDate(d time.Time) OfferOption {
	return func(o *domain.Offer) { o.AvailableDate = &d }
}

func WithOfferNotes(n string) OfferOption {
	return func(o *domain.Offer) { o.Notes = n }
}

func NewTestOffer(name string, price float64, opts ...OfferOption) domain.Offer {
	o := domain.Offer{Name: name, Price: price}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
