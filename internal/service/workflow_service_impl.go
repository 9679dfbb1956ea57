package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/intelligence"
)

type workflowService struct {
	classifier  intelligence.Classifier
	normalizers map[domain.Category]intelligence.Normalizer
	lookup      LookupService
	observer    UseCaseObserver
}

// NewWorkflowService wires the classifier, one normalizer per category and
// the supplier lookup.
func NewWorkflowService(
	classifier intelligence.Classifier,
	manual, clothing intelligence.Normalizer,
	lookup LookupService,
	observers ...UseCaseObserver,
) WorkflowService {
	return &workflowService{
		classifier: classifier,
		normalizers: map[domain.Category]intelligence.Normalizer{
			domain.CategoryManual:   manual,
			domain.CategoryClothing: clothing,
		},
		lookup:   lookup,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (w *workflowService) Normalize(ctx context.Context, text string, today *time.Time) (intelligence.Classification, domain.Task) {
	c := w.classifier.Classify(ctx, text)
	n, ok := w.normalizers[c.Category]
	if !ok {
		n = w.normalizers[domain.CategoryManual]
	}
	return c, n.Normalize(ctx, text, today)
}

func (w *workflowService) Prepare(ctx context.Context, text string, today *time.Time) (domain.Task, []domain.Supplier) {
	var err error
	fields := map[string]any{}
	defer observe(ctx, w.observer, "prepare", fields, &err)()

	c, task := w.Normalize(ctx, text, today)
	suppliers := w.Suppliers(ctx, task)

	fields["category"] = string(c.Category)
	fields["service_type"] = string(task.ServiceType)
	fields["suppliers"] = len(suppliers)
	return task, suppliers
}

func (w *workflowService) Suppliers(ctx context.Context, task domain.Task) []domain.Supplier {
	return w.lookup.Lookup(ctx, task)
}
