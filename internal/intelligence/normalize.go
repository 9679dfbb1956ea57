package intelligence

import (
	"context"
	"time"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

// Normalizer turns free task text into a structured Task. Every field of
// the result is set, possibly to its zero value, and ServiceType is always
// one valid type.
type Normalizer interface {
	Normalize(ctx context.Context, text string, ref *time.Time) domain.Task
}

// resolveDesiredDate prefers a valid ISO date from the model and otherwise
// reads the date from the text relative to ref.
func resolveDesiredDate(llmDate *string, text string, ref *time.Time) *time.Time {
	if llmDate != nil {
		if d, ok := domain.ParseISODate(*llmDate); ok {
			return d
		}
	}
	if d, ok := ptbr.ParseDate(text, ref); ok {
		return d
	}
	return nil
}

func strOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
