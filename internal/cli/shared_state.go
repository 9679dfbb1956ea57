package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/cotador/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App
	Ctx context.Context

	// Run under negotiation; nil until the task form is submitted.
	Session *domain.Session
	Quote   *domain.Quote

	// Reference date for relative dates in the request.
	Today time.Time

	// Terminal dimensions
	Width  int
	Height int
}

func (s *SharedState) context() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

// ContentHeight returns the rows left for a view after the header
// (title + separator) and the status bar (separator + hints).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-4, 1)
}
