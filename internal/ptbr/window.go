package ptbr

import (
	"strings"

	"github.com/alexanderramin/cotador/internal/domain"
)

// InferTimeWindow maps period words in text to a time window. Words match
// whole so "amanhã" alone does not read as morning.
func InferTimeWindow(text string) domain.TimeWindow {
	t := Fold(text)
	switch {
	case containsWordAny(t, "manha", "cedo"):
		return domain.WindowMorning
	case containsWordAny(t, "tarde"):
		return domain.WindowAfternoon
	case containsWordAny(t, "noite") || containsAny(t, "final do dia", "fim do dia"):
		return domain.WindowEvening
	}
	return domain.WindowNone
}

// QuestionWindowLabel is the phrasing used when asking a supplier.
func QuestionWindowLabel(w domain.TimeWindow) string {
	switch w {
	case domain.WindowMorning:
		return "de manhã"
	case domain.WindowAfternoon:
		return "à tarde"
	case domain.WindowEvening:
		return "à noite"
	}
	return ""
}

// BudgetWindowLabel is the phrasing used in the budget lines.
func BudgetWindowLabel(w domain.TimeWindow) string {
	switch w {
	case domain.WindowMorning:
		return "pela manhã"
	case domain.WindowAfternoon:
		return "à tarde"
	case domain.WindowEvening:
		return "à noite"
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsWordAny(s string, words ...string) bool {
	for _, w := range words {
		if ContainsWord(s, w) {
			return true
		}
	}
	return false
}
