package service

import (
	"strings"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

const (
	budgetIntro   = "Olá! Seguem as opções que atendem ao seu pedido:"
	budgetOutro   = "Deseja seguir com alguma dessas opções ou quer que eu verifique mais fornecedores?"
	budgetNoOffer = "Nenhum fornecedor confirmou disponibilidade e preço para este pedido."
)

// RenderBudget writes the message sent back to the customer.
func RenderBudget(task domain.Task, offers []domain.Offer) string {
	lines := make([]string, 0, len(offers))
	for _, o := range offers {
		lines = append(lines, budgetLine(task, o))
	}
	block := strings.Join(lines, "\n")
	if len(lines) == 0 {
		block = budgetNoOffer
	}
	return budgetIntro + "\n\n" + block + "\n\n" + budgetOutro
}

func budgetLine(task domain.Task, o domain.Offer) string {
	parts := []string{
		domain.CoalesceStr(o.Name, "Fornecedor"),
		"Preço: " + ptbr.FormatBRL(o.Price),
	}
	date := task.DesiredDate
	if date == nil {
		date = o.AvailableDate
	}
	if date != nil {
		parts = append(parts, "Data: "+ptbr.FormatDDMMYYYY(*date))
	}
	if label := ptbr.BudgetWindowLabel(task.TimeWindow); label != "" {
		parts = append(parts, label)
	}
	if notes := strings.TrimSpace(o.Notes); notes != "" {
		parts = append(parts, "Obs: "+notes)
	}
	return "- " + strings.Join(parts, " • ")
}
