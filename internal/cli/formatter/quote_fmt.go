package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

const requestWidth = 40

// FormatSupplierList renders the supplier directory as a boxed table.
func FormatSupplierList(suppliers []domain.Supplier) string {
	headers := []string{"ID", "NAME", "SERVICE", "LOCATION", "NOTES"}
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []string{
			s.ID,
			Bold(s.DisplayName()),
			ServiceLabel(s.ServiceType),
			domain.CoalesceStr(s.Location, "--"),
			Dim(s.Notes),
		})
	}
	return RenderBox("Suppliers", RenderTable(headers, rows))
}

// FormatQuoteList renders stored quotes, newest first as given.
func FormatQuoteList(quotes []domain.Quote) string {
	headers := []string{"RUN", "SERVICE", "REQUEST", "OFFERS", "LOWEST", "CREATED"}
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		offers := Dim("0")
		if n := len(q.Offers); n > 0 {
			offers = StyleGreen.Render(fmt.Sprint(n))
		}
		rows = append(rows, []string{
			q.RunID,
			ServiceLabel(q.Task.ServiceType),
			truncate(q.Task.Text, requestWidth),
			offers,
			LowestPrice(q.Offers),
			Timestamp(q.CreatedAt),
		})
	}
	return RenderBox("Quotes", RenderTable(headers, rows))
}

// FormatTaskCard summarizes the normalized task on one line.
func FormatTaskCard(t domain.Task) string {
	parts := []string{StylePurple.Render(ServiceLabel(t.ServiceType))}
	if t.DesiredDate != nil {
		parts = append(parts, ptbr.FormatDDMMYYYY(*t.DesiredDate))
	}
	if label := ptbr.BudgetWindowLabel(t.TimeWindow); label != "" {
		parts = append(parts, label)
	}
	if t.Color != "" {
		parts = append(parts, t.Color)
	}
	if t.Size != "" {
		parts = append(parts, "tam. "+t.Size)
	}
	return strings.Join(parts, Dim(" · "))
}

// QuoteMarkdown lays out a quote for RenderMarkdown. Persisted offer records
// are listed when present, otherwise the offers embedded in the quote.
func QuoteMarkdown(q domain.Quote, records []domain.OfferRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quote %s\n\n", q.RunID)
	fmt.Fprintf(&b, "- **Request:** %s\n", mdCell(q.Task.Text))
	fmt.Fprintf(&b, "- **Service:** %s\n", ServiceLabel(q.Task.ServiceType))
	if q.Task.DesiredDate != nil {
		fmt.Fprintf(&b, "- **Date:** %s\n", ptbr.FormatDDMMYYYY(*q.Task.DesiredDate))
	}
	if label := ptbr.BudgetWindowLabel(q.Task.TimeWindow); label != "" {
		fmt.Fprintf(&b, "- **Window:** %s\n", label)
	}
	if q.Task.Color != "" || q.Task.Size != "" {
		fmt.Fprintf(&b, "- **Item:** %s\n", strings.TrimSpace(q.Task.Color+" "+q.Task.Size))
	}
	if !q.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Created:** %s\n", Timestamp(q.CreatedAt))
	}

	offers := q.Offers
	if len(records) > 0 {
		offers = make([]domain.Offer, 0, len(records))
		for _, r := range records {
			o := r.Offer
			o.Name = domain.CoalesceStr(r.SupplierName, o.Name)
			offers = append(offers, o)
		}
	}

	b.WriteString("\n## Offers\n\n")
	if len(offers) == 0 {
		b.WriteString("_No offers accepted._\n")
	} else {
		b.WriteString("| Supplier | Price | Date | Notes |\n|---|---|---|---|\n")
		for _, o := range offers {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				mdCell(domain.CoalesceStr(o.Name, "Fornecedor")),
				ptbr.FormatBRL(o.Price),
				mdCell(DateOrDash(o.AvailableDate)),
				mdCell(o.Notes))
		}
	}

	if q.Message != "" {
		b.WriteString("\n## Message\n\n")
		b.WriteString(mdQuote(q.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
