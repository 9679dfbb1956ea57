package formatter

import (
	"strings"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/intelligence"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

// FormatSupplierHeading introduces the supplier being contacted.
func FormatSupplierHeading(s domain.Supplier) string {
	line := "▸ " + Bold(s.DisplayName())
	if s.Location != "" {
		line += Dim(" · " + s.Location)
	}
	if s.Notes != "" {
		line += Dim(" · " + s.Notes)
	}
	return line
}

// FormatExchange renders one transcript line, naming the supplier side
// with supplierName.
func FormatExchange(e domain.Exchange, supplierName string) string {
	if e.Speaker == domain.SpeakerAttendant {
		return StylePurple.Render("  attendant") + Dim(": ") + e.Text
	}
	return StyleBlue.Render("  "+domain.CoalesceStr(supplierName, "Fornecedor")) + Dim(": ") + e.Text
}

// FormatInterpretation reports the verdict on a supplier's reply.
func FormatInterpretation(res intelligence.Interpretation) string {
	switch {
	case res.Accepted && res.Offer != nil:
		parts := []string{"offer accepted", ptbr.FormatBRL(res.Offer.Price)}
		if res.Offer.AvailableDate != nil {
			parts = append(parts, ptbr.FormatDDMMYYYY(*res.Offer.AvailableDate))
		}
		return StyleGreen.Render("  ✔ " + strings.Join(parts, " • "))
	case res.NeedMore:
		return StyleYellow.Render("  ? no price in the reply, supplier dropped")
	default:
		return StyleRed.Render("  ✖ offer rejected")
	}
}

// FormatSkipped notes a supplier the operator passed over.
func FormatSkipped(s domain.Supplier) string {
	return Dim("  ⊘ skipped " + s.DisplayName())
}
