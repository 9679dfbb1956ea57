package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/ptbr"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// ServiceLabel names a service type for tables and cards.
func ServiceLabel(st domain.ServiceType) string {
	switch st {
	case domain.ServiceFaucetRepair:
		return "faucet repair"
	case domain.ServiceTshirtSale:
		return "t-shirt sale"
	case domain.ServicePantsSale:
		return "pants sale"
	case "":
		return "--"
	default:
		return strings.ReplaceAll(string(st), "_", " ")
	}
}

// DateOrDash formats d as dd/mm/yyyy, or "--" when unset.
func DateOrDash(d *time.Time) string {
	if d == nil {
		return "--"
	}
	return ptbr.FormatDDMMYYYY(*d)
}

// Timestamp formats a creation time in the local zone.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Local().Format("02/01/2006 15:04")
}

// LowestPrice returns the cheapest offer price formatted as BRL, or "--".
func LowestPrice(offers []domain.Offer) string {
	if len(offers) == 0 {
		return "--"
	}
	low := offers[0].Price
	for _, o := range offers[1:] {
		if o.Price < low {
			low = o.Price
		}
	}
	return ptbr.FormatBRL(low)
}
