package ptbr

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders v as Brazilian Real without a space after the symbol,
// e.g. R$1.234,50.
func FormatBRL(v float64) string {
	return "R$" + brPrinter.Sprintf("%.2f", v)
}

var thousandsOnlyRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// ParsePrice reads a price written either as a plain number ("150.5") or in
// Brazilian notation ("R$ 1.234,50").
func ParsePrice(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "R$")
	t = strings.ReplaceAll(t, " ", "")
	if t == "" {
		return 0, false
	}

	dot, comma := strings.LastIndex(t, "."), strings.LastIndex(t, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			t = strings.ReplaceAll(t, ".", "")
			t = strings.Replace(t, ",", ".", 1)
		} else {
			t = strings.ReplaceAll(t, ",", "")
		}
	case comma >= 0:
		t = strings.Replace(t, ",", ".", 1)
	case thousandsOnlyRe.MatchString(t):
		t = strings.ReplaceAll(t, ".", "")
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

var (
	digitRe     = regexp.MustCompile(`\d`)
	dateTokenRe = regexp.MustCompile(`\d{1,4}[/-]\d{1,2}(?:[/-]\d{2,4})?`)
)

// StripDateTokens removes date-like tokens (11/08, 2025-08-11) from s.
func StripDateTokens(s string) string {
	return dateTokenRe.ReplaceAllString(s, " ")
}

// MentionsPrice reports whether s carries something that reads as a price:
// a currency marker or a number that is not part of a date.
func MentionsPrice(s string) bool {
	t := Fold(s)
	if strings.Contains(t, "r$") || ContainsWord(t, "reais") || ContainsWord(t, "real") {
		return true
	}
	return digitRe.MatchString(StripDateTokens(t))
}
