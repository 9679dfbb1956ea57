package ptbr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/cotador/internal/domain"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "calca preta", Fold("Calça PRETA"))
	assert.Equal(t, "hidraulico amanha", Fold("hidráulico amanhã"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("registro da pia vazando", "pia"))
	assert.True(t, ContainsWord("pia, vazando", "pia"))
	assert.False(t, ContainsWord("copiando", "pia"))
	assert.False(t, ContainsWord("decoracao", "cor"))
	assert.True(t, ContainsWord("qual a cor?", "cor"))
}

func TestInferTimeWindow(t *testing.T) {
	assert.Equal(t, domain.WindowMorning, InferTimeWindow("amanhã de manhã"))
	assert.Equal(t, domain.WindowMorning, InferTimeWindow("bem cedo"))
	assert.Equal(t, domain.WindowAfternoon, InferTimeWindow("à tarde"))
	assert.Equal(t, domain.WindowEvening, InferTimeWindow("no fim do dia"))
	assert.Equal(t, domain.WindowNone, InferTimeWindow("quando puder"))
}

func TestWindowLabels(t *testing.T) {
	assert.Equal(t, "de manhã", QuestionWindowLabel(domain.WindowMorning))
	assert.Equal(t, "pela manhã", BudgetWindowLabel(domain.WindowMorning))
	assert.Equal(t, "à noite", BudgetWindowLabel(domain.WindowEvening))
	assert.Empty(t, BudgetWindowLabel(domain.WindowNone))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$150,00", FormatBRL(150))
	assert.Equal(t, "R$1.234,50", FormatBRL(1234.5))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"150", 150, true},
		{"150.5", 150.5, true},
		{"R$ 1.234,50", 1234.5, true},
		{"1,234.50", 1234.5, true},
		{"89,90", 89.9, true},
		{"1.200", 1200, true},
		{"", 0, false},
		{"a combinar", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
		{"+Infinity", 0, false},
		{"1e999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 0.001, tt.in)
	}
}

func TestInferTimeWindow_AmanhaIsNotMorning(t *testing.T) {
	assert.Equal(t, domain.WindowNone, InferTimeWindow("preciso para amanhã"))
}

func TestMentionsPrice(t *testing.T) {
	assert.True(t, MentionsPrice("faço por 150"))
	assert.True(t, MentionsPrice("cinquenta reais"))
	assert.True(t, MentionsPrice("R$ 80,00"))
	assert.False(t, MentionsPrice("consigo dia 11/08 de manhã"))
	assert.False(t, MentionsPrice("sim, consigo"))
}

func TestStripDateTokens(t *testing.T) {
	assert.Equal(t, "tamanho 42 para  ", StripDateTokens("tamanho 42 para 11/08"))
}
