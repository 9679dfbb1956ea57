package ptbr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cotador/internal/domain"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseDate(t *testing.T) {
	// 2025-08-08 is a Friday.
	ref := day(2025, time.August, 8)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"iso", "pode ser 2025-08-11?", "2025-08-11"},
		{"iso with slashes", "2025/8/11", "2025-08-11"},
		{"dd/mm", "consigo dia 11/08", "2025-08-11"},
		{"dd/mm/yy", "11/08/26", "2026-08-11"},
		{"mm/dd when second exceeds twelve", "08/25/2025", "2025-08-25"},
		{"depois de amanha", "depois de amanhã cedo", "2025-08-10"},
		{"amanha without accent", "amanha", "2025-08-09"},
		{"hoje", "Hoje à tarde", "2025-08-08"},
		{"weekday", "na terça", "2025-08-12"},
		{"weekday abbreviation", "consigo na seg", "2025-08-11"},
		{"weekday abbreviation with period", "entrego qua.", "2025-08-13"},
		{"same weekday moves a week", "sexta-feira", "2025-08-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.text, ref)
			require.True(t, ok)
			assert.Equal(t, tt.want, domain.FormatISODate(got))
		})
	}
}

func TestParseDate_RelativeNeedsReference(t *testing.T) {
	_, ok := ParseDate("amanhã", nil)
	assert.False(t, ok)

	_, ok = ParseDate("sem data nenhuma", day(2025, time.August, 8))
	assert.False(t, ok)
}

func TestParseDate_InvalidCalendarDateFallsThrough(t *testing.T) {
	_, ok := ParseDate("31/02/2025", nil)
	assert.False(t, ok)
}

func TestParseDate_ShortWeekdayNeedsDateContext(t *testing.T) {
	ref := day(2025, time.August, 8)
	for _, text := range []string{
		"Posso ter a peça, sai por 80 reais",
		"camiseta de sex shop? não trabalho com isso",
		"qua qua qua",
	} {
		_, ok := ParseDate(text, ref)
		assert.False(t, ok, text)
	}
}

func TestFormatDDMMYYYY(t *testing.T) {
	for _, iso := range []string{"2025-01-02", "1999-12-31", "2030-06-15"} {
		d, err := time.Parse(domain.DateLayout, iso)
		require.NoError(t, err)
		out := FormatDDMMYYYY(d)
		assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, out)
	}
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "segunda-feira", WeekdayName(*day(2025, time.August, 11)))
	assert.Equal(t, "sábado", WeekdayName(*day(2025, time.August, 9)))
}
