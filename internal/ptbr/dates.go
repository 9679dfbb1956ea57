package ptbr

import (
	"regexp"
	"slices"
	"strconv"
	"time"
)

var weekdayNames = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// WeekdayName returns the full pt-BR weekday name of d.
func WeekdayName(d time.Time) string {
	return weekdayNames[d.Weekday()]
}

// weekdayTokens is scanned in order; the first token present wins. Short
// tokens are also common words ("ter", "sex") and only count after a date
// preposition ("na ter") or with a trailing period ("ter.").
var weekdayTokens = []struct {
	token string
	day   time.Weekday
	short bool
}{
	{"segunda", time.Monday, false}, {"segunda-feira", time.Monday, false}, {"seg", time.Monday, true},
	{"terca", time.Tuesday, false}, {"terca-feira", time.Tuesday, false}, {"ter", time.Tuesday, true},
	{"quarta", time.Wednesday, false}, {"quarta-feira", time.Wednesday, false}, {"qua", time.Wednesday, true},
	{"quinta", time.Thursday, false}, {"quinta-feira", time.Thursday, false}, {"qui", time.Thursday, true},
	{"sexta", time.Friday, false}, {"sexta-feira", time.Friday, false}, {"sex", time.Friday, true},
	{"sabado", time.Saturday, false}, {"sab", time.Saturday, true},
	{"domingo", time.Sunday, false}, {"dom", time.Sunday, true},
}

var shortWeekdayRe = regexp.MustCompile(`(?:\b(?:na|no|dia|ate|para|pra|prox|proxima)\s+(seg|ter|qua|qui|sex|sab|dom)\b|\b(seg|ter|qua|qui|sex|sab|dom)\.)`)

var (
	isoDateRe     = regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
)

// FormatDDMMYYYY renders d as DD/MM/YYYY.
func FormatDDMMYYYY(d time.Time) string {
	return d.Format("02/01/2006")
}

// ParseDate extracts a calendar date from free text. It understands ISO
// dates, dd/mm[/yy|yyyy] (read as mm/dd when the second number exceeds 12)
// and, when ref is known, "hoje", "amanhã", "depois de amanhã" and weekday
// names, which resolve to the next occurrence after ref.
func ParseDate(text string, ref *time.Time) (*time.Time, bool) {
	t := Fold(text)

	if m := isoDateRe.FindStringSubmatch(t); m != nil {
		if d, ok := safeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return &d, true
		}
	}

	if m := numericDateRe.FindStringSubmatch(t); m != nil {
		a, b := atoi(m[1]), atoi(m[2])
		var year int
		switch {
		case m[3] != "":
			year = atoi(m[3])
			if year < 100 {
				year += 2000
			}
		case ref != nil:
			year = ref.Year()
		default:
			year = time.Now().Year()
		}
		day, month := a, b
		if b > 12 && a <= 12 {
			day, month = b, a
		}
		if d, ok := safeDate(year, month, day); ok {
			return &d, true
		}
	}

	return relativeDate(t, ref)
}

func relativeDate(folded string, ref *time.Time) (*time.Time, bool) {
	if ref == nil {
		return nil, false
	}
	base := dateOnly(*ref)
	var d time.Time
	switch {
	case containsAny(folded, "depois de amanha"):
		d = base.AddDate(0, 0, 2)
	case containsAny(folded, "amanha"):
		d = base.AddDate(0, 0, 1)
	case containsAny(folded, "hoje"):
		d = base
	default:
		wd, ok := findWeekday(folded)
		if !ok {
			return nil, false
		}
		d = NextWeekday(base, wd)
	}
	return &d, true
}

// NextWeekday returns the next date after base falling on wd. A base that
// already is wd moves a full week ahead.
func NextWeekday(base time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(base.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return base.AddDate(0, 0, delta)
}

func findWeekday(folded string) (time.Weekday, bool) {
	var short []string
	for _, m := range shortWeekdayRe.FindAllStringSubmatch(folded, -1) {
		short = append(short, m[1]+m[2])
	}
	for _, w := range weekdayTokens {
		if w.short {
			if slices.Contains(short, w.token) {
				return w.day, true
			}
			continue
		}
		if ContainsWord(folded, w.token) {
			return w.day, true
		}
	}
	return time.Sunday, false
}

func safeDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
