package domain

import "time"

// DateLayout is the ISO calendar date layout used for task and offer dates.
const DateLayout = "2006-01-02"

// Task is the structured form of the user's request. Fields are filled
// additively by the classifier, the normalizers and the session.
type Task struct {
	RunID       string      `json:"run_id,omitempty"`
	Text        string      `json:"task_text"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	ServiceType ServiceType `json:"service_type"`
	DesiredDate *time.Time  `json:"desired_date,omitempty"`
	TimeWindow  TimeWindow  `json:"time_window,omitempty"`
	Color       string      `json:"color,omitempty"`
	Size        string      `json:"size,omitempty"`
	Location    string      `json:"location,omitempty"`
	CurrentDate *time.Time  `json:"current_date,omitempty"`
}

// DesiredDateISO returns the desired date as YYYY-MM-DD, or "" when unset.
func (t Task) DesiredDateISO() string {
	return FormatISODate(t.DesiredDate)
}

// CurrentDateISO returns the reference date as YYYY-MM-DD, or "" when unset.
func (t Task) CurrentDateISO() string {
	return FormatISODate(t.CurrentDate)
}

func FormatISODate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// ParseISODate parses YYYY-MM-DD strictly. Empty input yields nil.
func ParseISODate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, false
	}
	return &d, true
}
