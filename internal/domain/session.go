package domain

import "time"

type Speaker string

const (
	SpeakerAttendant Speaker = "attendant"
	SpeakerSupplier  Speaker = "supplier"
)

// Exchange is one message in the conversation with the current supplier.
type Exchange struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is the operator-driven negotiation state for one run.
type Session struct {
	RunID      string     `json:"run_id"`
	Phase      Phase      `json:"phase"`
	Task       Task       `json:"task"`
	Queue      []Supplier `json:"queue"`
	Current    *Supplier  `json:"current,omitempty"`
	Question   string     `json:"question,omitempty"`
	Transcript []Exchange `json:"transcript,omitempty"`
	Offers     []Offer    `json:"offers"`
	MaxOffers  int        `json:"max_offers"`
	Message    string     `json:"message,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Closed reports whether the session reached the budget phase.
func (s *Session) Closed() bool {
	return s.Phase == PhaseBudget
}

// OfferLimitReached reports whether enough offers were collected to stop asking.
func (s *Session) OfferLimitReached() bool {
	limit := s.MaxOffers
	if limit <= 0 {
		limit = DefaultMaxOffers
	}
	return len(s.Offers) >= limit
}

// ClearCurrent drops the supplier under negotiation and its conversation.
func (s *Session) ClearCurrent() {
	s.Current = nil
	s.Question = ""
	s.Transcript = nil
}

// SupplierReplies returns the supplier side of the current transcript.
func (s *Session) SupplierReplies() []string {
	var out []string
	for _, e := range s.Transcript {
		if e.Speaker == SpeakerSupplier {
			out = append(out, e.Text)
		}
	}
	return out
}
