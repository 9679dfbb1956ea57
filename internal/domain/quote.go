package domain

import "time"

// Quote aggregates a run's task, its accepted offers and the rendered message.
type Quote struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Task      Task      `json:"task"`
	Offers    []Offer   `json:"offers"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
