package domain

import "time"

// Offer is a supplier response that met the acceptance criteria.
// Price is always set; an Offer is never built without one.
type Offer struct {
	SupplierID    string     `json:"supplier_id,omitempty"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	AvailableDate *time.Time `json:"available_date,omitempty"`
	LeadTimeDays  *int       `json:"lead_time_days,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// OfferRecord is the persisted form of an accepted offer.
type OfferRecord struct {
	ID           string
	RunID        string
	SupplierID   string
	SupplierName string
	Task         Task
	Offer        Offer
	CreatedAt    time.Time
}
