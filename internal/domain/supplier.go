package domain

// Supplier is a read-only directory record seeded from the fixture file.
type Supplier struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ServiceType ServiceType `json:"service_type"`
	Location    string      `json:"location,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// DisplayName falls back to a generic label for unnamed records.
func (s Supplier) DisplayName() string {
	return CoalesceStr(s.Name, "Fornecedor")
}
