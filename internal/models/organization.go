package models

// Organization is the customer account an order belongs to, fetched fresh
// per record from the remote account service.
type Organization struct {
	ID          string  `json:"Id"`
	Name        string  `json:"Name"`
	Email       string  `json:"Email"`
	Balance     float64 `json:"Balance"`
	CreditLimit float64 `json:"CreditLimit"`
}
