package models

// Inventory is one catalog product. The catalog is used as a read-only
// lookup table keyed by product id to resolve line-item display names.
type Inventory struct {
	ProductID string `json:"ProductId"`
	Name      string `json:"Name"`
}
