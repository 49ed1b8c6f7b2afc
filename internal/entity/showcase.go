package entity

import "github.com/shopspring/decimal"

// ShowcaseItem is a publishable product record. Published items are
// visible read-only on the public showcase page.
type ShowcaseItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Published   bool    `json:"published"`
}

// CartItem is a showcase item together with the quantity a visitor wants.
type CartItem struct {
	ShowcaseItem
	Quantity int `json:"quantity"`
}

// Subtotal returns price * quantity without float drift.
func (c CartItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(c.Price).Mul(decimal.NewFromInt(int64(c.Quantity)))
}
