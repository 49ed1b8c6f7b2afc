package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            string      `json:"id"`
	TenantID      string      `json:"tenantId"`
	Items         []OrderLine `json:"items"`
	Quantity      int         `json:"quantity"`
	Total         float64     `json:"total"`
	Contact       Contact     `json:"contact"`
	Status        string      `json:"status"` // e.g., "pending", "completed", "cancelled"
	CreatedAt     time.Time   `json:"createdAt"`
	IdempotentKey string      `json:"idempotentKey,omitempty"`
}

// OrderLine is the (item, quantity, price) tuple handed to order creation.
type OrderLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateOrderRequest is the payload accepted by the order-creation collaborator.
type CreateOrderRequest struct {
	TenantID      string      `json:"tenantId"`
	Items         []OrderLine `json:"items"`
	Contact       Contact     `json:"contact"`
	IdempotentKey string      `json:"-"` // from the Idempotent-Key header
}

// CreateOrderResponse mirrors {success, error?}; Order is set on success.
type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Order   *Order `json:"order,omitempty"`
}

// LinesFromCart converts cart items to order lines, preserving order.
func LinesFromCart(items []CartItem) []OrderLine {
	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, OrderLine{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return lines
}

// LinesTotal sums price * quantity over lines.
func LinesTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

/*
Persisted under the tenant dataset key as one element of "orders":

{
	"id": "5f0c...",
	"tenantId": "acmeco",
	"items": [{"id": "sc-1", "name": "Lace front", "price": 120, "quantity": 1}],
	"quantity": 1,
	"total": 120,
	"contact": {"name": "Ada", "phone": "+15550100"},
	"status": "pending",
	"createdAt": "2026-10-18T09:00:00Z"
}
*/
