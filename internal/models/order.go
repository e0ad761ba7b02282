package models

import (
	"time"
)

// Order represents a customer order placed against one restaurant
type Order struct {
	ID                string                 `json:"id"`
	Items             []LineItem             `json:"items"`
	Restaurant        string                 `json:"restaurant"`
	CustomerInfo      map[string]interface{} `json:"customerInfo"`
	Status            OrderStatus            `json:"status"`
	OrderTime         time.Time              `json:"orderTime"`
	EstimatedDelivery time.Time              `json:"estimatedDelivery"`
	Total             float64                `json:"total"`
}

// LineItem represents an item in an order
type LineItem struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
}

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// orderLifecycle is the only path an order may take.
var orderLifecycle = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// OrderLifecycle returns the ordered list of statuses an order moves through
func OrderLifecycle() []OrderStatus {
	out := make([]OrderStatus, len(orderLifecycle))
	copy(out, orderLifecycle)
	return out
}

// Rank returns the position of the status in the lifecycle, or -1 if unknown
func (s OrderStatus) Rank() int {
	for i, st := range orderLifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the status following s and false when s is terminal or unknown
func (s OrderStatus) Next() (OrderStatus, bool) {
	r := s.Rank()
	if r < 0 || r == len(orderLifecycle)-1 {
		return "", false
	}
	return orderLifecycle[r+1], true
}

// IsTerminal reports whether no further transition exists
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// CanAdvanceTo reports whether moving from s to next keeps the lifecycle forward-only.
// Re-applying the current status is allowed and has no effect.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, to := s.Rank(), next.Rank()
	if from < 0 || to < 0 {
		return false
	}
	return to == from || to == from+1
}
