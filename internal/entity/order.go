package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlaced    Status = "Placed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Terminal reports whether no further transition is legal from s.
// Cancelled and Completed are both terminal for this engine.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Order struct {
	ID        string
	UserID    string
	Status    Status
	Total     decimal.Decimal // frozen at creation, never recomputed
	CreatedAt time.Time
	Items     []OrderItem
}

// OrderItem is a snapshot taken at order creation. It deliberately does not
// follow the live catalog row: later name/price edits must never alter
// historical orders.
type OrderItem struct {
	ItemID   int64
	Name     string
	Price    decimal.Decimal
	Quantity int64
}
