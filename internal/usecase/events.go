package usecase

import "time"

// OrderEventMsg is published on the order.events exchange after a
// lifecycle transition commits.
type OrderEventMsg struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StockAdjustedMsg is consumed from the warehouse Kafka topic. Delta is
// relative: positive for replenishment, negative for shrinkage.
type StockAdjustedMsg struct {
	ItemID int64  `json:"itemId"`
	Delta  int64  `json:"delta"`
	Reason string `json:"reason,omitempty"`
}
