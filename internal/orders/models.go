package orders

import "time"

// CartItem is a client-submitted (product, quantity) pair before pricing.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderItem snapshots the catalog price at order time. It is never re-read
// from the catalog afterwards, so historical orders keep their totals.
type OrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// Order is immutable after creation except for its status.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Currency  string      `json:"currency"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}
