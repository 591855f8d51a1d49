package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusCreated = "created"
	StatusPaid    = "paid"
)

type Order struct {
	OrderID       uuid.UUID   `json:"orderID"`
	Total         float64     `json:"total"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	PostalCode    string      `json:"postalCode"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots name and price at order time so repricing or deleting
// a product never rewrites order history. ProductID is uuid.Nil once the
// referenced product has been deleted.
type OrderItem struct {
	OrderItemID uuid.UUID `json:"orderItemID"`
	OrderID     uuid.UUID `json:"orderID"`
	ProductID   uuid.UUID `json:"productID"`
	ProductName string    `json:"productName"`
	Quantity    uint      `json:"quantity"`
	Price       float64   `json:"price"`
}
