package order

import (
	"github.com/google/uuid"
)

// Requests

// OrderItemRequest deliberately has no price field: whatever the client
// paid on its own screen is irrelevant, items are re-priced from the
// catalog inside the checkout transaction.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productID" validate:"required"`
	Quantity  uint      `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail" validate:"omitempty,email"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	PostalCode    string             `json:"postalCode"`
}
