package event

import "github.com/google/uuid"

const (
	OrderPlacedEventName EventName = "order.placed"
)

// OrderPlacedEvent is published after the checkout transaction commits.
// ProductIDs carries every product whose stock the order decremented.
type OrderPlacedEvent struct {
	OrderID    uuid.UUID
	ProductIDs []uuid.UUID
}

func (e *OrderPlacedEvent) GetEventName() EventName {
	return OrderPlacedEventName
}
