package event

import "github.com/google/uuid"

var (
	CatalogProductUpdatedEventName EventName = "catalog.product.updated"
	CatalogProductDeletedEventName EventName = "catalog.product.deleted"
)

// CatalogProductUpdatedEvent is published after any admin write to a product
// row, including stock restocks.
type CatalogProductUpdatedEvent struct {
	ProductID uuid.UUID
	Category  string
}

func (e *CatalogProductUpdatedEvent) GetEventName() EventName {
	return CatalogProductUpdatedEventName
}

type CatalogProductDeletedEvent struct {
	ProductID uuid.UUID
	Category  string
}

func (e *CatalogProductDeletedEvent) GetEventName() EventName {
	return CatalogProductDeletedEventName
}
