package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

// catalogLine is a product row as read, and locked, inside the checkout
// transaction.
type catalogLine struct {
	productID uuid.UUID
	name      string
	price     float64
	stock     uint
}

type pricedItem struct {
	productID uuid.UUID
	name      string
	quantity  uint
	price     float64
}

// priceOrder validates every requested item against the locked catalog rows
// and prices it with the server's authoritative price. It fails before any
// state is touched, so a single bad line rejects the whole order: either
// every item is pricable and in stock, or nothing is.
func priceOrder(catalog map[uuid.UUID]*catalogLine, items []OrderItemRequest) ([]*pricedItem, float64, error) {
	// remaining guards against one request naming the same product on
	// several lines and passing each line's stock check in isolation.
	remaining := make(map[uuid.UUID]uint, len(catalog))
	for productID, line := range catalog {
		remaining[productID] = line.stock
	}

	pricedItems := make([]*pricedItem, 0, len(items))
	var total float64

	for _, item := range items {
		line, exists := catalog[item.ProductID]
		if !exists {
			return nil, 0, fmt.Errorf(
				"%w: %s",
				servererrors.ErrProductNotFound,
				item.ProductID,
			)
		}

		if remaining[item.ProductID] < item.Quantity {
			return nil, 0, fmt.Errorf(
				"%w for '%s': requested %d, available %d",
				servererrors.ErrInsufficientStock,
				line.name,
				item.Quantity,
				remaining[item.ProductID],
			)
		}
		remaining[item.ProductID] -= item.Quantity

		pricedItems = append(pricedItems, &pricedItem{
			productID: line.productID,
			name:      line.name,
			quantity:  item.Quantity,
			price:     line.price,
		})

		total += line.price * float64(item.Quantity)
	}

	return pricedItems, total, nil
}
