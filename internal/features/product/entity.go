package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog row. Stock lives on the row itself and is only ever
// decremented inside the checkout transaction. Sizes is a delimited string
// like "xs,s,m"; IsUnique marks one-of-a-kind pieces the client should not
// render a quantity selector for.
type Product struct {
	ProductID        uuid.UUID `json:"productID"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription"`
	ImageURL         string    `json:"imageURL"`
	Category         string    `json:"category"`
	Stock            uint      `json:"stock"`
	Sizes            string    `json:"sizes"`
	IsUnique         bool      `json:"isUnique"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"-"`
}
