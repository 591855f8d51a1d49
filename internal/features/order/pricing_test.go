package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

func testCatalog(lines ...*catalogLine) map[uuid.UUID]*catalogLine {
	catalog := make(map[uuid.UUID]*catalogLine, len(lines))
	for _, line := range lines {
		catalog[line.productID] = line
	}
	return catalog
}

func TestPriceOrderUsesCatalogPrices(t *testing.T) {
	shirtID := uuid.New()
	mugID := uuid.New()

	catalog := testCatalog(
		&catalogLine{productID: shirtID, name: "shirt", price: 50, stock: 10},
		&catalogLine{productID: mugID, name: "mug", price: 12.5, stock: 4},
	)

	pricedItems, total, err := priceOrder(catalog, []OrderItemRequest{
		{ProductID: shirtID, Quantity: 2},
		{ProductID: mugID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, pricedItems, 2)
	assert.Equal(t, 50.0, pricedItems[0].price)
	assert.Equal(t, "shirt", pricedItems[0].name)
	assert.Equal(t, 12.5, pricedItems[1].price)
	assert.Equal(t, 112.5, total)
}

func TestPriceOrderUnknownProduct(t *testing.T) {
	shirtID := uuid.New()

	catalog := testCatalog(
		&catalogLine{productID: shirtID, name: "shirt", price: 50, stock: 10},
	)

	_, _, err := priceOrder(catalog, []OrderItemRequest{
		{ProductID: shirtID, Quantity: 1},
		{ProductID: uuid.New(), Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrProductNotFound)
}

func TestPriceOrderInsufficientStock(t *testing.T) {
	shirtID := uuid.New()

	catalog := testCatalog(
		&catalogLine{productID: shirtID, name: "shirt", price: 50, stock: 5},
	)

	pricedItems, total, err := priceOrder(catalog, []OrderItemRequest{
		{ProductID: shirtID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Len(t, pricedItems, 1)
	assert.Equal(t, 150.0, total)

	_, _, err = priceOrder(catalog, []OrderItemRequest{
		{ProductID: shirtID, Quantity: 6},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInsufficientStock)
}

func TestPriceOrderAllOrNothing(t *testing.T) {
	shirtID := uuid.New()
	mugID := uuid.New()

	catalog := testCatalog(
		&catalogLine{productID: shirtID, name: "shirt", price: 50, stock: 10},
		&catalogLine{productID: mugID, name: "mug", price: 12.5, stock: 1},
	)

	pricedItems, total, err := priceOrder(catalog, []OrderItemRequest{
		{ProductID: shirtID, Quantity: 1},
		{ProductID: mugID, Quantity: 2},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInsufficientStock)
	assert.Nil(t, pricedItems)
	assert.Zero(t, total)
}

func TestPriceOrderDuplicateLinesShareStock(t *testing.T) {
	shirtID := uuid.New()

	catalog := testCatalog(
		&catalogLine{productID: shirtID, name: "shirt", price: 50, stock: 5},
	)

	// Each line fits the stock on its own but not combined.
	_, _, err := priceOrder(catalog, []OrderItemRequest{
		{ProductID: shirtID, Quantity: 3},
		{ProductID: shirtID, Quantity: 3},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrInsufficientStock)
}
