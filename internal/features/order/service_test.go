package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y0usad/lyoki-site/internal/eventengine/event"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type fakeOrderStore struct {
	created *CreateOrderRequest
	orders  []*Order
	totals  map[uuid.UUID]float64
	paid    []uuid.UUID
	err     error
}

func (f *fakeOrderStore) createOne(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = newOrder

	created := &Order{
		OrderID:       uuid.New(),
		CustomerName:  newOrder.CustomerName,
		CustomerEmail: newOrder.CustomerEmail,
		Status:        StatusCreated,
	}
	for _, item := range newOrder.Items {
		created.Items = append(created.Items, OrderItem{
			OrderID:   created.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return created, nil
}

func (f *fakeOrderStore) findAllWithItems(ctx context.Context) ([]*Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

func (f *fakeOrderStore) findTotal(ctx context.Context, orderID uuid.UUID) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	total, ok := f.totals[orderID]
	if !ok {
		return 0, servererrors.ErrOrderNotFound
	}
	return total, nil
}

func (f *fakeOrderStore) markPaid(ctx context.Context, orderID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.paid = append(f.paid, orderID)
	return nil
}

type fakeEventEngine struct {
	registered []event.EventName
	published  []*event.Event
}

func (f *fakeEventEngine) RegisterEvents(eventsNames ...event.EventName) {
	f.registered = append(f.registered, eventsNames...)
}

func (f *fakeEventEngine) Publish(e *event.Event) error {
	f.published = append(f.published, e)
	return nil
}

func TestCreateOrderAppliesGuestDefaults(t *testing.T) {
	store := &fakeOrderStore{}
	engine := &fakeEventEngine{}
	orderService := NewService(store, engine)

	created, err := orderService.createOrder(context.Background(), &CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 1},
		},
		CustomerName:  "   ",
		CustomerEmail: "",
	})
	require.NoError(t, err)

	assert.Equal(t, "Guest", created.CustomerName)
	assert.Equal(t, "guest@example.com", created.CustomerEmail)
}

func TestCreateOrderKeepsProvidedCustomer(t *testing.T) {
	store := &fakeOrderStore{}
	engine := &fakeEventEngine{}
	orderService := NewService(store, engine)

	created, err := orderService.createOrder(context.Background(), &CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 2},
		},
		CustomerName:  "Maria Silva",
		CustomerEmail: "maria@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva", created.CustomerName)
	assert.Equal(t, "maria@example.com", created.CustomerEmail)
}

func TestCreateOrderPublishesOrderPlaced(t *testing.T) {
	store := &fakeOrderStore{}
	engine := &fakeEventEngine{}
	orderService := NewService(store, engine)

	assert.Contains(t, engine.registered, event.OrderPlacedEventName)

	productID := uuid.New()
	created, err := orderService.createOrder(context.Background(), &CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: productID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, engine.published, 1)
	placed, ok := engine.published[0].Payload.(*event.OrderPlacedEvent)
	require.True(t, ok)
	assert.Equal(t, created.OrderID, placed.OrderID)
	assert.Equal(t, []uuid.UUID{productID}, placed.ProductIDs)
}

func TestCreateOrderStoreFailurePublishesNothing(t *testing.T) {
	store := &fakeOrderStore{err: assert.AnError}
	engine := &fakeEventEngine{}
	orderService := NewService(store, engine)

	_, err := orderService.createOrder(context.Background(), &CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Empty(t, engine.published)
}

func TestOrderTotal(t *testing.T) {
	orderID := uuid.New()
	store := &fakeOrderStore{
		totals: map[uuid.UUID]float64{orderID: 112.5},
	}
	orderService := NewService(store, &fakeEventEngine{})

	total, err := orderService.OrderTotal(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, 112.5, total)

	_, err = orderService.OrderTotal(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, servererrors.ErrOrderNotFound)
}

func TestMarkOrderPaid(t *testing.T) {
	store := &fakeOrderStore{}
	orderService := NewService(store, &fakeEventEngine{})

	orderID := uuid.New()
	err := orderService.MarkOrderPaid(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{orderID}, store.paid)
}

func TestListTransactions(t *testing.T) {
	store := &fakeOrderStore{
		orders: []*Order{
			{OrderID: uuid.New(), Total: 100},
			{OrderID: uuid.New(), Total: 50},
		},
	}
	orderService := NewService(store, &fakeEventEngine{})

	orders, err := orderService.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
