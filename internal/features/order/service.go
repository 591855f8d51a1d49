package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/eventengine"
	"github.com/y0usad/lyoki-site/internal/eventengine/event"
)

// Guest checkout defaults, used when the payload omits customer details.
const (
	guestName  = "Guest"
	guestEmail = "guest@example.com"
)

type storer interface {
	createOne(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error)
	findAllWithItems(ctx context.Context) ([]*Order, error)
	findTotal(ctx context.Context, orderID uuid.UUID) (float64, error)
	markPaid(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	store       storer
	eventEngine eventengine.RegisterPublisher
}

func NewService(store storer, eventEngine eventengine.RegisterPublisher) *service {
	s := &service{
		store:       store,
		eventEngine: eventEngine,
	}

	// Register eventsNames the order service will emit
	s.eventEngine.RegisterEvents(
		event.OrderPlacedEventName,
	)

	return s
}

func (s *service) createOrder(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error) {
	newOrder.CustomerName = strings.TrimSpace(newOrder.CustomerName)
	if newOrder.CustomerName == "" {
		newOrder.CustomerName = guestName
	}

	newOrder.CustomerEmail = strings.TrimSpace(newOrder.CustomerEmail)
	if newOrder.CustomerEmail == "" {
		newOrder.CustomerEmail = guestEmail
	}

	created, err := s.store.createOne(ctx, newOrder)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(created.Items))
	for _, item := range created.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	placedEvent := &event.OrderPlacedEvent{
		OrderID:    created.OrderID,
		ProductIDs: productIDs,
	}
	s.eventEngine.Publish(
		&event.Event{
			Name:    placedEvent.GetEventName(),
			Payload: placedEvent,
		},
	)

	return created, nil
}

// ListTransactions is consumed by the admin feature's back-office
// transactions view.
func (s *service) ListTransactions(ctx context.Context) ([]*Order, error) {
	return s.store.findAllWithItems(ctx)
}

// OrderTotal is consumed by the payment feature so the amount charged
// always comes from the persisted order, never from the client.
func (s *service) OrderTotal(ctx context.Context, orderID uuid.UUID) (float64, error) {
	return s.store.findTotal(ctx, orderID)
}

// MarkOrderPaid is consumed by the payment feature when the gateway
// confirms an approved payment for the order.
func (s *service) MarkOrderPaid(ctx context.Context, orderID uuid.UUID) error {
	return s.store.markPaid(ctx, orderID)
}
