package product

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/eventengine"
	"github.com/y0usad/lyoki-site/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.product"

type cacheInvalidator interface {
	invalidate(ctx context.Context, productID uuid.UUID)
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Cache         cacheInvalidator
	AddressChSize uint16
}

// handlerEvents keeps the product cache honest: whenever an order commits a
// stock decrement or an admin touches the catalog, the affected cache
// entries are dropped.
type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(
	cfg *HandlerEventsConfig,
) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Cache == nil {
		log.Fatalf(
			"either 'DoneCh', 'InternalSrvWG', 'EventEngine' or 'Cache' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	// subscribe to events
	h.addSubscriptions()

	log.Printf("%s is listening...\n", subscriberName)

	// a for select statement is not used here because the event engine will
	// close the addressCh
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderPlacedEvent:
			h.orderPlacedEventHandler(ne)

		case *event.CatalogProductUpdatedEvent:
			h.Cache.invalidate(context.Background(), ne.ProductID)

		case *event.CatalogProductDeletedEvent:
			h.Cache.invalidate(context.Background(), ne.ProductID)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

func (h *handlerEvents) orderPlacedEventHandler(newEvent *event.OrderPlacedEvent) {
	ctx := context.Background()

	for _, productID := range newEvent.ProductIDs {
		h.Cache.invalidate(ctx, productID)
	}
}

// addSubscriptions iterates over subscribeToEventNames array and subscribes
// to various events with addressCh.
func (h *handlerEvents) addSubscriptions() {
	// subscribeToEventNames is an array of all events this subscriber
	// wants to Subscribe to.
	subscribeToEventNames := [3]event.EventName{
		event.OrderPlacedEventName,
		event.CatalogProductUpdatedEventName,
		event.CatalogProductDeletedEventName,
	}

	var err error
	for _, v := range subscribeToEventNames {
		err = h.EventEngine.Subscribe(
			v,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in Subscriber: '%s'\nerror subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
