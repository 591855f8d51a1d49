package eventengine

import (
	"log"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/eventengine/event"
)

func Test_eventEngine(t *testing.T) {
	log.SetFlags(log.Ltime | log.Lshortfile)

	var err error
	doneCh := make(chan struct{})
	InternalSrvWG := sync.WaitGroup{}

	eventEngine := eventEngine{
		EventEngineConfig: &EventEngineConfig{
			DoneCh:        doneCh,
			InternalSrvWG: &InternalSrvWG,
		},
		events:        make(map[event.EventName]*subscribers, 20),
		eventEngineCh: make(chan *event.Event, 1),
	}

	InternalSrvWG.Add(1)
	go eventEngine.listen() // go routine 1

	eventEngine.RegisterEvents(event.OrderPlacedEventName)

	// register a subscriber1 for an event.
	subscriberAddressCh1 := make(chan any, 8)
	err = eventEngine.Subscribe(
		event.OrderPlacedEventName,
		&event.Subscriber{
			Name:      "test_subscriber_name.1",
			AddressCh: subscriberAddressCh1,
		},
	)
	if err != nil {
		close(subscriberAddressCh1)
		t.Error(err)
		return
	}

	var received1 int
	InternalSrvWG.Add(1)
	go func() {
		defer InternalSrvWG.Done()
		for newEvent := range subscriberAddressCh1 {
			if _, ok := newEvent.(*event.OrderPlacedEvent); !ok {
				t.Errorf("unexpected payload type: %T", newEvent)
			}
			received1++
		}
	}() // go routine 2

	// register a subscriber2 for an event.
	subscriberAddressCh2 := make(chan any, 8)
	err = eventEngine.Subscribe(
		event.OrderPlacedEventName,
		&event.Subscriber{
			Name:      "test_subscriber_name.2",
			AddressCh: subscriberAddressCh2,
		},
	)
	if err != nil {
		close(subscriberAddressCh2)
		t.Error(err)
		return
	}

	var received2 int
	InternalSrvWG.Add(1)
	go func() {
		defer InternalSrvWG.Done()
		for range subscriberAddressCh2 {
			received2++
		}
	}() // go routine 3

	// event publisher || main routine
	const published = 5
	for i := 0; i < published; i++ {
		eventEngine.Publish(
			&event.Event{
				Name: event.OrderPlacedEventName,
				Payload: &event.OrderPlacedEvent{
					OrderID:    uuid.New(),
					ProductIDs: []uuid.UUID{uuid.New()},
				},
			},
		)
	}

	close(doneCh)
	InternalSrvWG.Wait()

	if received1 != published || received2 != published {
		t.Errorf(
			"expected both subscribers to receive %d events, got %d and %d",
			published,
			received1,
			received2,
		)
	}
}

// One subscriber channel subscribed to several events, the way the product
// event handler wires itself up. Shutdown must close that shared channel
// exactly once.
func Test_eventEngine_SharedAddressChShutdown(t *testing.T) {
	doneCh := make(chan struct{})
	wg := sync.WaitGroup{}

	engine := NewEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &wg,
	})

	engine.RegisterEvents(
		event.OrderPlacedEventName,
		event.CatalogProductUpdatedEventName,
		event.CatalogProductDeletedEventName,
	)

	sharedAddressCh := make(chan any, 8)
	subscribeToEventNames := [3]event.EventName{
		event.OrderPlacedEventName,
		event.CatalogProductUpdatedEventName,
		event.CatalogProductDeletedEventName,
	}
	for _, v := range subscribeToEventNames {
		err := engine.Subscribe(
			v,
			&event.Subscriber{
				Name:      "test_subscriber_name.shared",
				AddressCh: sharedAddressCh,
			},
		)
		if err != nil {
			t.Fatal(err)
		}
	}

	var received int
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range sharedAddressCh {
			received++
		}
	}()

	engine.Publish(
		&event.Event{
			Name: event.OrderPlacedEventName,
			Payload: &event.OrderPlacedEvent{
				OrderID:    uuid.New(),
				ProductIDs: []uuid.UUID{uuid.New()},
			},
		},
	)
	engine.Publish(
		&event.Event{
			Name: event.CatalogProductUpdatedEventName,
			Payload: &event.CatalogProductUpdatedEvent{
				ProductID: uuid.New(),
			},
		},
	)

	// a double close of sharedAddressCh would panic here.
	close(doneCh)
	wg.Wait()

	if received != 2 {
		t.Errorf("expected the shared subscriber to receive 2 events, got %d", received)
	}
}

func Test_eventEngine_SubscribeUnknownEvent(t *testing.T) {
	doneCh := make(chan struct{})
	wg := sync.WaitGroup{}

	engine := NewEventEngine(&EventEngineConfig{
		DoneCh:        doneCh,
		InternalSrvWG: &wg,
	})

	addressCh := make(chan any, 1)
	err := engine.Subscribe(
		"never.registered",
		&event.Subscriber{
			Name:      "test_subscriber_name.unknown",
			AddressCh: addressCh,
		},
	)
	if err == nil {
		t.Error("expected subscribing to an unregistered event to fail")
	}

	close(doneCh)
	wg.Wait()
}
