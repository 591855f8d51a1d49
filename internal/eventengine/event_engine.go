package eventengine

import (
	"fmt"
	"log"
	"sync"

	"github.com/y0usad/lyoki-site/internal/eventengine/event"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []*event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
}

// eventEngine is the in-process pub/sub bus connecting the features. The
// order feature publishes after a committed checkout, the product feature
// publishes on catalog writes, and the catalog cache listens to both.
type eventEngine struct {
	*EventEngineConfig
	wg            sync.WaitGroup
	eventEngineCh chan *event.Event                // what the event engine listens to for published events.
	events        map[event.EventName]*subscribers // every registered event and whoever subscribed to it.
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil {
		log.Fatalln("'eventEngineConfig' can not be nil")
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		log.Fatalln("either DoneCh or InternalSrvWG is nil")
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	if e.eventEngineCh == nil {
		log.Fatalln("eventEngineCh is nil")
	}

	log.Println("event engine is listening...")

	for { // read until the e.DoneCh is signalled.
		select {
		case <-e.DoneCh:
			e.wg.Wait()
			e.shutdownEventEngineCh()
			log.Println("event engine is shutting down")

			log.Println("draining engineCh")
			for ee := range e.eventEngineCh { // block
				e.broadcaster(ee)
			}

			log.Println("subscribers addressCh are shutting down")
			e.shutdownSubscribersAddressCh()
			return

		case event, isOpened := <-e.eventEngineCh:
			if !isOpened {
				log.Println("eventEngineCh is closed")
				return
			}

			e.broadcaster(event)
		}
	}
}

func (e *eventEngine) broadcaster(event *event.Event) {
	subscribers, exists := e.events[event.Name]
	if !exists {
		log.Printf("event %v not found. check your event handler",
			event.Name,
		)
		return
	}

	const maxPartitionSize = 4
	partitionSize := (len(subscribers.addressChs) / 2) + 1

	if partitionSize < maxPartitionSize {
		// few subscribers: deliver inline.
		for i, addressCh := range subscribers.addressChs {
			if addressCh == nil {
				log.Printf(
					"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
					subscribers.names[i],
				)
				continue
			}

			addressCh <- event.Payload
		}
		return
	}

	// many subscribers: split the fan-out so one slow half does not hold
	// up the other.
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for i, addressCh := range subscribers.addressChs[:partitionSize] {
			if addressCh == nil {
				log.Printf(
					"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
					subscribers.names[i],
				)
				continue
			}
			addressCh <- event.Payload
		}
	}()

	for i, addressCh := range subscribers.addressChs[partitionSize:] {
		if addressCh == nil {
			log.Printf(
				"subscriber '%v's' addressCh is nil. check this event handler to make sure it has been initialized",
				subscribers.names[i],
			)
			continue
		}
		addressCh <- event.Payload
	}
}

// RegisterEvents adds all events a publisher can publish to, to the
// [eventEngine].
//
// IMPORTANT: Register an event before you try to publish or subscribe to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	for _, eventName := range eventNames {
		if _, exists := e.events[(eventName)]; exists {
			log.Println("event already exists")
			continue
		}

		e.events[(eventName)] = &subscribers{}
	}

	log.Println("registering event:", eventNames)
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	if _, ok := e.events[toEventName]; !ok {
		return fmt.Errorf(
			"event '%v' not found. make sure the publishing service called 'eventEngine.RegisterEvents(eventName)' before anyone subscribes, or check the event name you passed",
			toEventName,
		)
	}

	e.events[toEventName] = &subscribers{
		names:      append(e.events[toEventName].names, &newSubscriber.Name),
		addressChs: append(e.events[toEventName].addressChs, newSubscriber.AddressCh),
	}

	return nil
}

func (e *eventEngine) Publish(event *event.Event) error {
	if _, exists := e.events[event.Name]; !exists {
		return fmt.Errorf(
			"event %v not found. check the service which is to publish the event to make sure they called the 'RegisterEvents()'",
			event.Name,
		)
	}

	e.eventEngineCh <- event

	return nil
}

func (e *eventEngine) shutdownSubscribersAddressCh() {
	log.Println("waiting to shut addressChs down")

	// a subscriber may register the same addressCh for several events, so
	// collect the distinct channels first; closing one twice panics.
	distinctAddressChs := make(map[chan<- any]struct{})
	for _, subscribers := range e.events {
		for _, addressCh := range subscribers.addressChs {
			if addressCh == nil {
				continue
			}
			distinctAddressChs[addressCh] = struct{}{}
		}
	}

	for addressCh := range distinctAddressChs {
		close(addressCh)
	}

	log.Println("addressChs shutting down")
}

func (e *eventEngine) shutdownEventEngineCh() {
	log.Println("waiting to shut event engine down")
	close(e.eventEngineCh)
	log.Println("event engine shutting down")
}
