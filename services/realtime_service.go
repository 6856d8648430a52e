package services

import (
	"log"
	"sync"
)

// Change event types
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// Collections that emit change events
const (
	OrdersCollection   = "orders"
	ProductsCollection = "products"
)

// ChangeEvent describes a single mutation on a collection. Subscribers use
// events as cache-invalidation tokens and decide for themselves whether to
// refetch, debounce or patch locally; the event carries no record body.
type ChangeEvent struct {
	Collection string `json:"collection"`
	Event      string `json:"event"`
	Key        string `json:"key"`
}

type subscription struct {
	collection string
	key        string // equality filter on the record key; "" matches all
	ch         chan ChangeEvent
}

// RealtimeBroker fans out change events to subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the event and is
// expected to refetch on its next one.
type RealtimeBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscription
}

const subscriberBuffer = 16

var realtimeBrokerInstance *RealtimeBroker

// NewRealtimeBroker creates an empty broker
func NewRealtimeBroker() *RealtimeBroker {
	return &RealtimeBroker{subs: make(map[int]*subscription)}
}

// InitRealtimeBroker initializes the global broker instance
func InitRealtimeBroker() *RealtimeBroker {
	realtimeBrokerInstance = NewRealtimeBroker()
	return realtimeBrokerInstance
}

// GetRealtimeBroker returns the global broker instance
func GetRealtimeBroker() *RealtimeBroker {
	return realtimeBrokerInstance
}

// SetRealtimeBroker sets the global broker instance (primarily for testing)
func SetRealtimeBroker(b *RealtimeBroker) {
	realtimeBrokerInstance = b
}

// Subscribe registers interest in a collection, optionally filtered to a
// single record key. The returned cancel function must be called when the
// subscriber goes away; it closes the channel.
func (b *RealtimeBroker) Subscribe(collection, key string) (<-chan ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	sub := &subscription{
		collection: collection,
		key:        key,
		ch:         make(chan ChangeEvent, subscriberBuffer),
	}
	b.subs[id] = sub

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, cancel
}

// Publish delivers an event to every matching subscriber without blocking
func (b *RealtimeBroker) Publish(evt ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.collection != evt.Collection {
			continue
		}
		if sub.key != "" && sub.key != evt.Key {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
			log.Printf("realtime: dropping %s/%s event for slow subscriber", evt.Collection, evt.Event)
		}
	}
}

// PublishOrderChange publishes an order change on the global broker if one
// is initialized. Safe to call from handlers in tests that don't set one up.
func PublishOrderChange(event, key string) {
	if realtimeBrokerInstance == nil {
		return
	}
	realtimeBrokerInstance.Publish(ChangeEvent{Collection: OrdersCollection, Event: event, Key: key})
}

// PublishProductChange publishes a product change on the global broker
func PublishProductChange(event, key string) {
	if realtimeBrokerInstance == nil {
		return
	}
	realtimeBrokerInstance.Publish(ChangeEvent{Collection: ProductsCollection, Event: event, Key: key})
}
