package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealtimeBroker_DeliversToMatchingSubscribers(t *testing.T) {
	broker := NewRealtimeBroker()

	orders, cancelOrders := broker.Subscribe(OrdersCollection, "")
	defer cancelOrders()
	products, cancelProducts := broker.Subscribe(ProductsCollection, "")
	defer cancelProducts()

	broker.Publish(ChangeEvent{Collection: OrdersCollection, Event: EventInsert, Key: "42"})

	evt := <-orders
	assert.Equal(t, OrdersCollection, evt.Collection)
	assert.Equal(t, EventInsert, evt.Event)
	assert.Equal(t, "42", evt.Key)

	select {
	case <-products:
		t.Fatal("product subscriber should not receive order events")
	default:
	}
}

func TestRealtimeBroker_KeyFilter(t *testing.T) {
	broker := NewRealtimeBroker()

	filtered, cancel := broker.Subscribe(ProductsCollection, "prod-1")
	defer cancel()

	broker.Publish(ChangeEvent{Collection: ProductsCollection, Event: EventUpdate, Key: "prod-2"})
	broker.Publish(ChangeEvent{Collection: ProductsCollection, Event: EventUpdate, Key: "prod-1"})

	evt := <-filtered
	assert.Equal(t, "prod-1", evt.Key)

	select {
	case extra := <-filtered:
		t.Fatalf("unexpected extra event: %+v", extra)
	default:
	}
}

func TestRealtimeBroker_CancelClosesChannel(t *testing.T) {
	broker := NewRealtimeBroker()

	ch, cancel := broker.Subscribe(OrdersCollection, "")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic
	broker.Publish(ChangeEvent{Collection: OrdersCollection, Event: EventDelete, Key: "1"})

	// Cancelling twice must not panic either
	cancel()
}

func TestRealtimeBroker_PublishNeverBlocks(t *testing.T) {
	broker := NewRealtimeBroker()

	_, cancel := broker.Subscribe(OrdersCollection, "")
	defer cancel()

	// Overflow the subscriber buffer; publish must drop, not block
	for i := 0; i < subscriberBuffer*2; i++ {
		broker.Publish(ChangeEvent{Collection: OrdersCollection, Event: EventUpdate, Key: "1"})
	}
}

func TestPublishHelpers_NilBrokerIsSafe(t *testing.T) {
	SetRealtimeBroker(nil)
	PublishOrderChange(EventInsert, "1")
	PublishProductChange(EventUpdate, "p")

	broker := InitRealtimeBroker()
	ch, cancel := broker.Subscribe(OrdersCollection, "")
	defer cancel()

	PublishOrderChange(EventInsert, "7")
	evt := <-ch
	assert.Equal(t, "7", evt.Key)
}
