package events

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestPublishInvokesHandlersInRegistrationOrder(t *testing.T) {
    bus := NewBus()

    var order []int
    bus.Subscribe(CartUpdated, func() { order = append(order, 1) })
    bus.Subscribe(CartUpdated, func() { order = append(order, 2) })
    bus.Subscribe(CartUpdated, func() { order = append(order, 3) })

    bus.Publish(CartUpdated)
    assert.Equal(t, []int{1, 2, 3}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
    bus := NewBus()

    calls := 0
    unsubscribe := bus.Subscribe(CartUpdated, func() { calls++ })

    bus.Publish(CartUpdated)
    unsubscribe()
    bus.Publish(CartUpdated)

    assert.Equal(t, 1, calls)
    assert.Equal(t, 0, bus.SubscriberCount(CartUpdated))
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
    bus := NewBus()

    unsubscribe := bus.Subscribe(CartUpdated, func() {})
    bus.Subscribe(CartUpdated, func() {})

    unsubscribe()
    unsubscribe()
    assert.Equal(t, 1, bus.SubscriberCount(CartUpdated))
}

func TestSignalsAreIndependentByName(t *testing.T) {
    bus := NewBus()

    cartCalls, otherCalls := 0, 0
    bus.Subscribe(CartUpdated, func() { cartCalls++ })
    bus.Subscribe("orders.updated", func() { otherCalls++ })

    bus.Publish(CartUpdated)
    assert.Equal(t, 1, cartCalls)
    assert.Equal(t, 0, otherCalls)
}

func TestPublishWithNoSubscribersIsSafe(t *testing.T) {
    bus := NewBus()
    assert.NotPanics(t, func() { bus.Publish(CartUpdated) })
}
