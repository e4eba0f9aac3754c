package events

import "sync"

// CartUpdated is the well-known signal raised after every cart mutation that
// actually changed the stored list. It carries no payload; subscribers re-read
// the cart themselves, which is guaranteed to observe post-mutation state
// because handlers run synchronously after the store write.
const CartUpdated = "cart.updated"

type subscriber struct {
    id      int
    handler func()
}

// Bus is an in-process signal bus. Handlers for a signal are invoked
// synchronously, in registration order, on the goroutine that publishes.
type Bus struct {
    mu     sync.Mutex
    nextID int
    subs   map[string][]subscriber
}

func NewBus() *Bus {
    return &Bus{subs: make(map[string][]subscriber)}
}

// Subscribe registers handler for the named signal and returns an unsubscribe
// function. Callers must unsubscribe when done or the handler leaks.
func (b *Bus) Subscribe(name string, handler func()) func() {
    b.mu.Lock()
    defer b.mu.Unlock()

    b.nextID++
    id := b.nextID
    b.subs[name] = append(b.subs[name], subscriber{id: id, handler: handler})

    return func() {
        b.mu.Lock()
        defer b.mu.Unlock()
        subs := b.subs[name]
        for i, s := range subs {
            if s.id == id {
                b.subs[name] = append(subs[:i:i], subs[i+1:]...)
                return
            }
        }
    }
}

// Publish invokes every handler registered for name, in registration order.
func (b *Bus) Publish(name string) {
    b.mu.Lock()
    subs := make([]subscriber, len(b.subs[name]))
    copy(subs, b.subs[name])
    b.mu.Unlock()

    for _, s := range subs {
        s.handler()
    }
}

// SubscriberCount reports how many handlers are registered for name.
func (b *Bus) SubscriberCount(name string) int {
    b.mu.Lock()
    defer b.mu.Unlock()
    return len(b.subs[name])
}
