package cart

import (
    "bytes"
    "context"

    "arbt-storefront-api/events"
    "arbt-storefront-api/models"
)

// Engine owns cart state for any number of cart keys (one per session). Every
// operation is a read-modify-write against the injected store; the change
// signal is raised only when the resulting list differs from the prior list,
// and only after the store write has completed.
//
// The engine does no network I/O of its own and never rejects on stock:
// stock validation happens at order submission, outside the cart.
type Engine struct {
    store Store
    bus   *events.Bus
}

func NewEngine(store Store, bus *events.Bus) *Engine {
    return &Engine{store: store, bus: bus}
}

// Items returns the current list for rendering.
func (e *Engine) Items(ctx context.Context, key string) []models.LineItem {
    return e.store.Load(ctx, key)
}

// Add merges delta into an existing line item with the same product id, or
// appends a new line item. A delta below 1 counts as 1.
func (e *Engine) Add(ctx context.Context, key string, product models.LineItem, delta int) error {
    if delta < 1 {
        delta = 1
    }

    items := e.store.Load(ctx, key)
    prior := encodeItems(items)

    found := false
    for i := range items {
        if items[i].ID == product.ID {
            items[i].Quantity += delta
            found = true
            break
        }
    }
    if !found {
        product.Quantity = delta
        items = append(items, product)
    }

    return e.commit(ctx, key, prior, items)
}

// UpdateQuantity replaces the quantity of the matching line item. Quantities
// below 1 are clamped to 1. Unknown ids are a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, key string, productID, quantity int) error {
    if quantity < 1 {
        quantity = 1
    }

    items := e.store.Load(ctx, key)
    prior := encodeItems(items)

    for i := range items {
        if items[i].ID == productID {
            items[i].Quantity = quantity
            break
        }
    }

    return e.commit(ctx, key, prior, items)
}

// Remove filters out the matching line item. Unknown ids are a no-op, so
// calling Remove twice is safe and the second call raises no signal.
func (e *Engine) Remove(ctx context.Context, key string, productID int) error {
    items := e.store.Load(ctx, key)
    prior := encodeItems(items)

    filtered := items[:0]
    for _, it := range items {
        if it.ID != productID {
            filtered = append(filtered, it)
        }
    }

    return e.commit(ctx, key, prior, filtered)
}

// Clear empties the cart, used after a successful payment submission.
func (e *Engine) Clear(ctx context.Context, key string) error {
    items := e.store.Load(ctx, key)
    prior := encodeItems(items)
    return e.commit(ctx, key, prior, nil)
}

func (e *Engine) commit(ctx context.Context, key string, prior []byte, items []models.LineItem) error {
    next := encodeItems(items)
    if bytes.Equal(prior, next) {
        return nil
    }

    if err := e.store.Save(ctx, key, items); err != nil {
        return err
    }
    e.bus.Publish(events.CartUpdated)
    return nil
}
