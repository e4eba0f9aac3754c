package cart

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "arbt-storefront-api/events"
    "arbt-storefront-api/models"
)

func newTestEngine() (*Engine, *MemoryStore, *int) {
    store := NewMemoryStore()
    bus := events.NewBus()
    signals := 0
    bus.Subscribe(events.CartUpdated, func() { signals++ })
    return NewEngine(store, bus), store, &signals
}

func item(id int, price float64) models.LineItem {
    return models.LineItem{ID: id, Name: "cement bag", Image: "/images/cement.png", Price: price}
}

func TestAddMergesSameProduct(t *testing.T) {
    ctx := context.Background()
    engine, _, _ := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100.00), 1))
    require.NoError(t, engine.Add(ctx, "s1", item(1, 100.00), 2))
    require.NoError(t, engine.Add(ctx, "s1", item(2, 25.50), 1))

    items := engine.Items(ctx, "s1")
    require.Len(t, items, 2)
    assert.Equal(t, 1, items[0].ID)
    assert.Equal(t, 3, items[0].Quantity)
    assert.Equal(t, 2, items[1].ID)
    assert.Equal(t, 1, items[1].Quantity)
}

func TestAddDefaultsDeltaToOne(t *testing.T) {
    ctx := context.Background()
    engine, _, _ := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 10), 0))
    require.NoError(t, engine.Add(ctx, "s1", item(1, 10), -4))

    items := engine.Items(ctx, "s1")
    require.Len(t, items, 1)
    assert.Equal(t, 2, items[0].Quantity)
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
    ctx := context.Background()
    engine, _, _ := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100), 3))
    require.NoError(t, engine.UpdateQuantity(ctx, "s1", 1, -5))

    items := engine.Items(ctx, "s1")
    require.Len(t, items, 1)
    assert.Equal(t, 1, items[0].Quantity)

    require.NoError(t, engine.UpdateQuantity(ctx, "s1", 1, 7))
    assert.Equal(t, 7, engine.Items(ctx, "s1")[0].Quantity)
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
    ctx := context.Background()
    engine, _, signals := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100), 1))
    before := *signals

    require.NoError(t, engine.UpdateQuantity(ctx, "s1", 99, 5))
    assert.Equal(t, before, *signals, "no signal for a no-op update")
    require.Len(t, engine.Items(ctx, "s1"), 1)
}

func TestRemoveIsIdempotentAndSignalsOnce(t *testing.T) {
    ctx := context.Background()
    engine, _, signals := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100), 1))
    before := *signals

    require.NoError(t, engine.Remove(ctx, "s1", 1))
    assert.Equal(t, before+1, *signals)
    assert.Empty(t, engine.Items(ctx, "s1"))

    require.NoError(t, engine.Remove(ctx, "s1", 1))
    assert.Equal(t, before+1, *signals, "second remove must not raise the signal again")
    assert.Empty(t, engine.Items(ctx, "s1"))
}

func TestClearEmptiesCart(t *testing.T) {
    ctx := context.Background()
    engine, store, signals := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100), 2))
    require.NoError(t, engine.Add(ctx, "s1", item(2, 50), 1))

    require.NoError(t, engine.Clear(ctx, "s1"))
    assert.Empty(t, engine.Items(ctx, "s1"))
    assert.Equal(t, "[]", string(store.Raw("s1")))

    before := *signals
    require.NoError(t, engine.Clear(ctx, "s1"))
    assert.Equal(t, before, *signals, "clearing an empty cart raises no signal")
}

func TestSignalSeesPostMutationState(t *testing.T) {
    ctx := context.Background()
    store := NewMemoryStore()
    bus := events.NewBus()
    engine := NewEngine(store, bus)

    var observed []models.LineItem
    bus.Subscribe(events.CartUpdated, func() {
        observed = store.Load(ctx, "s1")
    })

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100), 2))
    require.Len(t, observed, 1)
    assert.Equal(t, 2, observed[0].Quantity)
}

func TestCartsAreIsolatedByKey(t *testing.T) {
    ctx := context.Background()
    engine, _, _ := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100), 1))
    require.NoError(t, engine.Add(ctx, "s2", item(2, 50), 1))

    assert.Len(t, engine.Items(ctx, "s1"), 1)
    assert.Len(t, engine.Items(ctx, "s2"), 1)
    assert.Equal(t, 1, engine.Items(ctx, "s1")[0].ID)
    assert.Equal(t, 2, engine.Items(ctx, "s2")[0].ID)
}

func TestAddThenTotalScenario(t *testing.T) {
    ctx := context.Background()
    engine, _, _ := newTestEngine()

    require.NoError(t, engine.Add(ctx, "s1", item(1, 100.00), 1))
    require.NoError(t, engine.Add(ctx, "s1", item(1, 100.00), 2))

    items := engine.Items(ctx, "s1")
    require.Len(t, items, 1)
    require.Equal(t, 3, items[0].Quantity)

    totals := ComputeTotals(items, 50.00)
    assert.Equal(t, 300.00, totals.Subtotal)
    assert.Equal(t, 50.00, totals.ServiceFee)
    assert.Equal(t, 350.00, totals.Total)
}
