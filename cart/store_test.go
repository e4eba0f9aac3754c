package cart

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "arbt-storefront-api/models"
)

func TestLoadMissingKeyReturnsEmpty(t *testing.T) {
    store := NewMemoryStore()
    items := store.Load(context.Background(), "nope")
    assert.NotNil(t, items)
    assert.Empty(t, items)
}

func TestSaveLoadRoundTrip(t *testing.T) {
    ctx := context.Background()
    store := NewMemoryStore()

    in := []models.LineItem{
        {ID: 1, Name: "gravel", Image: "/images/gravel.png", Price: 120.50, Quantity: 2},
        {ID: 7, Name: "rebar", Price: 89.99, Quantity: 12},
    }
    require.NoError(t, store.Save(ctx, "s1", in))

    out := store.Load(ctx, "s1")
    assert.Equal(t, in, out)

    // save(load()) must be a no-op on well-formed input
    require.NoError(t, store.Save(ctx, "s1", out))
    assert.Equal(t, in, store.Load(ctx, "s1"))
}

func TestCorruptedValueIsTreatedAsEmptyAndReset(t *testing.T) {
    ctx := context.Background()

    for _, raw := range []string{"not json", "{}", `{"id":1}`, "42"} {
        store := NewMemoryStore()
        store.SetRaw("s1", []byte(raw))

        items := store.Load(ctx, "s1")
        assert.Empty(t, items, "stored value %q", raw)
        assert.Equal(t, "[]", string(store.Raw("s1")), "store must be reset for %q", raw)
    }
}

func TestMalformedRecordsAreRepairedOnLoad(t *testing.T) {
    ctx := context.Background()
    store := NewMemoryStore()
    store.SetRaw("s1", []byte(`[{"id":1,"price":10,"quantity":0},{"id":2,"price":-5,"quantity":3},{"id":3,"price":20,"quantity":-9}]`))

    items := store.Load(ctx, "s1")
    require.Len(t, items, 2)
    assert.Equal(t, 1, items[0].ID)
    assert.Equal(t, 1, items[0].Quantity)
    assert.Equal(t, 3, items[1].ID)
    assert.Equal(t, 1, items[1].Quantity)
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
    ctx := context.Background()
    store := NewMemoryStore()
    require.NoError(t, store.Save(ctx, "s1", nil))
    assert.Equal(t, "[]", string(store.Raw("s1")))
    assert.Empty(t, store.Load(ctx, "s1"))
}
