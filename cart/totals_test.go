package cart

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "arbt-storefront-api/models"
)

func TestComputeTotalsEmptyCart(t *testing.T) {
    totals := ComputeTotals(nil, 50.00)
    assert.Equal(t, 0.00, totals.Subtotal)
    assert.Equal(t, 50.00, totals.ServiceFee)
    assert.Equal(t, 50.00, totals.Total)
}

func TestComputeTotalsSumsLines(t *testing.T) {
    items := []models.LineItem{
        {ID: 1, Price: 100.00, Quantity: 3},
        {ID: 2, Price: 25.50, Quantity: 2},
    }
    totals := ComputeTotals(items, 50.00)
    assert.Equal(t, 351.00, totals.Subtotal)
    assert.Equal(t, 401.00, totals.Total)
}

func TestComputeTotalsAvoidsFloatDrift(t *testing.T) {
    // 0.1 * 3 is 0.30000000000000004 in binary floating point
    items := []models.LineItem{{ID: 1, Price: 0.10, Quantity: 3}}
    totals := ComputeTotals(items, 0)
    assert.Equal(t, 0.30, totals.Subtotal)
    assert.Equal(t, 0.30, totals.Total)
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
    items := []models.LineItem{
        {ID: 1, Price: 19.99, Quantity: 7},
        {ID: 2, Price: 0.05, Quantity: 13},
    }
    first := ComputeTotals(items, 50.00)
    for i := 0; i < 100; i++ {
        assert.Equal(t, first, ComputeTotals(items, 50.00))
    }
}

func TestComputeTotalsClampsBadQuantity(t *testing.T) {
    items := []models.LineItem{{ID: 1, Price: 40.00, Quantity: 0}}
    totals := ComputeTotals(items, 10.00)
    assert.Equal(t, 40.00, totals.Subtotal)
    assert.Equal(t, 50.00, totals.Total)
}

func TestComputeTotalsRoundsFee(t *testing.T) {
    totals := ComputeTotals(nil, 49.999)
    assert.Equal(t, 50.00, totals.ServiceFee)
    assert.Equal(t, 50.00, totals.Total)
}
