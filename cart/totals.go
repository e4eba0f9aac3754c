package cart

import (
    "github.com/shopspring/decimal"

    "arbt-storefront-api/models"
)

// DefaultServiceFee applies when the per-user fee lookup is unavailable, so
// checkout stays usable before (or without) a resolved fee.
const DefaultServiceFee = 50.00

// ComputeTotals derives checkout totals from the given line items and service
// fee. Pure function, safe to call on every render. Sums are carried in
// fixed-point decimals and rounded to two fraction digits, so repeated calls
// on the same input always produce identical displayed values.
func ComputeTotals(items []models.LineItem, serviceFee float64) models.CheckoutTotals {
    subtotal := decimal.Zero
    for _, it := range items {
        qty := it.Quantity
        if qty < 1 {
            qty = 1
        }
        line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(qty)))
        subtotal = subtotal.Add(line)
    }

    fee := decimal.NewFromFloat(serviceFee)
    sub := subtotal.Round(2)
    total := sub.Add(fee.Round(2))

    return models.CheckoutTotals{
        Subtotal:   sub.InexactFloat64(),
        ServiceFee: fee.Round(2).InexactFloat64(),
        Total:      total.Round(2).InexactFloat64(),
    }
}
