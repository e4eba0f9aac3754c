package utils

import (
    "fmt"
    "math"
)

// Round normalizes a currency amount to two fraction digits for display.
func Round(value float64) float64 {
    return math.Round(value*100) / 100
}

// FormatPeso renders an amount the way the storefront displays it.
func FormatPeso(value float64) string {
    return fmt.Sprintf("₱ %.2f", Round(value))
}
