package models

// LineItem is one product/quantity pair in a cart. Price is the catalog price
// at the time the item was added; the cart does not re-validate it against
// the catalog afterwards.
type LineItem struct {
    ID       int     `json:"id"`
    Name     string  `json:"name"`
    Image    string  `json:"image"`
    Price    float64 `json:"price"`
    Quantity int     `json:"quantity"`
}

type CartUpdate struct {
    ProductID int `json:"product_id"`
    Quantity  int `json:"quantity"`
}

type CartRemove struct {
    ProductID int `json:"product_id"`
}

// CheckoutTotals is derived from the current cart on every request, never stored.
type CheckoutTotals struct {
    Subtotal   float64 `json:"subtotal"`
    ServiceFee float64 `json:"service_fee"`
    Total      float64 `json:"total"`
}

type CartResponse struct {
    Items  []LineItem     `json:"items"`
    Totals CheckoutTotals `json:"totals"`
}
