package models

import "time"

// Order status lifecycle. An order is created as pending when the payment
// proof is submitted, then confirmed or reverted to failed by the worker.
const (
    OrderStatusPending   = "pending"
    OrderStatusConfirmed = "confirmed"
    OrderStatusFailed    = "failed"
    OrderStatusShipped   = "shipped"
    OrderStatusDelivered = "delivered"
)

type Order struct {
    ID            string      `json:"order_id"`
    UserID        string      `json:"user_id"`
    Items         []OrderItem `json:"items"`
    Subtotal      float64     `json:"subtotal"`
    ServiceFee    float64     `json:"service_fee"`
    Total         float64     `json:"total"`
    PaymentMethod string      `json:"payment_method"`
    PaymentProof  string      `json:"payment_proof,omitempty"`
    Status        string      `json:"status"`
    CreatedAt     time.Time   `json:"created_at"`
}

type OrderItem struct {
    ProductID int     `json:"product_id"`
    Name      string  `json:"name"`
    Price     float64 `json:"price"`
    Quantity  int     `json:"quantity"`
}

type OrderStatusUpdate struct {
    Status string `json:"status"`
}
