package models

type APIResponse struct {
    Status  string      `json:"status"`
    Message string      `json:"message"`
    Data    interface{} `json:"data,omitempty"`
}

type OrderSubmitResponse struct {
    Success bool   `json:"success"`
    OrderID string `json:"order_id"`
    Message string `json:"message"`
    Error   string `json:"error,omitempty"`
}

// PaginatedResponse wraps admin report pages.
type PaginatedResponse struct {
    Items      interface{} `json:"items"`
    Page       int         `json:"page"`
    Limit      int         `json:"limit"`
    TotalCount int         `json:"total_count"`
    TotalPages int         `json:"total_pages"`
}
