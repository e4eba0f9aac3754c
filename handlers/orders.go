package handlers

import (
    "encoding/json"
    "log"
    "net/http"

    "github.com/gorilla/mux"

    "arbt-storefront-api/database"
    "arbt-storefront-api/middleware"
    "arbt-storefront-api/models"
    "arbt-storefront-api/utils"
)

type OrderHandler struct {
    db *database.Connection
}

func NewOrderHandler(db *database.Connection) *OrderHandler {
    return &OrderHandler{db: db}
}

// GetMyOrders lists the signed-in user's order history, newest first.
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
    user := middleware.GetUserFromContext(r.Context())
    if user == nil {
        utils.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required")
        return
    }

    orders, err := h.db.GetOrdersByUser(user.UserID)
    if err != nil {
        log.Printf("Error loading orders for user %s: %v", user.UserID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to load orders")
        return
    }

    if orders == nil {
        orders = []models.Order{}
    }
    utils.SendJSON(w, http.StatusOK, orders)
}

// GetOrder returns one order. Non-admin users can only see their own.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
    user := middleware.GetUserFromContext(r.Context())
    if user == nil {
        utils.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required")
        return
    }

    orderID := mux.Vars(r)["id"]
    order, err := h.db.GetOrderByID(orderID)
    if err != nil {
        log.Printf("Error loading order %s: %v", orderID, err)
        utils.SendErrorResponse(w, http.StatusNotFound, "Order not found")
        return
    }

    if order.UserID != user.UserID && !user.IsAdmin {
        utils.SendErrorResponse(w, http.StatusForbidden, "Order not found")
        return
    }

    utils.SendJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order along the fulfillment lifecycle from the
// admin orders page.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
    orderID := mux.Vars(r)["id"]

    var update models.OrderStatusUpdate
    if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    switch update.Status {
    case models.OrderStatusConfirmed, models.OrderStatusFailed,
        models.OrderStatusShipped, models.OrderStatusDelivered:
    default:
        utils.SendErrorResponse(w, http.StatusBadRequest, "Unknown order status")
        return
    }

    if err := h.db.SetOrderStatus(orderID, update.Status); err != nil {
        log.Printf("Error updating order %s status: %v", orderID, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update order status")
        return
    }

    utils.SendSuccessResponse(w, models.APIResponse{Status: "success", Message: "Order status updated"})
}
