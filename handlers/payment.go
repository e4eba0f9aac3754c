package handlers

import (
    "log"
    "net/http"
    "path/filepath"
    "time"

    "github.com/google/uuid"

    "arbt-storefront-api/cart"
    "arbt-storefront-api/database"
    "arbt-storefront-api/middleware"
    "arbt-storefront-api/models"
    "arbt-storefront-api/queue"
    "arbt-storefront-api/services/shipping"
    "arbt-storefront-api/utils"
)

const maxProofSize = 10 << 20 // 10MB upload cap

// PaymentHandler turns the session cart into an order. Submission is
// two-phase: the order row is written as pending here, and the worker
// confirms it (or reverts it to failed) off the request path.
type PaymentHandler struct {
    cart   *CartHandler
    engine *cart.Engine
    db     *database.Connection
    fees   shipping.FeeResolver
    queue  *queue.Queue
}

func NewPaymentHandler(cartHandler *CartHandler, engine *cart.Engine, db *database.Connection, fees shipping.FeeResolver, q *queue.Queue) *PaymentHandler {
    return &PaymentHandler{
        cart:   cartHandler,
        engine: engine,
        db:     db,
        fees:   fees,
        queue:  q,
    }
}

func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
    user := middleware.GetUserFromContext(r.Context())
    if user == nil {
        utils.SendErrorResponse(w, http.StatusUnauthorized, "Sign in to place an order")
        return
    }

    key, err := h.cart.cartKey(w, r)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
        return
    }

    if err := r.ParseMultipartForm(maxProofSize); err != nil {
        log.Printf("Error parsing multipart form: %v", err)
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid form data")
        return
    }

    method := r.FormValue("payment_method")
    if method != "gcash" && method != "cod" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Unsupported payment method")
        return
    }

    // GCash orders carry a proof-of-payment screenshot. Only the reference
    // is stored; the upload itself goes to the static file host.
    var proof string
    if file, header, err := r.FormFile("payment_proof"); err == nil {
        file.Close()
        proof = uuid.NewString() + filepath.Ext(header.Filename)
    }
    if method == "gcash" && proof == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "GCash orders require a payment proof")
        return
    }

    // The server-side cart is authoritative. Whatever totals the page was
    // showing, the order is priced from what the session cart holds now.
    items := h.engine.Items(r.Context(), key)
    if len(items) == 0 {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Cart is empty")
        return
    }

    fee := h.fees.ResolveFee(r.Context(), user.UserID)
    totals := cart.ComputeTotals(items, fee)

    order := &models.Order{
        ID:            uuid.NewString(),
        UserID:        user.UserID,
        Items:         orderItems(items),
        Subtotal:      totals.Subtotal,
        ServiceFee:    totals.ServiceFee,
        Total:         totals.Total,
        PaymentMethod: method,
        PaymentProof:  proof,
        Status:        models.OrderStatusPending,
        CreatedAt:     time.Now(),
    }

    if err := h.db.CreateOrder(order); err != nil {
        log.Printf("Error creating order: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to submit order")
        return
    }

    if err := h.queue.Enqueue(r.Context(), queue.JobTypeConfirmOrder, map[string]interface{}{
        "order_id": order.ID,
        "email":    user.Email,
    }); err != nil {
        log.Printf("Error enqueueing confirmation for order %s: %v", order.ID, err)
    }

    // Successful submission empties the cart and raises the change signal,
    // so the header badge resets without a reload.
    if err := h.engine.Clear(r.Context(), key); err != nil {
        log.Printf("Error clearing cart after order %s: %v", order.ID, err)
    }

    utils.SendJSON(w, http.StatusCreated, models.OrderSubmitResponse{
        Success: true,
        OrderID: order.ID,
        Message: "Order submitted and awaiting confirmation",
    })
}

func orderItems(items []models.LineItem) []models.OrderItem {
    out := make([]models.OrderItem, 0, len(items))
    for _, it := range items {
        out = append(out, models.OrderItem{
            ProductID: it.ID,
            Name:      it.Name,
            Price:     it.Price,
            Quantity:  it.Quantity,
        })
    }
    return out
}
