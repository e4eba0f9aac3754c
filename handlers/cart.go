package handlers

import (
    "encoding/json"
    "log"
    "net/http"

    "github.com/gorilla/sessions"

    "arbt-storefront-api/cart"
    "arbt-storefront-api/config"
    "arbt-storefront-api/database"
    "arbt-storefront-api/middleware"
    "arbt-storefront-api/models"
    "arbt-storefront-api/services/shipping"
    "arbt-storefront-api/utils"
)

const cartSessionName = "cart-session"

type CartHandler struct {
    engine *cart.Engine
    db     *database.Connection
    fees   shipping.FeeResolver
    store  *sessions.CookieStore
}

func NewCartHandler(engine *cart.Engine, db *database.Connection, fees shipping.FeeResolver, cfg *config.Config) *CartHandler {
    store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
    store.Options = &sessions.Options{
        Path:     "/",
        Domain:   cfg.Session.Domain,
        MaxAge:   cfg.Session.MaxAge,
        Secure:   true,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
    return &CartHandler{engine: engine, db: db, fees: fees, store: store}
}

// cartKey returns the cart key for this browser session, minting one on
// first use.
func (h *CartHandler) cartKey(w http.ResponseWriter, r *http.Request) (string, error) {
    session, err := h.store.Get(r, cartSessionName)
    if err != nil {
        // A stale or tampered cookie decodes to a fresh session.
        log.Printf("Error getting session, issuing a new one: %v", err)
        session, _ = h.store.New(r, cartSessionName)
    }

    id, ok := session.Values["cart_id"].(string)
    if !ok || id == "" {
        id = utils.GenerateRandomString(32)
        session.Values["cart_id"] = id
        if err := session.Save(r, w); err != nil {
            return "", err
        }
    }
    return id, nil
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
    key, err := h.cartKey(w, r)
    if err != nil {
        log.Printf("Error saving session: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
        return
    }

    var req struct {
        ProductID int `json:"id"`
        Quantity  int `json:"quantity"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("Error decoding request body: %v", err)
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    // The catalog row is the price source of truth at add time.
    product, err := h.db.GetProductByID(req.ProductID)
    if err != nil {
        log.Printf("Product not found: %v", err)
        utils.SendErrorResponse(w, http.StatusNotFound, "Product not found")
        return
    }

    item := models.LineItem{
        ID:    product.ID,
        Name:  product.Name,
        Image: product.Image,
        Price: product.Price,
    }
    if err := h.engine.Add(r.Context(), key, item, req.Quantity); err != nil {
        log.Printf("Error adding to cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to add item to cart")
        return
    }

    w.WriteHeader(http.StatusCreated)
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
    key, err := h.cartKey(w, r)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
        return
    }

    var update models.CartUpdate
    if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if err := h.engine.UpdateQuantity(r.Context(), key, update.ProductID, update.Quantity); err != nil {
        log.Printf("Error updating cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to update cart")
        return
    }

    w.WriteHeader(http.StatusOK)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
    key, err := h.cartKey(w, r)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
        return
    }

    var req models.CartRemove
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if err := h.engine.Remove(r.Context(), key, req.ProductID); err != nil {
        log.Printf("Error removing from cart: %v", err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to remove item from cart")
        return
    }

    w.WriteHeader(http.StatusOK)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
    key, err := h.cartKey(w, r)
    if err != nil {
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Session error")
        return
    }

    items := h.engine.Items(r.Context(), key)

    var userID string
    if user := middleware.GetUserFromContext(r.Context()); user != nil {
        userID = user.UserID
    }
    fee := h.fees.ResolveFee(r.Context(), userID)

    utils.SendJSON(w, http.StatusOK, models.CartResponse{
        Items:  items,
        Totals: cart.ComputeTotals(items, fee),
    })
}
