package handlers

import (
    "encoding/json"
    "net/http"

    "arbt-storefront-api/services/shipping"
    "arbt-storefront-api/utils"
)

type CheckoutHandler struct {
    cart       *CartHandler
    fees       shipping.FeeResolver
    defaultFee float64
}

func NewCheckoutHandler(cartHandler *CartHandler, fees shipping.FeeResolver, defaultFee float64) *CheckoutHandler {
    return &CheckoutHandler{cart: cartHandler, fees: fees, defaultFee: defaultFee}
}

// GetTotals previews the checkout amounts for the current session cart.
func (h *CheckoutHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
    h.cart.GetCart(w, r)
}

// GetShippingFee resolves the service fee for a user. The storefront calls
// this on the checkout page before the payment form renders.
func (h *CheckoutHandler) GetShippingFee(w http.ResponseWriter, r *http.Request) {
    var req struct {
        UserID string `json:"user_id"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    fee := h.fees.ResolveFee(r.Context(), req.UserID)

    utils.SendJSON(w, http.StatusOK, map[string]float64{"shipping_fee": fee})
}

// GetDefaultFee reports the flat fee applied when no user-specific fee exists.
func (h *CheckoutHandler) GetDefaultFee(w http.ResponseWriter, r *http.Request) {
    utils.SendJSON(w, http.StatusOK, map[string]float64{"shipping_fee": h.defaultFee})
}
