package handlers

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strings"

    "arbt-storefront-api/middleware"
    "arbt-storefront-api/models"
    "arbt-storefront-api/services/auth"
    "arbt-storefront-api/utils"
)

type AuthHandler struct {
    jwtService *auth.JWTService
}

func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
    return &AuthHandler{jwtService: jwtService}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
    var req models.SignupRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Name, email and a password of at least 8 characters are required")
        return
    }
    if req.ContactNumber != "" && !contactNumberPattern.MatchString(req.ContactNumber) {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Contact number must match 09XXXXXXXXX")
        return
    }

    resp, err := h.jwtService.Signup(req)
    if err != nil {
        if errors.Is(err, auth.ErrEmailTaken) {
            utils.SendErrorResponse(w, http.StatusConflict, "An account with this email already exists")
            return
        }
        log.Printf("Signup error for %s: %v", req.Email, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
        return
    }

    utils.SendJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
    var req models.AuthRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    req.Email = strings.ToLower(strings.TrimSpace(req.Email))

    resp, err := h.jwtService.Authenticate(req.Email, req.Password)
    if err != nil {
        if errors.Is(err, auth.ErrInvalidCredentials) {
            utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
            return
        }
        log.Printf("Login error for %s: %v", req.Email, err)
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Authentication failed")
        return
    }

    utils.SendJSON(w, http.StatusOK, resp)
}

// Me returns the identity behind the bearer token. The storefront calls it on
// load to restore the signed-in state.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
    user := middleware.GetUserFromContext(r.Context())
    if user == nil {
        utils.SendErrorResponse(w, http.StatusUnauthorized, "Authentication required")
        return
    }
    utils.SendJSON(w, http.StatusOK, user)
}
