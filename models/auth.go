package models

import "time"

type SignupRequest struct {
    Name          string `json:"name"`
    Email         string `json:"email"`
    ContactNumber string `json:"contact_number"`
    Password      string `json:"password"`
}

type AuthRequest struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

// AuthUser is the authenticated identity carried in the request context.
type AuthUser struct {
    UserID  string `json:"user_id"`
    Name    string `json:"name"`
    Email   string `json:"email"`
    IsAdmin bool   `json:"is_admin"`
}

type AuthResponse struct {
    Token     string    `json:"token"`
    ExpiresAt time.Time `json:"expires_at"`
    User      AuthUser  `json:"user"`
}
