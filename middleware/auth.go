package middleware

import (
    "context"
    "log"
    "net/http"
    "strings"

    "arbt-storefront-api/models"
    "arbt-storefront-api/services/auth"
    "arbt-storefront-api/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(jwtService *auth.JWTService) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            authHeader := r.Header.Get("Authorization")
            if authHeader == "" {
                log.Printf("Missing Authorization header from %s", r.RemoteAddr)
                utils.SendErrorResponse(w, http.StatusUnauthorized, "Missing authorization header")
                return
            }

            parts := strings.Split(authHeader, " ")
            if len(parts) != 2 || parts[0] != "Bearer" {
                log.Printf("Invalid Authorization header format from %s", r.RemoteAddr)
                utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid authorization header format")
                return
            }

            user, err := jwtService.ValidateToken(parts[1])
            if err != nil {
                log.Printf("Token validation failed from %s: %v", r.RemoteAddr, err)

                var message string
                switch err {
                case auth.ErrTokenExpired:
                    message = "Token expired"
                case auth.ErrInvalidToken:
                    message = "Invalid token"
                default:
                    message = "Authentication failed"
                }

                utils.SendErrorResponse(w, http.StatusUnauthorized, message)
                return
            }

            ctx := context.WithValue(r.Context(), UserContextKey, user)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// RequireAdmin guards the back-office endpoints.
func RequireAdmin() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            user := GetUserFromContext(r.Context())
            if user == nil {
                utils.SendErrorResponse(w, http.StatusInternalServerError, "User not found in context")
                return
            }

            if !user.IsAdmin {
                log.Printf("Non-admin user attempted to access admin endpoint: %s", user.Email)
                utils.SendErrorResponse(w, http.StatusForbidden, "This endpoint requires an admin account")
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}

// OptionalAuth adds the user to the context when a valid token is present and
// continues anonymously otherwise. The cart endpoints use it: guests keep a
// session cart, signed-in users get their fee lookup.
func OptionalAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            authHeader := r.Header.Get("Authorization")
            if authHeader == "" {
                next.ServeHTTP(w, r)
                return
            }

            parts := strings.Split(authHeader, " ")
            if len(parts) != 2 || parts[0] != "Bearer" {
                next.ServeHTTP(w, r)
                return
            }

            user, err := jwtService.ValidateToken(parts[1])
            if err != nil {
                next.ServeHTTP(w, r)
                return
            }

            ctx := context.WithValue(r.Context(), UserContextKey, user)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// GetUserFromContext extracts the authenticated user, or nil.
func GetUserFromContext(ctx context.Context) *models.AuthUser {
    user, ok := ctx.Value(UserContextKey).(*models.AuthUser)
    if !ok {
        return nil
    }
    return user
}
