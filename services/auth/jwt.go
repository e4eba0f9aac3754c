package auth

import (
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/google/uuid"

    "arbt-storefront-api/database"
    "arbt-storefront-api/models"
    "arbt-storefront-api/utils"
)

const TokenDuration = 24 * time.Hour

var (
    ErrInvalidCredentials = errors.New("invalid email or password")
    ErrEmailTaken         = errors.New("email already registered")
    ErrTokenExpired       = errors.New("token expired")
    ErrInvalidToken       = errors.New("invalid token")
)

type JWTService struct {
    secretKey []byte
    issuer    string
    db        *database.Connection
}

type Claims struct {
    Name    string `json:"name"`
    Email   string `json:"email"`
    IsAdmin bool   `json:"is_admin"`
    jwt.RegisteredClaims
}

func NewJWTService(secretKey, issuer string, db *database.Connection) *JWTService {
    return &JWTService{
        secretKey: []byte(secretKey),
        issuer:    issuer,
        db:        db,
    }
}

// Signup registers a new customer account and signs them in.
func (j *JWTService) Signup(req models.SignupRequest) (*models.AuthResponse, error) {
    taken, err := j.db.EmailTaken(req.Email)
    if err != nil {
        return nil, fmt.Errorf("database error: %v", err)
    }
    if taken {
        return nil, ErrEmailTaken
    }

    user := models.User{
        ID:            uuid.NewString(),
        Name:          req.Name,
        Email:         req.Email,
        ContactNumber: req.ContactNumber,
        Passphrase:    utils.HashPassword(req.Password),
    }
    if err := j.db.CreateUser(&user); err != nil {
        return nil, err
    }

    return j.respond(user)
}

// Authenticate verifies credentials against the users table.
func (j *JWTService) Authenticate(email, password string) (*models.AuthResponse, error) {
    user, err := j.db.GetUserByEmail(email)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrInvalidCredentials
        }
        return nil, fmt.Errorf("database error: %v", err)
    }

    if user.Passphrase != utils.HashPassword(password) {
        return nil, ErrInvalidCredentials
    }

    return j.respond(*user)
}

func (j *JWTService) respond(user models.User) (*models.AuthResponse, error) {
    authUser := models.AuthUser{
        UserID:  user.ID,
        Name:    user.Name,
        Email:   user.Email,
        IsAdmin: user.IsAdmin,
    }

    token, err := j.GenerateToken(authUser, TokenDuration)
    if err != nil {
        return nil, fmt.Errorf("error generating token: %v", err)
    }

    return &models.AuthResponse{
        Token:     token,
        ExpiresAt: time.Now().Add(TokenDuration),
        User:      authUser,
    }, nil
}

func (j *JWTService) GenerateToken(user models.AuthUser, duration time.Duration) (string, error) {
    now := time.Now()
    claims := Claims{
        Name:    user.Name,
        Email:   user.Email,
        IsAdmin: user.IsAdmin,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   user.UserID,
            Issuer:    j.issuer,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
        },
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString(j.secretKey)
}

// ValidateToken parses a bearer token into the authenticated user.
func (j *JWTService) ValidateToken(tokenString string) (*models.AuthUser, error) {
    token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
        }
        return j.secretKey, nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return nil, ErrTokenExpired
        }
        return nil, ErrInvalidToken
    }

    claims, ok := token.Claims.(*Claims)
    if !ok || !token.Valid {
        return nil, ErrInvalidToken
    }

    return &models.AuthUser{
        UserID:  claims.Subject,
        Name:    claims.Name,
        Email:   claims.Email,
        IsAdmin: claims.IsAdmin,
    }, nil
}
