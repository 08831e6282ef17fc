package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents access token claims
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims identifies the user and the server-side session a refresh
// token belongs to
type RefreshClaims struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}
