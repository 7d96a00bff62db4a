package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT custom claims
type Claims struct {
	UserID            uuid.UUID `json:"user_id"`
	Email             string    `json:"email"`
	TwoFactorVerified bool      `json:"two_factor_verified"`
	jwt.RegisteredClaims
}
