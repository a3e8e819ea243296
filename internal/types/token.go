package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload carried by an access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}
