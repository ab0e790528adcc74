package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is carried by short-lived access tokens.
type AccessClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims is carried by refresh tokens; only the user id is embedded.
type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
