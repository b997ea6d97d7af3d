package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SellerClaims is the authenticated identity supplied by the platform's auth
// layer. This service only consumes tokens; it never issues them.
type SellerClaims struct {
	jwt.RegisteredClaims
	SellerID uint   `json:"seller_id"`
	StoreID  uint   `json:"store_id"`
	Role     string `json:"role"`
}
