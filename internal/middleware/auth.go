// Package middleware provides HTTP middleware for the service. Authentication
// only validates tokens issued by the platform's auth layer; this service
// never issues credentials of its own.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"veleco/internal/models"
	"veleco/internal/utils"
)

// AuthMiddleware validates bearer tokens and injects the seller identity into
// the request context.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// Handler checks the Authorization header, validates the JWT signature and
// expiry, and stores the SellerClaims under the "claims" local.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &models.SellerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		zap.L().Debug("token validation failed", zap.Error(err))
		return utils.Unauthorized(c, "invalid token")
	}

	claims, ok := token.Claims.(*models.SellerClaims)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// RequireAdmin rejects requests whose claims do not carry the admin role.
// Administrative balance overrides are gated behind this.
func RequireAdmin(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.SellerClaims)
	if !ok || claims == nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if claims.Role != "admin" {
		return utils.Respond(c, fiber.StatusForbidden, utils.Response{Success: false, Error: "admin role required"})
	}
	return c.Next()
}
