// Package handlers exposes the settlement subsystem as REST handlers for the
// fiber app. Handlers parse and validate requests; all business rules live in
// the services.
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"veleco/internal/models"
)

var errInvalidID = errors.New("invalid id")

// parseID parses a positive integer path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// queryUint parses an optional positive integer query parameter; absent or
// malformed values return zero.
func queryUint(c *fiber.Ctx, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// queryDateRange parses the optional start_date/end_date pair. Both must be
// present for the range to apply, matching the platform's API contract.
func queryDateRange(c *fiber.Ctx) (*time.Time, *time.Time) {
	start := parseDate(c.Query("start_date"))
	end := parseDate(c.Query("end_date"))
	if start == nil || end == nil {
		return nil, nil
	}
	return start, end
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// sellerClaims extracts the authenticated seller identity from the context.
func sellerClaims(c *fiber.Ctx) (*models.SellerClaims, error) {
	claims, ok := c.Locals("claims").(*models.SellerClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
