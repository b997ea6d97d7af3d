package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"veleco/internal/utils"
)

// HealthHandler reports service liveness and database connectivity.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "up"

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		status = "degraded"
		dbStatus = "down"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return utils.Respond(c, code, fiber.Map{
		"status":   status,
		"database": dbStatus,
	})
}
