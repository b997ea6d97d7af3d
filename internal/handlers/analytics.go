package handlers

import (
	"github.com/gofiber/fiber/v2"

	"veleco/internal/services/analytics"
	"veleco/internal/utils"
)

// AnalyticsHandler serves the payment analytics endpoints.
type AnalyticsHandler struct {
	service analytics.Service
}

func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetAnalytics handles GET /payments/analytics.
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	sellerID := queryUint(c, "seller_id")
	if sellerID == 0 {
		return utils.BadRequest(c, "seller_id is required")
	}
	start, end := queryDateRange(c)

	report, err := h.service.GetAnalytics(c.Context(), analytics.Request{
		SellerID:  sellerID,
		StoreID:   queryUint(c, "store_id"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, report)
}

// GetSummaryByMethod handles GET /payments/summary-by-method.
func (h *AnalyticsHandler) GetSummaryByMethod(c *fiber.Ctx) error {
	sellerID := queryUint(c, "seller_id")
	if sellerID == 0 {
		return utils.BadRequest(c, "seller_id is required")
	}

	summary, err := h.service.SummaryByMethod(c.Context(), sellerID, queryUint(c, "store_id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, fiber.Map{"methods": summary})
}
