package handlers

import (
	"github.com/gofiber/fiber/v2"

	"veleco/internal/models"
	"veleco/internal/repositories"
	"veleco/internal/services/settlement"
	"veleco/internal/utils"
)

// SettlementHandler serves the settlement and settlement-detail endpoints.
type SettlementHandler struct {
	service settlement.Service
}

func NewSettlementHandler(service settlement.Service) *SettlementHandler {
	return &SettlementHandler{service: service}
}

// CreateSettlement handles POST /settlements.
func (h *SettlementHandler) CreateSettlement(c *fiber.Ctx) error {
	var req settlement.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	created, err := h.service.Create(c.Context(), req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Created(c, created, "Settlement created successfully")
}

// ListSettlements handles GET /settlements.
func (h *SettlementHandler) ListSettlements(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c, 1, 10)
	start, end := queryDateRange(c)

	settlements, total, err := h.service.List(c.Context(), settlement.ListRequest{
		Filter: repositories.SettlementFilter{
			SellerID:  queryUint(c, "seller_id"),
			StoreID:   queryUint(c, "store_id"),
			Status:    models.SettlementStatus(c.Query("status")),
			StartDate: start,
			EndDate:   end,
		},
		Page:  pagination.CurrentPage,
		Limit: pagination.PerPage,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	pagination.SetTotal(total)

	return utils.Success(c, fiber.Map{
		"settlements": settlements,
		"pagination":  pagination,
	})
}

// GetSettlement handles GET /settlements/:id.
func (h *SettlementHandler) GetSettlement(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "settlement ID is required")
	}

	found, err := h.service.Get(c.Context(), id)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, found)
}

// UpdateSettlementStatus handles PUT /settlements/:id/status.
func (h *SettlementHandler) UpdateSettlementStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "settlement ID is required")
	}

	var req settlement.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	updated, err := h.service.UpdateStatus(c.Context(), id, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessMessage(c, updated, "Settlement status updated successfully")
}

// DeleteSettlement handles DELETE /settlements/:id.
func (h *SettlementHandler) DeleteSettlement(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "settlement ID is required")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.NoContent(c)
}

// CreateSettlementDetail handles POST /settlement-details.
func (h *SettlementHandler) CreateSettlementDetail(c *fiber.Ctx) error {
	var req settlement.CreateDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	detail, err := h.service.CreateDetail(c.Context(), req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Created(c, detail, "Settlement detail created successfully")
}

// UpdateSettlementDetail handles PUT /settlement-details/:id.
func (h *SettlementHandler) UpdateSettlementDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "settlement detail ID is required")
	}

	var req settlement.UpdateDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	detail, err := h.service.UpdateDetail(c.Context(), id, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessMessage(c, detail, "Settlement detail updated successfully")
}

// ListSettlementDetails handles GET /settlements/:id/details.
func (h *SettlementHandler) ListSettlementDetails(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "settlement ID is required")
	}

	details, err := h.service.ListDetails(c.Context(), id)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, details)
}
