package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"veleco/internal/models"
	"veleco/internal/repositories"
	"veleco/internal/services/payment"
	"veleco/internal/utils"
)

// PaymentHandler serves the seller-payment endpoints.
type PaymentHandler struct {
	service payment.Service
}

func NewPaymentHandler(service payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreatePayment handles POST /seller-payments.
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req payment.CreateRequest
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
	return utils.Created(c, created, "Seller payment created successfully")
}

// ListPayments handles GET /seller-payments.
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c, 1, 10)
	start, end := queryDateRange(c)

	payments, summary, total, err := h.service.List(c.Context(), payment.ListRequest{
		Filter: repositories.PaymentFilter{
			SellerID:      queryUint(c, "seller_id"),
			StoreID:       queryUint(c, "store_id"),
			Status:        models.PaymentStatus(c.Query("status")),
			PaymentMethod: c.Query("payment_method"),
			StartDate:     start,
			EndDate:       end,
		},
		Page:  pagination.CurrentPage,
		Limit: pagination.PerPage,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	pagination.SetTotal(total)

	return utils.Success(c, fiber.Map{
		"payments":   payments,
		"summary":    summary,
		"pagination": pagination,
	})
}

// GetPayment handles GET /seller-payments/:id.
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "payment ID is required")
	}

	found, err := h.service.Get(c.Context(), id)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, found)
}

// UpdatePaymentStatus handles PUT /seller-payments/:id/status.
func (h *PaymentHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "payment ID is required")
	}

	var req payment.UpdateStatusRequest
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
	return utils.SuccessMessage(c, updated, "Payment status updated successfully")
}

// BulkProcessPayments handles POST /seller-payments/bulk-process.
func (h *PaymentHandler) BulkProcessPayments(c *fiber.Ctx) error {
	var req payment.BulkProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	processed, err := h.service.BulkProcess(c.Context(), req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessMessage(c, processed,
		fmt.Sprintf("%d payments processed successfully", len(processed)))
}

// DeletePayment handles DELETE /seller-payments/:id.
func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "payment ID is required")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.NoContent(c)
}
