package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"veleco/internal/errors"
	"veleco/internal/services/balance"
	"veleco/internal/services/payment"
	"veleco/internal/services/withdrawal"
	"veleco/internal/utils"
)

// BalanceHandler serves the seller-balance endpoints.
type BalanceHandler struct {
	reconciler  balance.Service
	withdrawals withdrawal.Service
	payments    payment.Service
}

func NewBalanceHandler(reconciler balance.Service, withdrawals withdrawal.Service, payments payment.Service) *BalanceHandler {
	return &BalanceHandler{reconciler: reconciler, withdrawals: withdrawals, payments: payments}
}

// GetBalance handles GET /seller-balance/:sellerId. With a store_id query it
// returns that store's balance; without one it returns every store balance
// for the seller plus a cross-store summary.
func (h *BalanceHandler) GetBalance(c *fiber.Ctx) error {
	sellerID, err := parseID(c, "sellerId")
	if err != nil {
		return utils.BadRequest(c, "seller ID is required")
	}

	if storeID := queryUint(c, "store_id"); storeID != 0 {
		bal, err := h.reconciler.GetBalance(c.Context(), sellerID, storeID)
		if err != nil {
			return utils.DomainErrorResponse(c, err)
		}
		return utils.Success(c, bal)
	}

	balances, summary, err := h.reconciler.ListBalances(c.Context(), sellerID, 0)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, fiber.Map{
		"balances": balances,
		"summary":  summary,
	})
}

// UpsertBalance handles PUT /seller-balance. Admin only.
func (h *BalanceHandler) UpsertBalance(c *fiber.Ctx) error {
	var req balance.UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	bal, err := h.reconciler.Upsert(c.Context(), req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessMessage(c, bal, "Seller balance updated successfully")
}

// RequestWithdrawal handles POST /seller-balance/withdraw.
func (h *BalanceHandler) RequestWithdrawal(c *fiber.Ctx) error {
	var req withdrawal.Request
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	created, err := h.withdrawals.RequestWithdrawal(c.Context(), req)
	if err != nil {
		if stderrors.Is(err, errors.ErrInsufficientBalance) {
			// Echo the current balance so the caller can show what is
			// actually withdrawable.
			data := fiber.Map{"requested_amount": req.Amount}
			if bal, berr := h.reconciler.GetBalance(c.Context(), req.SellerID, req.StoreID); berr == nil {
				data["available_amount"] = bal.AvailableAmount
			}
			return utils.Respond(c, fiber.StatusBadRequest, utils.Response{
				Success: false,
				Data:    data,
				Error:   errors.ErrInsufficientBalance.Message,
				Code:    errors.ErrInsufficientBalance.Code,
			})
		}
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Created(c, created, "Withdrawal request created successfully")
}

// GetHistory handles GET /seller-balance/:sellerId/history. Payments and
// settlements are merged into one feed, newest first.
func (h *BalanceHandler) GetHistory(c *fiber.Ctx) error {
	sellerID, err := parseID(c, "sellerId")
	if err != nil {
		return utils.BadRequest(c, "seller ID is required")
	}

	pagination := utils.GetPagination(c, 1, 20)
	start, end := queryDateRange(c)

	entries, err := h.payments.History(c.Context(), payment.HistoryRequest{
		SellerID:  sellerID,
		StoreID:   queryUint(c, "store_id"),
		StartDate: start,
		EndDate:   end,
		Page:      pagination.CurrentPage,
		Limit:     pagination.PerPage,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, fiber.Map{
		"history": entries,
		"pagination": fiber.Map{
			"current_page": pagination.CurrentPage,
			"per_page":     pagination.PerPage,
		},
	})
}
