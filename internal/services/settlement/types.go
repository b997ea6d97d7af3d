package settlement

import (
	"time"

	"veleco/internal/models"
	"veleco/internal/repositories"
)

// CreateRequest creates a new settlement. The net amount is derived, never
// supplied by the caller.
type CreateRequest struct {
	SellerID             uint      `json:"seller_id" validate:"required"`
	StoreID              uint      `json:"store_id" validate:"required"`
	PeriodStart          time.Time `json:"settlement_period_start" validate:"required"`
	PeriodEnd            time.Time `json:"settlement_period_end" validate:"required"`
	TotalSalesAmount     float64   `json:"total_sales_amount" validate:"gte=0"`
	PlatformCommission   float64   `json:"platform_commission" validate:"gte=0"`
	TaxDeduction         float64   `json:"tax_deduction" validate:"gte=0"`
	OtherDeductions      float64   `json:"other_deductions" validate:"gte=0"`
	PaymentMethod        string    `json:"payment_method" validate:"required"`
	TransactionReference *string   `json:"transaction_reference"`
}

// ListRequest filters and paginates settlements.
type ListRequest struct {
	Filter repositories.SettlementFilter
	Page   int
	Limit  int
}

// UpdateStatusRequest transitions a settlement out of PENDING.
type UpdateStatusRequest struct {
	Status               models.SettlementStatus `json:"status" validate:"required"`
	TransactionReference *string                 `json:"transaction_reference"`
	SettledAt            *time.Time              `json:"settled_at"`
}

// CreateDetailRequest adds a per-order breakdown row to a settlement.
// Commission and net amounts are derived.
type CreateDetailRequest struct {
	SettlementID   uint    `json:"settlement_id" validate:"required"`
	OrderID        uint    `json:"order_id" validate:"required"`
	OrderAmount    float64 `json:"order_amount" validate:"gt=0"`
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
	TaxAmount      float64 `json:"tax_amount" validate:"gte=0"`
}

// UpdateDetailRequest recomputes an existing detail row.
type UpdateDetailRequest struct {
	OrderAmount    float64 `json:"order_amount" validate:"gt=0"`
	CommissionRate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
	TaxAmount      float64 `json:"tax_amount" validate:"gte=0"`
}
