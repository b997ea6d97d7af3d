package payment

import (
	"time"

	"veleco/internal/models"
	"veleco/internal/repositories"
)

// CreateRequest creates a new seller payment. Amount is signed: positive is a
// payout, negative is a withdrawal debit.
type CreateRequest struct {
	SellerID      uint        `json:"seller_id" validate:"required"`
	StoreID       uint        `json:"store_id" validate:"required"`
	SettlementID  *uint       `json:"settlement_id"`
	Amount        float64     `json:"amount" validate:"required"`
	PaymentMethod string      `json:"payment_method" validate:"required"`
	DueDate       time.Time   `json:"due_date" validate:"required"`
	Description   string      `json:"description"`
	Metadata      models.JSON `json:"metadata"`
}

// ListRequest filters and paginates payments.
type ListRequest struct {
	Filter repositories.PaymentFilter
	Page   int
	Limit  int
}

// Summary is the page-local rollup returned by List. It covers only the
// returned page; whole-set aggregates come from the analytics service.
type Summary struct {
	TotalAmount     float64          `json:"total_amount"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
}

// UpdateStatusRequest transitions a payment out of PENDING.
type UpdateStatusRequest struct {
	Status               models.PaymentStatus `json:"status" validate:"required"`
	TransactionReference *string              `json:"transaction_reference"`
	FailureReason        *string              `json:"failure_reason"`
	Metadata             models.JSON          `json:"metadata"`
}

// BulkProcessRequest applies one transition to many pending payments.
type BulkProcessRequest struct {
	PaymentIDs                 []uint               `json:"payment_ids" validate:"required,min=1"`
	Status                     models.PaymentStatus `json:"status" validate:"required"`
	TransactionReferencePrefix string               `json:"transaction_reference_prefix"`
}

// HistoryRequest fetches the combined payment and settlement history for a
// seller.
type HistoryRequest struct {
	SellerID  uint
	StoreID   uint
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// HistoryEntry is one row of the combined history, either a payment or a
// settlement, merged newest first.
type HistoryEntry struct {
	Type       string             `json:"type"`
	CreatedAt  time.Time          `json:"created_at"`
	Payment    *models.Payment    `json:"payment,omitempty"`
	Settlement *models.Settlement `json:"settlement,omitempty"`
}
