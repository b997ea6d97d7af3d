package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"veleco/internal/models"
)

// PaymentFilter narrows payment list and aggregate queries. Zero values mean
// "no filter".
type PaymentFilter struct {
	SellerID      uint
	StoreID       uint
	Status        models.PaymentStatus
	PaymentMethod string
	StartDate     *time.Time
	EndDate       *time.Time
}

// PaymentStatusUpdate carries the optional fields written alongside a status
// transition. The amount is never part of an update.
type PaymentStatusUpdate struct {
	TransactionReference *string
	PaymentDate          *time.Time
	FailureReason        *string
	Metadata             models.JSON
}

// PaymentAggregates is the whole-set payment rollup used by analytics.
type PaymentAggregates struct {
	TotalPayments     int64   `json:"total_payments"`
	CompletedPayments int64   `json:"completed_payments"`
	PendingPayments   int64   `json:"pending_payments"`
	FailedPayments    int64   `json:"failed_payments"`
	TotalAmount       float64 `json:"total_amount"`
	AverageAmount     float64 `json:"average_payment_amount"`
}

// MethodSummary groups completed payment volume by method.
type MethodSummary struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int64   `json:"count"`
	TotalAmount   float64 `json:"total_amount"`
}

// PaymentRepository persists seller payments.
type PaymentRepository interface {
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) PaymentRepository

	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	List(ctx context.Context, filter PaymentFilter, limit, offset int) ([]models.Payment, int64, error)
	ListPendingByIDs(ctx context.Context, ids []uint) ([]models.Payment, error)

	// UpdateStatusFromPending transitions a payment out of PENDING and
	// reports how many rows matched. Zero rows means the payment is missing
	// or already terminal.
	UpdateStatusFromPending(ctx context.Context, id uint, status models.PaymentStatus, update PaymentStatusUpdate) (int64, error)
	Delete(ctx context.Context, id uint) error

	ListForHistory(ctx context.Context, filter PaymentFilter, limit, offset int) ([]models.Payment, error)
	Aggregate(ctx context.Context, filter PaymentFilter) (*PaymentAggregates, error)
	SummaryByMethod(ctx context.Context, sellerID, storeID uint) ([]MethodSummary, error)
}
