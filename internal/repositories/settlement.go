package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"veleco/internal/models"
)

// SettlementFilter narrows settlement list and aggregate queries. Zero values
// mean "no filter".
type SettlementFilter struct {
	SellerID  uint
	StoreID   uint
	Status    models.SettlementStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// SettlementStatusUpdate carries the optional fields written alongside a
// status transition.
type SettlementStatusUpdate struct {
	TransactionReference *string
	SettledAt            *time.Time
}

// SettlementAggregates is the whole-set settlement rollup used by analytics.
type SettlementAggregates struct {
	TotalSettlements     int64   `json:"total_settlements"`
	CompletedSettlements int64   `json:"completed_settlements"`
	PendingSettlements   int64   `json:"pending_settlements"`
	TotalSalesAmount     float64 `json:"total_sales_amount"`
	TotalCommission      float64 `json:"total_commission"`
	TotalTax             float64 `json:"total_tax"`
	NetSettlementAmount  float64 `json:"net_settlement_amount"`
}

// SettlementRepository persists settlements and their per-order details.
type SettlementRepository interface {
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) SettlementRepository

	Create(ctx context.Context, settlement *models.Settlement) error
	GetByID(ctx context.Context, id uint) (*models.Settlement, error)
	List(ctx context.Context, filter SettlementFilter, limit, offset int) ([]models.Settlement, int64, error)

	// UpdateStatusFromPending transitions a settlement out of PENDING and
	// reports how many rows matched. Zero rows means the settlement is
	// missing or already terminal.
	UpdateStatusFromPending(ctx context.Context, id uint, status models.SettlementStatus, update SettlementStatusUpdate) (int64, error)
	Delete(ctx context.Context, id uint) error

	CreateDetail(ctx context.Context, detail *models.SettlementDetail) error
	GetDetailByID(ctx context.Context, id uint) (*models.SettlementDetail, error)
	UpdateDetail(ctx context.Context, detail *models.SettlementDetail) error
	ListDetails(ctx context.Context, settlementID uint) ([]models.SettlementDetail, error)

	ListForHistory(ctx context.Context, filter SettlementFilter, limit, offset int) ([]models.Settlement, error)
	Aggregate(ctx context.Context, filter SettlementFilter) (*SettlementAggregates, error)
}
