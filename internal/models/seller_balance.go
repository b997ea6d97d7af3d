package models

import (
	"time"
)

// SellerBalance is the running ledger for one store. There is exactly one row
// per store (store_id is unique); seller_id is denormalized for filtering.
// All mutations go through the balance reconciler.
type SellerBalance struct {
	ID                    uint       `gorm:"primarykey" json:"id"`
	SellerID              uint       `gorm:"not null;index" json:"seller_id"`
	StoreID               uint       `gorm:"uniqueIndex;not null" json:"store_id"`
	PendingAmount         float64    `gorm:"type:decimal(12,2);default:0" json:"pending_amount"`
	AvailableAmount       float64    `gorm:"type:decimal(12,2);default:0" json:"available_amount"`
	TotalLifetimeEarnings float64    `gorm:"type:decimal(14,2);default:0" json:"total_lifetime_earnings"`
	TotalWithdrawals      float64    `gorm:"type:decimal(14,2);default:0" json:"total_withdrawals"`
	LastSettlementDate    *time.Time `json:"last_settlement_date"`
	NextSettlementDate    *time.Time `json:"next_settlement_date"`
	CommissionRate        float64    `gorm:"type:decimal(5,2);default:0" json:"commission_rate"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
