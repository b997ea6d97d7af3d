package models

import (
	"time"
)

// SettlementStatus is the lifecycle state of a settlement.
type SettlementStatus string

const (
	SettlementPending   SettlementStatus = "PENDING"
	SettlementCompleted SettlementStatus = "COMPLETED"
	SettlementFailed    SettlementStatus = "FAILED"
	SettlementCancelled SettlementStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s SettlementStatus) IsTerminal() bool {
	return s == SettlementCompleted || s == SettlementFailed || s == SettlementCancelled
}

// Valid reports whether s is a known settlement status.
func (s SettlementStatus) Valid() bool {
	switch s {
	case SettlementPending, SettlementCompleted, SettlementFailed, SettlementCancelled:
		return true
	}
	return false
}

// Payment methods supported for settlements and payouts.
const (
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodUPI          = "UPI"
	PaymentMethodWallet       = "WALLET"
	PaymentMethodCheque       = "CHEQUE"
	PaymentMethodCash         = "CASH"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodUPI, PaymentMethodWallet,
		PaymentMethodCheque, PaymentMethodCash:
		return true
	}
	return false
}

// Settlement represents one payout cycle for a seller's store over a period.
// NetSettlementAmount is derived once at creation and never recomputed.
type Settlement struct {
	ID                   uint             `gorm:"primarykey" json:"id"`
	SellerID             uint             `gorm:"not null;index" json:"seller_id"`
	StoreID              uint             `gorm:"not null;index" json:"store_id"`
	PeriodStart          time.Time        `gorm:"not null" json:"settlement_period_start"`
	PeriodEnd            time.Time        `gorm:"not null" json:"settlement_period_end"`
	TotalSalesAmount     float64          `gorm:"type:decimal(12,2);not null" json:"total_sales_amount"`
	PlatformCommission   float64          `gorm:"type:decimal(12,2);not null" json:"platform_commission"`
	TaxDeduction         float64          `gorm:"type:decimal(12,2);not null" json:"tax_deduction"`
	OtherDeductions      float64          `gorm:"type:decimal(12,2);default:0" json:"other_deductions"`
	NetSettlementAmount  float64          `gorm:"type:decimal(12,2);not null" json:"net_settlement_amount"`
	Status               SettlementStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	PaymentMethod        string           `gorm:"type:varchar(32);not null" json:"payment_method"`
	TransactionReference *string          `json:"transaction_reference"`
	SettledAt            *time.Time       `json:"settled_at"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`

	Details  []SettlementDetail `gorm:"foreignKey:SettlementID" json:"settlement_details"`
	Payments []Payment          `gorm:"foreignKey:SettlementID" json:"seller_payments"`
}

// SettlementDetail is the per-order commission/tax breakdown within a settlement.
type SettlementDetail struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	SettlementID     uint      `gorm:"not null;index" json:"settlement_id"`
	OrderID          uint      `gorm:"not null" json:"order_id"`
	OrderAmount      float64   `gorm:"type:decimal(12,2);not null" json:"order_amount"`
	CommissionRate   float64   `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	CommissionAmount float64   `gorm:"type:decimal(12,2);not null" json:"commission_amount"`
	TaxAmount        float64   `gorm:"type:decimal(12,2);default:0" json:"tax_amount"`
	NetAmount        float64   `gorm:"type:decimal(12,2);not null" json:"net_amount"`
	CreatedAt        time.Time `json:"created_at"`
}
