package models

import (
	"time"
)

// PaymentStatus is the lifecycle state of a seller payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentCancelled
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// Payment is a single signed money movement for a seller: positive amounts are
// payout disbursements, negative amounts are withdrawal debits. The amount is
// immutable after creation.
type Payment struct {
	ID                   uint          `gorm:"primarykey" json:"id"`
	SellerID             uint          `gorm:"not null;index" json:"seller_id"`
	StoreID              uint          `gorm:"not null;index" json:"store_id"`
	SettlementID         *uint         `gorm:"index" json:"settlement_id"`
	Amount               float64       `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod        string        `gorm:"type:varchar(32);not null" json:"payment_method"`
	Status               PaymentStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	TransactionReference *string       `json:"transaction_reference"`
	PaymentDate          *time.Time    `json:"payment_date"`
	DueDate              time.Time     `gorm:"not null" json:"due_date"`
	Description          string        `json:"description"`
	FailureReason        *string       `json:"failure_reason"`
	Metadata             JSON          `gorm:"type:jsonb" json:"metadata"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`

	Settlement *Settlement `gorm:"foreignKey:SettlementID" json:"settlement,omitempty"`
}

// IsWithdrawal reports whether the payment is a withdrawal debit.
func (p *Payment) IsWithdrawal() bool {
	return p.Amount < 0
}
