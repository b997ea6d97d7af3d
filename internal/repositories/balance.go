package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"veleco/internal/models"
)

// BalanceRepository persists seller balances. All writes are expressed as
// server-side read-modify-write statements so concurrent mutations against
// the same store serialize in the database, never on a stale client read.
type BalanceRepository interface {
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) BalanceRepository

	GetByStore(ctx context.Context, storeID uint) (*models.SellerBalance, error)
	ListBySeller(ctx context.Context, sellerID uint, storeID uint) ([]models.SellerBalance, error)

	// Credit upserts the store's balance row and increments available amount
	// and lifetime earnings by amount.
	Credit(ctx context.Context, sellerID, storeID uint, amount float64, settledAt time.Time) error

	// Debit decrements available amount and increments total withdrawals.
	// It fails with ErrInsufficientBalance when the guarded update matches no
	// row with available_amount >= amount.
	Debit(ctx context.Context, storeID uint, amount float64) error

	// ReverseDebit returns a previously debited amount to available balance
	// without touching lifetime earnings or the withdrawals counter.
	ReverseDebit(ctx context.Context, storeID uint, amount float64) error

	// Upsert writes balance fields directly (administrative override).
	Upsert(ctx context.Context, balance *models.SellerBalance) error
}
