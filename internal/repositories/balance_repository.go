package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"veleco/internal/errors"
	"veleco/internal/models"
)

type balanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) WithTx(tx *gorm.DB) BalanceRepository {
	return &balanceRepository{db: tx}
}

func (r *balanceRepository) GetByStore(ctx context.Context, storeID uint) (*models.SellerBalance, error) {
	var balance models.SellerBalance
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(&balance).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to get seller balance: %w", err)
	}
	return &balance, nil
}

func (r *balanceRepository) ListBySeller(ctx context.Context, sellerID uint, storeID uint) ([]models.SellerBalance, error) {
	var balances []models.SellerBalance
	db := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if storeID != 0 {
		db = db.Where("store_id = ?", storeID)
	}
	if err := db.Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to list seller balances: %w", err)
	}
	return balances, nil
}

func (r *balanceRepository) Credit(ctx context.Context, sellerID, storeID uint, amount float64, settledAt time.Time) error {
	balance := models.SellerBalance{
		SellerID:              sellerID,
		StoreID:               storeID,
		AvailableAmount:       amount,
		TotalLifetimeEarnings: amount,
		LastSettlementDate:    &settledAt,
	}

	// Single-statement upsert: the increment happens in the database, so two
	// concurrent credits both land.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"available_amount":        gorm.Expr("available_amount + ?", amount),
			"total_lifetime_earnings": gorm.Expr("total_lifetime_earnings + ?", amount),
			"last_settlement_date":    settledAt,
			"updated_at":              time.Now(),
		}),
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to credit seller balance: %w", err)
	}
	return nil
}

func (r *balanceRepository) Debit(ctx context.Context, storeID uint, amount float64) error {
	// Guarded decrement: the available_amount >= amount predicate enforces
	// the non-negative balance invariant under concurrency.
	result := r.db.WithContext(ctx).
		Model(&models.SellerBalance{}).
		Where("store_id = ? AND available_amount >= ?", storeID, amount).
		Updates(map[string]interface{}{
			"available_amount":  gorm.Expr("available_amount - ?", amount),
			"total_withdrawals": gorm.Expr("total_withdrawals + ?", amount),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to debit seller balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.SellerBalance{}).
			Where("store_id = ?", storeID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check seller balance: %w", err)
		}
		if count == 0 {
			return errors.ErrBalanceNotFound
		}
		return errors.ErrInsufficientBalance
	}
	return nil
}

func (r *balanceRepository) ReverseDebit(ctx context.Context, storeID uint, amount float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.SellerBalance{}).
		Where("store_id = ?", storeID).
		Updates(map[string]interface{}{
			"available_amount": gorm.Expr("available_amount + ?", amount),
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reverse debit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrBalanceNotFound
	}
	return nil
}

func (r *balanceRepository) Upsert(ctx context.Context, balance *models.SellerBalance) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"pending_amount",
			"available_amount",
			"total_lifetime_earnings",
			"total_withdrawals",
			"commission_rate",
			"updated_at",
		}),
	}).Create(balance).Error
	if err != nil {
		return fmt.Errorf("failed to upsert seller balance: %w", err)
	}
	return nil
}
