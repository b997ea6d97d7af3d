package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"veleco/internal/errors"
	"veleco/internal/models"
)

type settlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) WithTx(tx *gorm.DB) SettlementRepository {
	return &settlementRepository{db: tx}
}

func (r *settlementRepository) Create(ctx context.Context, settlement *models.Settlement) error {
	if err := r.db.WithContext(ctx).Create(settlement).Error; err != nil {
		return fmt.Errorf("failed to create settlement: %w", err)
	}
	return nil
}

func (r *settlementRepository) GetByID(ctx context.Context, id uint) (*models.Settlement, error) {
	var settlement models.Settlement
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Payments").
		First(&settlement, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSettlementNotFound
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return &settlement, nil
}

func (r *settlementRepository) applyFilter(db *gorm.DB, filter SettlementFilter) *gorm.DB {
	if filter.SellerID != 0 {
		db = db.Where("seller_id = ?", filter.SellerID)
	}
	if filter.StoreID != 0 {
		db = db.Where("store_id = ?", filter.StoreID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		db = db.Where("period_start >= ? AND period_start <= ?", filter.StartDate, filter.EndDate)
	}
	return db
}

func (r *settlementRepository) List(ctx context.Context, filter SettlementFilter, limit, offset int) ([]models.Settlement, int64, error) {
	var (
		settlements []models.Settlement
		total       int64
	)

	base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Settlement{}), filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Details").
		Preload("Payments").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&settlements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, total, nil
}

func (r *settlementRepository) UpdateStatusFromPending(ctx context.Context, id uint, status models.SettlementStatus, update SettlementStatusUpdate) (int64, error) {
	fields := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if update.TransactionReference != nil {
		fields["transaction_reference"] = update.TransactionReference
	}
	if update.SettledAt != nil {
		fields["settled_at"] = update.SettledAt
	}

	// The status guard doubles as the concurrency control: two concurrent
	// completions cannot both match the PENDING row.
	result := r.db.WithContext(ctx).
		Model(&models.Settlement{}).
		Where("id = ? AND status = ?", id, models.SettlementPending).
		Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update settlement status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *settlementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Where("status <> ?", models.SettlementCompleted).
		Delete(&models.Settlement{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete settlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrSettlementNotFound
	}
	return nil
}

func (r *settlementRepository) CreateDetail(ctx context.Context, detail *models.SettlementDetail) error {
	if err := r.db.WithContext(ctx).Create(detail).Error; err != nil {
		return fmt.Errorf("failed to create settlement detail: %w", err)
	}
	return nil
}

func (r *settlementRepository) GetDetailByID(ctx context.Context, id uint) (*models.SettlementDetail, error) {
	var detail models.SettlementDetail
	if err := r.db.WithContext(ctx).First(&detail, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDetailNotFound
		}
		return nil, fmt.Errorf("failed to get settlement detail: %w", err)
	}
	return &detail, nil
}

func (r *settlementRepository) UpdateDetail(ctx context.Context, detail *models.SettlementDetail) error {
	if err := r.db.WithContext(ctx).Save(detail).Error; err != nil {
		return fmt.Errorf("failed to update settlement detail: %w", err)
	}
	return nil
}

func (r *settlementRepository) ListDetails(ctx context.Context, settlementID uint) ([]models.SettlementDetail, error) {
	var details []models.SettlementDetail
	err := r.db.WithContext(ctx).
		Where("settlement_id = ?", settlementID).
		Order("created_at ASC").
		Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement details: %w", err)
	}
	return details, nil
}

func (r *settlementRepository) ListForHistory(ctx context.Context, filter SettlementFilter, limit, offset int) ([]models.Settlement, error) {
	var settlements []models.Settlement
	db := r.db.WithContext(ctx)
	if filter.SellerID != 0 {
		db = db.Where("seller_id = ?", filter.SellerID)
	}
	if filter.StoreID != 0 {
		db = db.Where("store_id = ?", filter.StoreID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		db = db.Where("created_at >= ? AND created_at <= ?", filter.StartDate, filter.EndDate)
	}
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement history: %w", err)
	}
	return settlements, nil
}

func (r *settlementRepository) Aggregate(ctx context.Context, filter SettlementFilter) (*SettlementAggregates, error) {
	var agg SettlementAggregates
	db := r.db.WithContext(ctx).Model(&models.Settlement{})
	if filter.SellerID != 0 {
		db = db.Where("seller_id = ?", filter.SellerID)
	}
	if filter.StoreID != 0 {
		db = db.Where("store_id = ?", filter.StoreID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		db = db.Where("created_at >= ? AND created_at <= ?", filter.StartDate, filter.EndDate)
	}

	err := db.Select(`
		COUNT(*) as total_settlements,
		COALESCE(SUM(CASE WHEN status = 'COMPLETED' THEN 1 ELSE 0 END), 0) as completed_settlements,
		COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0) as pending_settlements,
		COALESCE(SUM(total_sales_amount), 0) as total_sales_amount,
		COALESCE(SUM(platform_commission), 0) as total_commission,
		COALESCE(SUM(tax_deduction), 0) as total_tax,
		COALESCE(SUM(net_settlement_amount), 0) as net_settlement_amount
	`).Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate settlements: %w", err)
	}
	return &agg, nil
}
