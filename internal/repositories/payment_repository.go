package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"veleco/internal/errors"
	"veleco/internal/models"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	return &paymentRepository{db: tx}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Settlement").
		First(&payment, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) applyFilter(db *gorm.DB, filter PaymentFilter) *gorm.DB {
	if filter.SellerID != 0 {
		db = db.Where("seller_id = ?", filter.SellerID)
	}
	if filter.StoreID != 0 {
		db = db.Where("store_id = ?", filter.StoreID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		db = db.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		db = db.Where("created_at >= ? AND created_at <= ?", filter.StartDate, filter.EndDate)
	}
	return db
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter, limit, offset int) ([]models.Payment, int64, error) {
	var (
		payments []models.Payment
		total    int64
	)

	base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Payment{}), filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Settlement").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepository) ListPendingByIDs(ctx context.Context, ids []uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, models.PaymentPending).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) UpdateStatusFromPending(ctx context.Context, id uint, status models.PaymentStatus, update PaymentStatusUpdate) (int64, error) {
	fields := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if update.TransactionReference != nil {
		fields["transaction_reference"] = update.TransactionReference
	}
	if update.PaymentDate != nil {
		fields["payment_date"] = update.PaymentDate
	}
	if update.FailureReason != nil {
		fields["failure_reason"] = update.FailureReason
	}
	if update.Metadata != nil {
		fields["metadata"] = update.Metadata
	}

	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentPending).
		Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Payment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrPaymentNotFound
	}
	return nil
}

func (r *paymentRepository) ListForHistory(ctx context.Context, filter PaymentFilter, limit, offset int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Settlement").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment history: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) Aggregate(ctx context.Context, filter PaymentFilter) (*PaymentAggregates, error) {
	var agg PaymentAggregates
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Payment{}), filter).
		Select(`
			COUNT(*) as total_payments,
			COALESCE(SUM(CASE WHEN status = 'COMPLETED' THEN 1 ELSE 0 END), 0) as completed_payments,
			COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0) as pending_payments,
			COALESCE(SUM(CASE WHEN status = 'FAILED' THEN 1 ELSE 0 END), 0) as failed_payments,
			COALESCE(SUM(amount), 0) as total_amount,
			COALESCE(AVG(amount), 0) as average_payment_amount
		`).Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}
	return &agg, nil
}

func (r *paymentRepository) SummaryByMethod(ctx context.Context, sellerID, storeID uint) ([]MethodSummary, error) {
	var summary []MethodSummary
	db := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("seller_id = ? AND status = ?", sellerID, models.PaymentCompleted)
	if storeID != 0 {
		db = db.Where("store_id = ?", storeID)
	}
	err := db.Select(`
			payment_method,
			COUNT(id) as count,
			COALESCE(SUM(amount), 0) as total_amount
		`).
		Group("payment_method").
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize payments by method: %w", err)
	}
	return summary, nil
}
