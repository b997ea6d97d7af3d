// Package settlement implements the settlement manager: creation, listing,
// the PENDING to COMPLETED/FAILED/CANCELLED state machine, and the per-order
// detail rows. Completing a settlement credits the seller balance in the same
// database transaction as the status write.
package settlement

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"veleco/internal/errors"
	"veleco/internal/models"
	"veleco/internal/repositories"
	"veleco/internal/services/balance"
	"veleco/internal/services/notifier"
)

// Service manages settlements and their details.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.Settlement, error)
	List(ctx context.Context, req ListRequest) ([]models.Settlement, int64, error)
	Get(ctx context.Context, id uint) (*models.Settlement, error)
	UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (*models.Settlement, error)
	Delete(ctx context.Context, id uint) error

	CreateDetail(ctx context.Context, req CreateDetailRequest) (*models.SettlementDetail, error)
	UpdateDetail(ctx context.Context, id uint, req UpdateDetailRequest) (*models.SettlementDetail, error)
	ListDetails(ctx context.Context, settlementID uint) ([]models.SettlementDetail, error)
}

type service struct {
	db         *gorm.DB
	repo       repositories.SettlementRepository
	reconciler balance.Service
	notifier   notifier.Notifier
}

// NewService creates the settlement manager. A nil notifier discards events.
func NewService(db *gorm.DB, repo repositories.SettlementRepository, reconciler balance.Service, n notifier.Notifier) Service {
	if db == nil {
		panic("db is required")
	}
	if repo == nil {
		panic("settlement repository is required")
	}
	if reconciler == nil {
		panic("balance reconciler is required")
	}
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &service{db: db, repo: repo, reconciler: reconciler, notifier: n}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Settlement, error) {
	if !req.PeriodStart.Before(req.PeriodEnd) {
		return nil, ErrInvalidPeriod
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	settlement := &models.Settlement{
		SellerID:             req.SellerID,
		StoreID:              req.StoreID,
		PeriodStart:          req.PeriodStart,
		PeriodEnd:            req.PeriodEnd,
		TotalSalesAmount:     req.TotalSalesAmount,
		PlatformCommission:   req.PlatformCommission,
		TaxDeduction:         req.TaxDeduction,
		OtherDeductions:      req.OtherDeductions,
		NetSettlementAmount:  ComputeNet(req.TotalSalesAmount, req.PlatformCommission, req.TaxDeduction, req.OtherDeductions),
		Status:               models.SettlementPending,
		PaymentMethod:        req.PaymentMethod,
		TransactionReference: req.TransactionReference,
		Details:              []models.SettlementDetail{},
		Payments:             []models.Payment{},
	}

	if err := s.repo.Create(ctx, settlement); err != nil {
		zap.L().Error("failed to create settlement",
			zap.Uint("seller_id", req.SellerID),
			zap.Uint("store_id", req.StoreID),
			zap.Error(err))
		return nil, err
	}
	return settlement, nil
}

func (s *service) List(ctx context.Context, req ListRequest) ([]models.Settlement, int64, error) {
	offset := (req.Page - 1) * req.Limit
	return s.repo.List(ctx, req.Filter, req.Limit, offset)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Settlement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (*models.Settlement, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if req.Status == models.SettlementPending {
		return nil, ErrPendingNotAllowed
	}

	var updated *models.Settlement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		update := repositories.SettlementStatusUpdate{
			TransactionReference: req.TransactionReference,
		}
		if req.Status == models.SettlementCompleted {
			settledAt := time.Now()
			if req.SettledAt != nil {
				settledAt = *req.SettledAt
			}
			update.SettledAt = &settledAt
		}

		rows, err := repo.UpdateStatusFromPending(ctx, id, req.Status, update)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Missing settlement and terminal settlement are different
			// failures; look at the row to tell them apart.
			if _, err := repo.GetByID(ctx, id); err != nil {
				return err
			}
			return errors.ErrSettlementTerminal
		}

		updated, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// The balance credit and the status write commit or roll back
		// together.
		if req.Status == models.SettlementCompleted {
			return s.reconciler.WithTx(tx).Credit(ctx, updated.SellerID, updated.StoreID, updated.NetSettlementAmount)
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*errors.DomainError); !ok {
			zap.L().Error("failed to update settlement status",
				zap.Uint("settlement_id", id),
				zap.String("status", string(req.Status)),
				zap.Error(err))
		}
		return nil, err
	}
	s.notifier.SettlementStatusChanged(ctx, updated)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == models.SettlementCompleted {
		return errors.ErrSettlementCompleted
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CreateDetail(ctx context.Context, req CreateDetailRequest) (*models.SettlementDetail, error) {
	parent, err := s.repo.GetByID(ctx, req.SettlementID)
	if err != nil {
		return nil, err
	}
	if parent.Status == models.SettlementCompleted {
		return nil, errors.ErrDetailImmutable
	}

	split := ComputeDetail(req.OrderAmount, req.CommissionRate, req.TaxAmount)
	detail := &models.SettlementDetail{
		SettlementID:     req.SettlementID,
		OrderID:          req.OrderID,
		OrderAmount:      req.OrderAmount,
		CommissionRate:   req.CommissionRate,
		CommissionAmount: split.CommissionAmount,
		TaxAmount:        split.TaxAmount,
		NetAmount:        split.NetAmount,
	}
	if err := s.repo.CreateDetail(ctx, detail); err != nil {
		zap.L().Error("failed to create settlement detail",
			zap.Uint("settlement_id", req.SettlementID),
			zap.Error(err))
		return nil, err
	}
	return detail, nil
}

func (s *service) UpdateDetail(ctx context.Context, id uint, req UpdateDetailRequest) (*models.SettlementDetail, error) {
	detail, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parent, err := s.repo.GetByID(ctx, detail.SettlementID)
	if err != nil {
		return nil, err
	}
	if parent.Status == models.SettlementCompleted {
		return nil, errors.ErrDetailImmutable
	}

	split := ComputeDetail(req.OrderAmount, req.CommissionRate, req.TaxAmount)
	detail.OrderAmount = req.OrderAmount
	detail.CommissionRate = req.CommissionRate
	detail.CommissionAmount = split.CommissionAmount
	detail.TaxAmount = split.TaxAmount
	detail.NetAmount = split.NetAmount

	if err := s.repo.UpdateDetail(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *service) ListDetails(ctx context.Context, settlementID uint) ([]models.SettlementDetail, error) {
	if _, err := s.repo.GetByID(ctx, settlementID); err != nil {
		return nil, err
	}
	return s.repo.ListDetails(ctx, settlementID)
}
