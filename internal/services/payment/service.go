// Package payment implements the payment manager for seller payouts and
// withdrawal debits. Completing a positive payment credits the seller balance
// in the same database transaction as the status write; a negative payment
// was already debited when the withdrawal was requested, so completion adds
// nothing and failure reverses the debit.
package payment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"veleco/internal/errors"
	"veleco/internal/models"
	"veleco/internal/repositories"
	"veleco/internal/services/balance"
	"veleco/internal/services/notifier"
)

// Service manages seller payments.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.Payment, error)
	List(ctx context.Context, req ListRequest) ([]models.Payment, *Summary, int64, error)
	Get(ctx context.Context, id uint) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (*models.Payment, error)
	BulkProcess(ctx context.Context, req BulkProcessRequest) ([]models.Payment, error)
	Delete(ctx context.Context, id uint) error
	History(ctx context.Context, req HistoryRequest) ([]HistoryEntry, error)
}

type service struct {
	db             *gorm.DB
	repo           repositories.PaymentRepository
	settlementRepo repositories.SettlementRepository
	reconciler     balance.Service
	notifier       notifier.Notifier
}

// NewService creates the payment manager. A nil notifier discards events.
func NewService(db *gorm.DB, repo repositories.PaymentRepository, settlementRepo repositories.SettlementRepository, reconciler balance.Service, n notifier.Notifier) Service {
	if db == nil {
		panic("db is required")
	}
	if repo == nil {
		panic("payment repository is required")
	}
	if settlementRepo == nil {
		panic("settlement repository is required")
	}
	if reconciler == nil {
		panic("balance reconciler is required")
	}
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &service{db: db, repo: repo, settlementRepo: settlementRepo, reconciler: reconciler, notifier: n}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Payment, error) {
	if req.Amount == 0 {
		return nil, ErrZeroAmount
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	payment := &models.Payment{
		SellerID:      req.SellerID,
		StoreID:       req.StoreID,
		SettlementID:  req.SettlementID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentPending,
		DueDate:       req.DueDate,
		Description:   req.Description,
		Metadata:      req.Metadata,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		zap.L().Error("failed to create payment",
			zap.Uint("seller_id", req.SellerID),
			zap.Uint("store_id", req.StoreID),
			zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (s *service) List(ctx context.Context, req ListRequest) ([]models.Payment, *Summary, int64, error) {
	offset := (req.Page - 1) * req.Limit
	payments, total, err := s.repo.List(ctx, req.Filter, req.Limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}

	// Page-local summary only; whole-set aggregates are the analytics
	// service's job.
	summary := &Summary{StatusBreakdown: make(map[string]int64)}
	for _, p := range payments {
		summary.TotalAmount += p.Amount
		summary.StatusBreakdown[string(p.Status)]++
	}
	return payments, summary, total, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (*models.Payment, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if req.Status == models.PaymentPending {
		return nil, ErrPendingNotAllowed
	}

	var updated *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = s.transition(ctx, tx, id, req)
		return err
	})
	if err != nil {
		if _, ok := err.(*errors.DomainError); !ok {
			zap.L().Error("failed to update payment status",
				zap.Uint("payment_id", id),
				zap.String("status", string(req.Status)),
				zap.Error(err))
		}
		return nil, err
	}
	s.notifier.PaymentStatusChanged(ctx, updated)
	return updated, nil
}

// transition applies one status change inside tx and settles the balance
// effect of the new state.
func (s *service) transition(ctx context.Context, tx *gorm.DB, id uint, req UpdateStatusRequest) (*models.Payment, error) {
	repo := s.repo.WithTx(tx)

	update := repositories.PaymentStatusUpdate{
		TransactionReference: req.TransactionReference,
		FailureReason:        req.FailureReason,
		Metadata:             req.Metadata,
	}
	if req.Status == models.PaymentCompleted {
		now := time.Now()
		update.PaymentDate = &now
	}

	rows, err := repo.UpdateStatusFromPending(ctx, id, req.Status, update)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if _, err := repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, errors.ErrPaymentTerminal
	}

	payment, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reconciler := s.reconciler.WithTx(tx)
	switch {
	case req.Status == models.PaymentCompleted && payment.Amount > 0:
		// Payout lands on completion.
		if err := reconciler.Credit(ctx, payment.SellerID, payment.StoreID, payment.Amount); err != nil {
			return nil, err
		}
	case req.Status == models.PaymentFailed && payment.IsWithdrawal():
		// The withdrawal was debited at request time; a failed one returns
		// the funds.
		if err := reconciler.ReverseDebit(ctx, payment.SellerID, payment.StoreID, -payment.Amount); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

func (s *service) BulkProcess(ctx context.Context, req BulkProcessRequest) ([]models.Payment, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if req.Status == models.PaymentPending {
		return nil, ErrPendingNotAllowed
	}

	pending, err := s.repo.ListPendingByIDs(ctx, req.PaymentIDs)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, errors.ErrNoPendingPayments
	}

	// Each payment transitions in its own transaction; one bad record does
	// not fail the batch.
	processed := make([]models.Payment, 0, len(pending))
	for _, p := range pending {
		ref := fmt.Sprintf("%s-%d", req.TransactionReferencePrefix, p.ID)
		update := UpdateStatusRequest{
			Status:               req.Status,
			TransactionReference: &ref,
		}

		var updated *models.Payment
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var err error
			updated, err = s.transition(ctx, tx, p.ID, update)
			return err
		})
		if err != nil {
			zap.L().Warn("bulk process skipped payment",
				zap.Uint("payment_id", p.ID),
				zap.Error(err))
			continue
		}
		s.notifier.PaymentStatusChanged(ctx, updated)
		processed = append(processed, *updated)
	}
	return processed, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) History(ctx context.Context, req HistoryRequest) ([]HistoryEntry, error) {
	offset := (req.Page - 1) * req.Limit

	payments, err := s.repo.ListForHistory(ctx, repositories.PaymentFilter{
		SellerID:  req.SellerID,
		StoreID:   req.StoreID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}, req.Limit, offset)
	if err != nil {
		return nil, err
	}

	settlements, err := s.settlementRepo.ListForHistory(ctx, repositories.SettlementFilter{
		SellerID:  req.SellerID,
		StoreID:   req.StoreID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}, req.Limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(payments)+len(settlements))
	for i := range payments {
		entries = append(entries, HistoryEntry{
			Type:      "payment",
			CreatedAt: payments[i].CreatedAt,
			Payment:   &payments[i],
		})
	}
	for i := range settlements {
		entries = append(entries, HistoryEntry{
			Type:       "settlement",
			CreatedAt:  settlements[i].CreatedAt,
			Settlement: &settlements[i],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
