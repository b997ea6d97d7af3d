// Package withdrawal implements the withdrawal processor. A withdrawal
// debits the seller balance at request time and records a negative-amount
// payment; both writes share one database transaction so an insufficient
// balance leaves no payment behind.
package withdrawal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"veleco/internal/errors"
	"veleco/internal/models"
	"veleco/internal/repositories"
	"veleco/internal/services/balance"
)

const defaultDescription = "Withdrawal"

// Request initiates a withdrawal against a store's available balance.
type Request struct {
	SellerID      uint    `json:"seller_id" validate:"required"`
	StoreID       uint    `json:"store_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
	Description   string  `json:"description"`
}

// Service processes seller withdrawals.
type Service interface {
	RequestWithdrawal(ctx context.Context, req Request) (*models.Payment, error)
}

type service struct {
	db          *gorm.DB
	paymentRepo repositories.PaymentRepository
	reconciler  balance.Service
}

// NewService creates the withdrawal processor.
func NewService(db *gorm.DB, paymentRepo repositories.PaymentRepository, reconciler balance.Service) Service {
	if db == nil {
		panic("db is required")
	}
	if paymentRepo == nil {
		panic("payment repository is required")
	}
	if reconciler == nil {
		panic("balance reconciler is required")
	}
	return &service{db: db, paymentRepo: paymentRepo, reconciler: reconciler}
}

func (s *service) RequestWithdrawal(ctx context.Context, req Request) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, errors.ErrInvalidAmount
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, errors.New(errors.KindValidation, "INVALID_PAYMENT_METHOD", "invalid payment method")
	}

	description := req.Description
	if description == "" {
		description = defaultDescription
	}
	ref := fmt.Sprintf("WD-%s", uuid.NewString())

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Debit first: the guarded update enforces available_amount >= amount
		// and an insufficient balance aborts before any payment row exists.
		if err := s.reconciler.WithTx(tx).Debit(ctx, req.SellerID, req.StoreID, req.Amount); err != nil {
			return err
		}

		payment = &models.Payment{
			SellerID:             req.SellerID,
			StoreID:              req.StoreID,
			Amount:               -req.Amount,
			PaymentMethod:        req.PaymentMethod,
			Status:               models.PaymentPending,
			TransactionReference: &ref,
			DueDate:              time.Now(),
			Description:          description,
		}
		return s.paymentRepo.WithTx(tx).Create(ctx, payment)
	})
	if err != nil {
		if _, ok := err.(*errors.DomainError); !ok {
			zap.L().Error("failed to process withdrawal",
				zap.Uint("seller_id", req.SellerID),
				zap.Uint("store_id", req.StoreID),
				zap.Float64("amount", req.Amount),
				zap.Error(err))
		}
		return nil, err
	}
	return payment, nil
}
