// Package balance implements the balance reconciler, the single authority for
// mutating a store's seller balance. It does not deduplicate: callers
// guarantee exactly-once invocation through the one-directional status
// machines on settlements and payments.
package balance

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"veleco/internal/errors"
	"veleco/internal/models"
	"veleco/internal/repositories"
	"veleco/internal/repositories/cache"
)

type service struct {
	repo  repositories.BalanceRepository
	cache Cache
}

// NewService creates the balance reconciler.
func NewService(repo repositories.BalanceRepository, c Cache) Service {
	if repo == nil {
		panic("balance repository is required")
	}
	if c == nil {
		c = NoopCache{}
	}
	return &service{repo: repo, cache: c}
}

func (s *service) WithTx(tx *gorm.DB) Service {
	return &service{repo: s.repo.WithTx(tx), cache: s.cache}
}

func (s *service) Credit(ctx context.Context, sellerID, storeID uint, amount float64) error {
	if err := s.repo.Credit(ctx, sellerID, storeID, amount, time.Now()); err != nil {
		zap.L().Error("failed to credit seller balance",
			zap.Uint("seller_id", sellerID),
			zap.Uint("store_id", storeID),
			zap.Float64("amount", amount),
			zap.Error(err))
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}

func (s *service) Debit(ctx context.Context, sellerID, storeID uint, amount float64) error {
	if amount <= 0 {
		return errors.ErrInvalidAmount
	}
	if err := s.repo.Debit(ctx, storeID, amount); err != nil {
		if err != errors.ErrInsufficientBalance && err != errors.ErrBalanceNotFound {
			zap.L().Error("failed to debit seller balance",
				zap.Uint("seller_id", sellerID),
				zap.Uint("store_id", storeID),
				zap.Float64("amount", amount),
				zap.Error(err))
		}
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}

func (s *service) ReverseDebit(ctx context.Context, sellerID, storeID uint, amount float64) error {
	if amount <= 0 {
		return errors.ErrInvalidAmount
	}
	if err := s.repo.ReverseDebit(ctx, storeID, amount); err != nil {
		zap.L().Error("failed to reverse withdrawal debit",
			zap.Uint("seller_id", sellerID),
			zap.Uint("store_id", storeID),
			zap.Float64("amount", amount),
			zap.Error(err))
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}

func (s *service) GetBalance(ctx context.Context, sellerID, storeID uint) (*models.SellerBalance, error) {
	key := cache.BalanceKey(storeID)
	var cached models.SellerBalance
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	bal, err := s.repo.GetByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, bal, 5*time.Minute); err != nil {
		zap.L().Debug("failed to cache balance snapshot", zap.Error(err))
	}
	return bal, nil
}

func (s *service) ListBalances(ctx context.Context, sellerID, storeID uint) ([]models.SellerBalance, *Summary, error) {
	balances, err := s.repo.ListBySeller(ctx, sellerID, storeID)
	if err != nil {
		return nil, nil, err
	}

	summary := &Summary{}
	for _, b := range balances {
		summary.TotalPending += b.PendingAmount
		summary.TotalAvailable += b.AvailableAmount
		summary.TotalLifetimeEarnings += b.TotalLifetimeEarnings
		summary.TotalWithdrawals += b.TotalWithdrawals
	}
	return balances, summary, nil
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*models.SellerBalance, error) {
	bal := &models.SellerBalance{
		SellerID:              req.SellerID,
		StoreID:               req.StoreID,
		PendingAmount:         req.PendingAmount,
		AvailableAmount:       req.AvailableAmount,
		TotalLifetimeEarnings: req.TotalLifetimeEarnings,
		TotalWithdrawals:      req.TotalWithdrawals,
		CommissionRate:        req.CommissionRate,
	}
	if err := s.repo.Upsert(ctx, bal); err != nil {
		zap.L().Error("failed to upsert seller balance",
			zap.Uint("store_id", req.StoreID),
			zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx, req.StoreID)

	return s.repo.GetByStore(ctx, req.StoreID)
}

func (s *service) invalidate(ctx context.Context, storeID uint) {
	if err := s.cache.Delete(ctx, cache.BalanceKey(storeID)); err != nil {
		zap.L().Debug("failed to invalidate balance cache", zap.Error(err))
	}
}
