// Package analytics provides read-only rollups over payments and
// settlements. Aggregates always cover the entire filtered set, unlike the
// page-local summary the payment list returns.
package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"veleco/internal/repositories"
	"veleco/internal/repositories/cache"
)

// Request filters the analytics window. SellerID is required; the rest are
// optional.
type Request struct {
	SellerID  uint
	StoreID   uint
	StartDate *time.Time
	EndDate   *time.Time
}

// Period echoes the requested window back to the caller.
type Period struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Report is the combined payment and settlement rollup.
type Report struct {
	PaymentAnalytics    *repositories.PaymentAggregates    `json:"payment_analytics"`
	SettlementAnalytics *repositories.SettlementAggregates `json:"settlement_analytics"`
	SuccessRate         float64                            `json:"success_rate"`
	Period              Period                             `json:"period"`
}

// Cache is the subset of the cache service analytics needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service aggregates payments and settlements.
type Service interface {
	GetAnalytics(ctx context.Context, req Request) (*Report, error)
	SummaryByMethod(ctx context.Context, sellerID, storeID uint) ([]repositories.MethodSummary, error)
}

type service struct {
	paymentRepo    repositories.PaymentRepository
	settlementRepo repositories.SettlementRepository
	cache          Cache
}

// NewService creates the analytics aggregator. The cache may be nil.
func NewService(paymentRepo repositories.PaymentRepository, settlementRepo repositories.SettlementRepository, c Cache) Service {
	if paymentRepo == nil {
		panic("payment repository is required")
	}
	if settlementRepo == nil {
		panic("settlement repository is required")
	}
	return &service{paymentRepo: paymentRepo, settlementRepo: settlementRepo, cache: c}
}

func (s *service) GetAnalytics(ctx context.Context, req Request) (*Report, error) {
	var start, end string
	if req.StartDate != nil {
		start = req.StartDate.Format(time.RFC3339)
	}
	if req.EndDate != nil {
		end = req.EndDate.Format(time.RFC3339)
	}
	key := cache.AnalyticsKey(req.SellerID, req.StoreID, start, end)

	if s.cache != nil {
		var cached Report
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	payments, err := s.paymentRepo.Aggregate(ctx, repositories.PaymentFilter{
		SellerID:  req.SellerID,
		StoreID:   req.StoreID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		zap.L().Error("failed to aggregate payments", zap.Error(err))
		return nil, err
	}

	settlements, err := s.settlementRepo.Aggregate(ctx, repositories.SettlementFilter{
		SellerID:  req.SellerID,
		StoreID:   req.StoreID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		zap.L().Error("failed to aggregate settlements", zap.Error(err))
		return nil, err
	}

	report := &Report{
		PaymentAnalytics:    payments,
		SettlementAnalytics: settlements,
		Period:              Period{StartDate: req.StartDate, EndDate: req.EndDate},
	}
	if payments.TotalPayments > 0 {
		report.SuccessRate = float64(payments.CompletedPayments) / float64(payments.TotalPayments) * 100
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, 5*time.Minute); err != nil {
			zap.L().Debug("failed to cache analytics report", zap.Error(err))
		}
	}
	return report, nil
}

func (s *service) SummaryByMethod(ctx context.Context, sellerID, storeID uint) ([]repositories.MethodSummary, error) {
	return s.paymentRepo.SummaryByMethod(ctx, sellerID, storeID)
}
