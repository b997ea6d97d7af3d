// Package notifier is the event sink for settlement and payment status
// changes. Delivery belongs to the platform's notification pipeline; this
// service only emits the events.
package notifier

import (
	"context"

	"go.uber.org/zap"

	"veleco/internal/models"
)

// Notifier receives status-change events. Implementations must not block the
// calling transaction; emission happens after commit.
type Notifier interface {
	SettlementStatusChanged(ctx context.Context, s *models.Settlement)
	PaymentStatusChanged(ctx context.Context, p *models.Payment)
}

// LogNotifier emits events to the structured log. It stands in until the
// platform's delivery pipeline is attached.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) SettlementStatusChanged(ctx context.Context, s *models.Settlement) {
	zap.L().Info("settlement status changed",
		zap.Uint("settlement_id", s.ID),
		zap.Uint("seller_id", s.SellerID),
		zap.Uint("store_id", s.StoreID),
		zap.String("status", string(s.Status)),
		zap.Float64("net_settlement_amount", s.NetSettlementAmount))
}

func (LogNotifier) PaymentStatusChanged(ctx context.Context, p *models.Payment) {
	zap.L().Info("payment status changed",
		zap.Uint("payment_id", p.ID),
		zap.Uint("seller_id", p.SellerID),
		zap.Uint("store_id", p.StoreID),
		zap.String("status", string(p.Status)),
		zap.Float64("amount", p.Amount))
}

// NoopNotifier discards events. Used in tests.
type NoopNotifier struct{}

func (NoopNotifier) SettlementStatusChanged(ctx context.Context, s *models.Settlement) {}

func (NoopNotifier) PaymentStatusChanged(ctx context.Context, p *models.Payment) {}
