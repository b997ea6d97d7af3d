package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veleco/internal/errors"
	"veleco/internal/models"
	"veleco/internal/repositories"
	"veleco/internal/services/balance"
	"veleco/internal/testutil"
)

func newTestService(t *testing.T) (Service, balance.Service) {
	db := testutil.NewTestDB(t)
	reconciler := balance.NewService(repositories.NewBalanceRepository(db), nil)
	svc := NewService(db, repositories.NewSettlementRepository(db), reconciler, nil)
	return svc, reconciler
}

func newCreateRequest() CreateRequest {
	return CreateRequest{
		SellerID:           1,
		StoreID:            10,
		PeriodStart:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:          time.Date(2025, 1, 7, 23, 59, 59, 0, time.UTC),
		TotalSalesAmount:   12500,
		PlatformCommission: 625,
		TaxDeduction:       375,
		OtherDeductions:    50,
		PaymentMethod:      models.PaymentMethodBankTransfer,
	}
}

func TestSettlementService_Create(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("derives net amount and starts pending", func(t *testing.T) {
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, 11450.0, created.NetSettlementAmount)
		assert.Equal(t, models.SettlementPending, created.Status)
		assert.Nil(t, created.SettledAt)
		assert.NotZero(t, created.ID)
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		req := newCreateRequest()
		req.PeriodStart, req.PeriodEnd = req.PeriodEnd, req.PeriodStart

		_, err := svc.Create(ctx, req)
		assert.Equal(t, ErrInvalidPeriod, err)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		req := newCreateRequest()
		req.PaymentMethod = "BARTER"

		_, err := svc.Create(ctx, req)
		assert.Equal(t, ErrInvalidPaymentMethod, err)
	})
}

func TestSettlementService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completion credits the seller balance", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{
			Status: models.SettlementCompleted,
		})
		require.NoError(t, err)
		assert.Equal(t, models.SettlementCompleted, updated.Status)
		assert.NotNil(t, updated.SettledAt)

		bal, err := reconciler.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 11450.0, bal.AvailableAmount)
		assert.Equal(t, 11450.0, bal.TotalLifetimeEarnings)
		assert.NotNil(t, bal.LastSettlementDate)
	})

	t.Run("failure leaves the balance untouched", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{
			Status: models.SettlementFailed,
		})
		require.NoError(t, err)
		assert.Equal(t, models.SettlementFailed, updated.Status)
		assert.Nil(t, updated.SettledAt)

		_, err = reconciler.GetBalance(ctx, 1, 10)
		assert.Equal(t, errors.ErrBalanceNotFound, err)
	})

	t.Run("terminal settlements reject further transitions", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.SettlementCompleted})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.SettlementFailed})
		assert.Equal(t, errors.ErrSettlementTerminal, err)

		// The credit from the first completion stands alone.
		bal, err := reconciler.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 11450.0, bal.AvailableAmount)
	})

	t.Run("transition back to pending is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.SettlementPending})
		assert.Equal(t, ErrPendingNotAllowed, err)
	})

	t.Run("missing settlement reports not found", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateStatus(ctx, 999, UpdateStatusRequest{Status: models.SettlementCompleted})
		assert.Equal(t, errors.ErrSettlementNotFound, err)
	})

	t.Run("caller supplied settled_at is honored", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		settledAt := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{
			Status:    models.SettlementCompleted,
			SettledAt: &settledAt,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.SettledAt)
		assert.True(t, updated.SettledAt.Equal(settledAt))
	})
}

func TestSettlementService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("pending settlements can be deleted", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err = svc.Get(ctx, created.ID)
		assert.Equal(t, errors.ErrSettlementNotFound, err)
	})

	t.Run("completed settlements cannot be deleted", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.SettlementCompleted})
		require.NoError(t, err)

		assert.Equal(t, errors.ErrSettlementCompleted, svc.Delete(ctx, created.ID))
	})
}

func TestSettlementService_Details(t *testing.T) {
	ctx := context.Background()

	t.Run("detail amounts are derived", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		detail, err := svc.CreateDetail(ctx, CreateDetailRequest{
			SettlementID:   created.ID,
			OrderID:        501,
			OrderAmount:    299,
			CommissionRate: 5.0,
			TaxAmount:      8.97,
		})
		require.NoError(t, err)
		assert.Equal(t, 14.95, detail.CommissionAmount)
		assert.Equal(t, 275.08, detail.NetAmount)

		details, err := svc.ListDetails(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, details, 1)
	})

	t.Run("update recomputes the split", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		detail, err := svc.CreateDetail(ctx, CreateDetailRequest{
			SettlementID:   created.ID,
			OrderID:        501,
			OrderAmount:    299,
			CommissionRate: 5.0,
			TaxAmount:      8.97,
		})
		require.NoError(t, err)

		updated, err := svc.UpdateDetail(ctx, detail.ID, UpdateDetailRequest{
			OrderAmount:    500,
			CommissionRate: 10,
			TaxAmount:      0,
		})
		require.NoError(t, err)
		assert.Equal(t, 50.0, updated.CommissionAmount)
		assert.Equal(t, 450.0, updated.NetAmount)
	})

	t.Run("completed settlements freeze their details", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest())
		require.NoError(t, err)

		detail, err := svc.CreateDetail(ctx, CreateDetailRequest{
			SettlementID:   created.ID,
			OrderID:        501,
			OrderAmount:    299,
			CommissionRate: 5.0,
			TaxAmount:      8.97,
		})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.SettlementCompleted})
		require.NoError(t, err)

		_, err = svc.CreateDetail(ctx, CreateDetailRequest{
			SettlementID:   created.ID,
			OrderID:        502,
			OrderAmount:    100,
			CommissionRate: 5.0,
		})
		assert.Equal(t, errors.ErrDetailImmutable, err)

		_, err = svc.UpdateDetail(ctx, detail.ID, UpdateDetailRequest{
			OrderAmount:    100,
			CommissionRate: 5.0,
		})
		assert.Equal(t, errors.ErrDetailImmutable, err)
	})

	t.Run("detail for missing settlement reports not found", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateDetail(ctx, CreateDetailRequest{
			SettlementID:   999,
			OrderID:        1,
			OrderAmount:    100,
			CommissionRate: 5,
		})
		assert.Equal(t, errors.ErrSettlementNotFound, err)
	})
}

func TestSettlementService_List(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		req := newCreateRequest()
		req.PeriodStart = req.PeriodStart.AddDate(0, 0, 7*i)
		req.PeriodEnd = req.PeriodEnd.AddDate(0, 0, 7*i)
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
	other := newCreateRequest()
	other.SellerID = 2
	other.StoreID = 20
	_, err := svc.Create(ctx, other)
	require.NoError(t, err)

	t.Run("filters by seller", func(t *testing.T) {
		settlements, total, err := svc.List(ctx, ListRequest{
			Filter: repositories.SettlementFilter{SellerID: 1},
			Page:   1,
			Limit:  10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, settlements, 3)
	})

	t.Run("paginates", func(t *testing.T) {
		settlements, total, err := svc.List(ctx, ListRequest{
			Filter: repositories.SettlementFilter{SellerID: 1},
			Page:   2,
			Limit:  2,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, settlements, 1)
	})

	t.Run("filters by status", func(t *testing.T) {
		settlements, total, err := svc.List(ctx, ListRequest{
			Filter: repositories.SettlementFilter{Status: models.SettlementPending},
			Page:   1,
			Limit:  10,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, settlements, 4)
	})
}
