package payment

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
	svc := NewService(db, repositories.NewPaymentRepository(db), repositories.NewSettlementRepository(db), reconciler, nil)
	return svc, reconciler
}

func newCreateRequest(amount float64) CreateRequest {
	return CreateRequest{
		SellerID:      1,
		StoreID:       10,
		Amount:        amount,
		PaymentMethod: models.PaymentMethodBankTransfer,
		DueDate:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Description:   "Weekly payout",
	}
}

func TestPaymentService_Create(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("starts pending", func(t *testing.T) {
		created, err := svc.Create(ctx, newCreateRequest(500))
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPending, created.Status)
		assert.Nil(t, created.PaymentDate)
		assert.False(t, created.IsWithdrawal())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := svc.Create(ctx, newCreateRequest(0))
		assert.Equal(t, ErrZeroAmount, err)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		req := newCreateRequest(100)
		req.PaymentMethod = "IOU"
		_, err := svc.Create(ctx, req)
		assert.Equal(t, ErrInvalidPaymentMethod, err)
	})
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completing a payout credits the balance", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest(500))
		require.NoError(t, err)

		ref := "TXN-001"
		updated, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{
			Status:               models.PaymentCompleted,
			TransactionReference: &ref,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentCompleted, updated.Status)
		require.NotNil(t, updated.PaymentDate)
		require.NotNil(t, updated.TransactionReference)
		assert.Equal(t, "TXN-001", *updated.TransactionReference)

		bal, err := reconciler.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 500.0, bal.AvailableAmount)
		assert.Equal(t, 500.0, bal.TotalLifetimeEarnings)
	})

	t.Run("failing a payout leaves the balance untouched", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest(500))
		require.NoError(t, err)

		reason := "bank account closed"
		updated, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{
			Status:        models.PaymentFailed,
			FailureReason: &reason,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentFailed, updated.Status)
		require.NotNil(t, updated.FailureReason)

		_, err = reconciler.GetBalance(ctx, 1, 10)
		assert.Equal(t, errors.ErrBalanceNotFound, err)
	})

	t.Run("terminal payments reject further transitions", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest(500))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.PaymentCompleted})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.PaymentCompleted})
		assert.Equal(t, errors.ErrPaymentTerminal, err)

		// The credit from the first completion is not repeated.
		bal, err := reconciler.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 500.0, bal.AvailableAmount)
	})

	t.Run("transition back to pending is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(ctx, newCreateRequest(500))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.PaymentPending})
		assert.Equal(t, ErrPendingNotAllowed, err)
	})

	t.Run("missing payment reports not found", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateStatus(ctx, 999, UpdateStatusRequest{Status: models.PaymentCompleted})
		assert.Equal(t, errors.ErrPaymentNotFound, err)
	})

	t.Run("failing a withdrawal returns the funds", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		ctx := context.Background()

		// Seed a balance, then record a withdrawal debit the way the
		// withdrawal processor does.
		_, err := reconciler.Upsert(ctx, balance.UpsertRequest{
			SellerID:        1,
			StoreID:         10,
			AvailableAmount: 1000,
		})
		require.NoError(t, err)
		require.NoError(t, reconciler.Debit(ctx, 1, 10, 400))

		created, err := svc.Create(ctx, newCreateRequest(-400))
		require.NoError(t, err)
		assert.True(t, created.IsWithdrawal())

		reason := "beneficiary rejected"
		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{
			Status:        models.PaymentFailed,
			FailureReason: &reason,
		})
		require.NoError(t, err)

		bal, err := reconciler.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, bal.AvailableAmount)
		// Withdrawal and earnings totals stay as they were.
		assert.Equal(t, 400.0, bal.TotalWithdrawals)
	})

	t.Run("completing a withdrawal adds nothing", func(t *testing.T) {
		svc, reconciler := newTestService(t)
		ctx := context.Background()

		_, err := reconciler.Upsert(ctx, balance.UpsertRequest{
			SellerID:        1,
			StoreID:         10,
			AvailableAmount: 1000,
		})
		require.NoError(t, err)
		require.NoError(t, reconciler.Debit(ctx, 1, 10, 400))

		created, err := svc.Create(ctx, newCreateRequest(-400))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: models.PaymentCompleted})
		require.NoError(t, err)

		bal, err := reconciler.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 600.0, bal.AvailableAmount)
	})
}

func TestPaymentService_BulkProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("processes pending payouts and credits each", func(t *testing.T) {
		svc, reconciler := newTestService(t)

		_, err := reconciler.Upsert(ctx, balance.UpsertRequest{
			SellerID:        1,
			StoreID:         10,
			AvailableAmount: 100,
		})
		require.NoError(t, err)
		require.NoError(t, reconciler.Debit(ctx, 1, 10, 50))

		first, err := svc.Create(ctx, newCreateRequest(100))
		require.NoError(t, err)
		withdrawalPmt, err := svc.Create(ctx, newCreateRequest(-50))
		require.NoError(t, err)
		second, err := svc.Create(ctx, newCreateRequest(200))
		require.NoError(t, err)

		processed, err := svc.BulkProcess(ctx, BulkProcessRequest{
			PaymentIDs:                 []uint{first.ID, withdrawalPmt.ID, second.ID},
			Status:                     models.PaymentCompleted,
			TransactionReferencePrefix: "BATCH-7",
		})
		require.NoError(t, err)
		require.Len(t, processed, 3)

		for _, p := range processed {
			assert.Equal(t, models.PaymentCompleted, p.Status)
			require.NotNil(t, p.TransactionReference)
			assert.Contains(t, *p.TransactionReference, "BATCH-7-")
		}

		// Only the positive payouts credit; the completed withdrawal was
		// debited at request time.
		bal, err := reconciler.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 350.0, bal.AvailableAmount)
	})

	t.Run("already terminal payments are skipped", func(t *testing.T) {
		svc, _ := newTestService(t)

		first, err := svc.Create(ctx, newCreateRequest(100))
		require.NoError(t, err)
		second, err := svc.Create(ctx, newCreateRequest(200))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, first.ID, UpdateStatusRequest{Status: models.PaymentCancelled})
		require.NoError(t, err)

		processed, err := svc.BulkProcess(ctx, BulkProcessRequest{
			PaymentIDs: []uint{first.ID, second.ID},
			Status:     models.PaymentCompleted,
		})
		require.NoError(t, err)
		require.Len(t, processed, 1)
		assert.Equal(t, second.ID, processed[0].ID)
	})

	t.Run("no pending payments is an error", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.BulkProcess(ctx, BulkProcessRequest{
			PaymentIDs: []uint{999},
			Status:     models.PaymentCompleted,
		})
		assert.Equal(t, errors.ErrNoPendingPayments, err)
	})
}

func TestPaymentService_History(t *testing.T) {
	db := testutil.NewTestDB(t)
	reconciler := balance.NewService(repositories.NewBalanceRepository(db), nil)
	settlementRepo := repositories.NewSettlementRepository(db)
	svc := NewService(db, repositories.NewPaymentRepository(db), settlementRepo, reconciler, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, newCreateRequest(100))
	require.NoError(t, err)

	require.NoError(t, settlementRepo.Create(ctx, &models.Settlement{
		SellerID:            1,
		StoreID:             10,
		PeriodStart:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:           time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		TotalSalesAmount:    1000,
		NetSettlementAmount: 900,
		Status:              models.SettlementPending,
		PaymentMethod:       models.PaymentMethodBankTransfer,
	}))

	entries, err := svc.History(ctx, HistoryRequest{SellerID: 1, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	types := map[string]int{}
	for _, e := range entries {
		types[e.Type]++
	}
	assert.Equal(t, 1, types["payment"])
	assert.Equal(t, 1, types["settlement"])

	// Newest first.
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i-1].CreatedAt.Before(entries[i].CreatedAt))
	}
}

func TestPaymentService_List(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, amount := range []float64{100, 200, -50} {
		_, err := svc.Create(ctx, newCreateRequest(amount))
		require.NoError(t, err)
	}

	payments, summary, total, err := svc.List(ctx, ListRequest{
		Filter: repositories.PaymentFilter{SellerID: 1},
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, payments, 3)
	assert.Equal(t, 250.0, summary.TotalAmount)
	assert.EqualValues(t, 3, summary.StatusBreakdown[string(models.PaymentPending)])
}
