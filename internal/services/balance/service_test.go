package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veleco/internal/errors"
	"veleco/internal/repositories"
	"veleco/internal/testutil"
)

func newTestService(t *testing.T) Service {
	db := testutil.NewTestDB(t)
	return NewService(repositories.NewBalanceRepository(db), nil)
}

func TestBalanceService_Credit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("first credit creates the row", func(t *testing.T) {
		require.NoError(t, svc.Credit(ctx, 1, 10, 11450))

		bal, err := svc.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 11450.0, bal.AvailableAmount)
		assert.Equal(t, 11450.0, bal.TotalLifetimeEarnings)
		assert.NotNil(t, bal.LastSettlementDate)
	})

	t.Run("subsequent credits accumulate", func(t *testing.T) {
		require.NoError(t, svc.Credit(ctx, 1, 10, 8025))

		bal, err := svc.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 19475.0, bal.AvailableAmount)
		assert.Equal(t, 19475.0, bal.TotalLifetimeEarnings)
	})
}

func TestBalanceService_Debit(t *testing.T) {
	ctx := context.Background()

	t.Run("debit moves funds into withdrawals", func(t *testing.T) {
		svc := newTestService(t)
		require.NoError(t, svc.Credit(ctx, 1, 10, 1000))

		require.NoError(t, svc.Debit(ctx, 1, 10, 400))

		bal, err := svc.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 600.0, bal.AvailableAmount)
		assert.Equal(t, 400.0, bal.TotalWithdrawals)
		// Lifetime earnings are monotonic.
		assert.Equal(t, 1000.0, bal.TotalLifetimeEarnings)
	})

	t.Run("overdraft is rejected", func(t *testing.T) {
		svc := newTestService(t)
		require.NoError(t, svc.Credit(ctx, 1, 10, 100))

		err := svc.Debit(ctx, 1, 10, 100.01)
		assert.Equal(t, errors.ErrInsufficientBalance, err)

		bal, err := svc.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 100.0, bal.AvailableAmount)
	})

	t.Run("missing row reports not found", func(t *testing.T) {
		svc := newTestService(t)
		assert.Equal(t, errors.ErrBalanceNotFound, svc.Debit(ctx, 1, 99, 10))
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		svc := newTestService(t)
		assert.Equal(t, errors.ErrInvalidAmount, svc.Debit(ctx, 1, 10, 0))
		assert.Equal(t, errors.ErrInvalidAmount, svc.Debit(ctx, 1, 10, -5))
	})
}

func TestBalanceService_ReverseDebit(t *testing.T) {
	ctx := context.Background()

	t.Run("restores available without touching totals", func(t *testing.T) {
		svc := newTestService(t)
		require.NoError(t, svc.Credit(ctx, 1, 10, 1000))
		require.NoError(t, svc.Debit(ctx, 1, 10, 400))

		require.NoError(t, svc.ReverseDebit(ctx, 1, 10, 400))

		bal, err := svc.GetBalance(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, bal.AvailableAmount)
		assert.Equal(t, 400.0, bal.TotalWithdrawals)
		assert.Equal(t, 1000.0, bal.TotalLifetimeEarnings)
	})

	t.Run("missing row reports not found", func(t *testing.T) {
		svc := newTestService(t)
		assert.Equal(t, errors.ErrBalanceNotFound, svc.ReverseDebit(ctx, 1, 99, 10))
	})
}

func TestBalanceService_ListBalances(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Credit(ctx, 1, 10, 500))
	require.NoError(t, svc.Credit(ctx, 1, 11, 300))
	require.NoError(t, svc.Credit(ctx, 2, 20, 999))
	require.NoError(t, svc.Debit(ctx, 1, 10, 100))

	t.Run("sums across a seller's stores", func(t *testing.T) {
		balances, summary, err := svc.ListBalances(ctx, 1, 0)
		require.NoError(t, err)
		assert.Len(t, balances, 2)
		assert.Equal(t, 700.0, summary.TotalAvailable)
		assert.Equal(t, 800.0, summary.TotalLifetimeEarnings)
		assert.Equal(t, 100.0, summary.TotalWithdrawals)
	})

	t.Run("narrows to one store", func(t *testing.T) {
		balances, summary, err := svc.ListBalances(ctx, 1, 11)
		require.NoError(t, err)
		assert.Len(t, balances, 1)
		assert.Equal(t, 300.0, summary.TotalAvailable)
	})

	t.Run("unknown seller returns empty set", func(t *testing.T) {
		balances, summary, err := svc.ListBalances(ctx, 42, 0)
		require.NoError(t, err)
		assert.Empty(t, balances)
		assert.Equal(t, 0.0, summary.TotalAvailable)
	})
}

func TestBalanceService_Upsert(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("creates then overwrites", func(t *testing.T) {
		bal, err := svc.Upsert(ctx, UpsertRequest{
			SellerID:        1,
			StoreID:         10,
			AvailableAmount: 250,
			CommissionRate:  5,
		})
		require.NoError(t, err)
		assert.Equal(t, 250.0, bal.AvailableAmount)
		assert.Equal(t, 5.0, bal.CommissionRate)

		bal, err = svc.Upsert(ctx, UpsertRequest{
			SellerID:        1,
			StoreID:         10,
			AvailableAmount: 400,
			CommissionRate:  7.5,
		})
		require.NoError(t, err)
		assert.Equal(t, 400.0, bal.AvailableAmount)
		assert.Equal(t, 7.5, bal.CommissionRate)
	})
}
