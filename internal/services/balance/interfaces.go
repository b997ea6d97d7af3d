package balance

import (
	"context"
	"time"

	"gorm.io/gorm"

	"veleco/internal/models"
)

// Service is the single authority for reading and mutating seller balances.
// Every credit and debit path in the system funnels through it.
type Service interface {
	// WithTx returns a reconciler whose writes run inside tx. Callers that
	// pair a balance mutation with another write (settlement completion,
	// withdrawal creation) use this to make the pair atomic.
	WithTx(tx *gorm.DB) Service

	Credit(ctx context.Context, sellerID, storeID uint, amount float64) error
	Debit(ctx context.Context, sellerID, storeID uint, amount float64) error
	ReverseDebit(ctx context.Context, sellerID, storeID uint, amount float64) error

	GetBalance(ctx context.Context, sellerID, storeID uint) (*models.SellerBalance, error)
	ListBalances(ctx context.Context, sellerID, storeID uint) ([]models.SellerBalance, *Summary, error)
	Upsert(ctx context.Context, req UpsertRequest) (*models.SellerBalance, error)
}

// Cache is the subset of the cache service the reconciler needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NoopCache satisfies Cache without caching anything. Used in tests and when
// redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (NoopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}
