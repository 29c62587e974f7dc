package repository

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// Store is the single in-memory holder for carts, orders, coupons and the
// global counters. It is constructed once at process start and passed into
// every repository; there is no implicit singleton. Data does not survive a
// restart.
type Store struct {
	mu sync.RWMutex

	carts       map[string]*model.Cart
	orders      map[string]*model.Order
	orderIDs    []string
	coupons     map[string]*model.Coupon
	couponCodes []string

	orderCount           int64
	totalDiscountApplied decimal.Decimal
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	s.init()
	return s
}

func (s *Store) init() {
	s.carts = make(map[string]*model.Cart)
	s.orders = make(map[string]*model.Order)
	s.orderIDs = nil
	s.coupons = make(map[string]*model.Coupon)
	s.couponCodes = nil
	s.orderCount = 0
	s.totalDiscountApplied = decimal.Zero
}

// Reset drops all data and counters. Exposed for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
}

// txKey marks a context as running inside WithTransaction so that nested
// repository calls skip their own locking.
type txKey struct{}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

// WithTransaction runs fn while holding the store's write lock, giving the
// callback exclusive access to all data. Repository calls made with the
// returned context do not take locks of their own. This serializes every
// checkout, which is how the validate-then-mark-used coupon sequence and
// the cart snapshot stay atomic within the process.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) rlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RLock()
	}
}

func (s *Store) runlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RUnlock()
	}
}

func (s *Store) wlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Lock()
	}
}

func (s *Store) wunlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Unlock()
	}
}
