package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shoplite/ecommerce-backend/internal/model"
	"github.com/shoplite/ecommerce-backend/internal/service"
)

// OrderRepository provides data access for orders and the global order
// counters on top of the in-memory store.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates a new OrderRepository with the given store.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Insert stores a new order. Orders are immutable once inserted.
// Returns service.ErrOrderIDTaken if the ID is already present.
func (r *OrderRepository) Insert(ctx context.Context, order *model.Order) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	if _, ok := r.store.orders[order.OrderID]; ok {
		return service.ErrOrderIDTaken
	}
	r.store.orders[order.OrderID] = order.Clone()
	r.store.orderIDs = append(r.store.orderIDs, order.OrderID)
	return nil
}

// GetByID retrieves an order by its ID.
// Returns nil, nil if the order is not found (service layer handles this).
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	order, ok := r.store.orders[orderID]
	if !ok {
		return nil, nil
	}
	return order.Clone(), nil
}

// List returns all orders ever created, in creation order.
func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	out := make([]model.Order, 0, len(r.store.orderIDs))
	for _, id := range r.store.orderIDs {
		out = append(out, *r.store.orders[id].Clone())
	}
	return out, nil
}

// IncrementOrderCount bumps the global completed-order counter by one and
// returns the new value. The counter is monotonic; it is never decremented.
func (r *OrderRepository) IncrementOrderCount(ctx context.Context) (int64, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	r.store.orderCount++
	return r.store.orderCount, nil
}

// OrderCount returns the number of orders ever created.
func (r *OrderRepository) OrderCount(ctx context.Context) (int64, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	return r.store.orderCount, nil
}

// AddDiscountApplied adds the given amount to the running discount total.
func (r *OrderRepository) AddDiscountApplied(ctx context.Context, amount decimal.Decimal) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	r.store.totalDiscountApplied = r.store.totalDiscountApplied.Add(amount)
	return nil
}

// TotalDiscountApplied returns the running sum of discounts over all
// completed orders that used a coupon.
func (r *OrderRepository) TotalDiscountApplied(ctx context.Context) (decimal.Decimal, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	return r.store.totalDiscountApplied, nil
}
