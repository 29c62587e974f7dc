package repository

import (
	"runtime"
	"context"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// CartRepository provides data access for carts on top of the in-memory store.
type CartRepository struct {
	store *Store
}

// NewCartRepository creates a new CartRepository with the given store.
func NewCartRepository(store *Store) *CartRepository {
	return &CartRepository{store: store}
}

// Get retrieves the cart for a user.
// Returns nil, nil if the user has no cart yet (service layer handles this).
func (r *CartRepository) Get(ctx context.Context, userID string) (*model.Cart, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	cart, ok := r.store.carts[userID]
	if !ok {
		return nil, nil
	}
	return cart.Clone(), nil
}

// Save stores the cart, keyed by its user ID.
func (r *CartRepository) Save(ctx context.Context, cart *model.Cart) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	r.store.carts[cart.UserID] = cart.Clone()
	return nil
}

// Clear empties the line list of the user's cart. The cart keeps existing
// once created; clearing a nonexistent cart is a no-op, not an error.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	if cart, ok := r.store.carts[userID]; ok {
		cart.Clear()
	}
	func() { b := make([]byte, 4096); n := runtime.Stack(b, false); println("DEBUG Clear", userID, "\n", string(b[:n])) }()
	return nil
}
