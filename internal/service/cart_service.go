package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// CartRepositoryInterface defines the interface for cart data access.
type CartRepositoryInterface interface {
	Get(ctx context.Context, userID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Clear(ctx context.Context, userID string) error
}

// CartService provides business logic for cart operations.
type CartService struct {
	tx    TxRunner
	carts CartRepositoryInterface
}

// NewCartService creates a new CartService with the given transaction runner
// and repository.
func NewCartService(tx TxRunner, carts CartRepositoryInterface) *CartService {
	return &CartService{tx: tx, carts: carts}
}

// AddItem merges the requested item into the user's cart, creating the cart
// lazily on first add. The unit price is rounded to 2 decimal places on the
// way in. If a line for the product already exists only its quantity grows;
// the incoming name and price are ignored on merge.
//
// The read-merge-write runs as one store transaction: concurrent adds to the
// same cart cannot overwrite each other's quantities, and an add cannot
// interleave with a checkout's snapshot-and-clear.
func (s *CartService) AddItem(ctx context.Context, userID string, req *model.AddItemRequest) (*model.Cart, error) {
	// The handler validates first; direct callers must not bypass it
	if req == nil || req.Price <= 0 || req.Quantity <= 0 {
		return nil, ErrInvalidRequest
	}

	var cart *model.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		cart, err = s.carts.Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("get cart: %w", err)
		}
		if cart == nil {
			cart = &model.Cart{UserID: userID}
		}

		cart.AddLine(model.CartLine{
			ProductID:   req.ProductID,
			ProductName: req.ProductName,
			UnitPrice:   decimal.NewFromFloat(req.Price).Round(2),
			Quantity:    req.Quantity,
		})

		if err := s.carts.Save(ctx, cart); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart retrieves the user's cart. A user without a cart gets a synthetic
// empty one; absence is never an error to external callers.
func (s *CartService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return &model.Cart{UserID: userID}, nil
	}
	return cart, nil
}

// ClearCart empties the user's cart. No-op if the cart does not exist.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
