package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// CartManager is the slice of cart operations checkout depends on.
type CartManager interface {
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// CouponManager is the slice of coupon operations checkout depends on.
type CouponManager interface {
	Validate(ctx context.Context, code, userID string) (*model.Coupon, error)
	MarkUsed(ctx context.Context, code, orderID string) error
	ShouldAutoIssue(ctx context.Context) (bool, error)
	CreateDefault(ctx context.Context, userID string) (*model.Coupon, error)
}

// OrderRepositoryInterface defines the interface for order data access.
type OrderRepositoryInterface interface {
	Insert(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	IncrementOrderCount(ctx context.Context) (int64, error)
	AddDiscountApplied(ctx context.Context, amount decimal.Decimal) error
}

// TxRunner runs a function with exclusive access to the store.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutService orchestrates the conversion of a cart into an order.
type CheckoutService struct {
	tx      TxRunner
	carts   CartManager
	coupons CouponManager
	orders  OrderRepositoryInterface
}

// NewCheckoutService creates a new CheckoutService with the given
// collaborators.
func NewCheckoutService(tx TxRunner, carts CartManager, coupons CouponManager, orders OrderRepositoryInterface) *CheckoutService {
	return &CheckoutService{
		tx:      tx,
		carts:   carts,
		coupons: coupons,
		orders:  orders,
	}
}

// Checkout processes the user's cart into an order:
//
//  1. Reject when the cart is absent or empty.
//  2. Validate the coupon, if one was supplied; any failure rejects the
//     checkout before anything is written and the cart stays intact.
//  3. Compute subtotal, discount and total, each rounded to 2 decimals.
//  4. Persist the order (the point of no return).
//  5. Mark the coupon used and count its discount, if one was applied.
//  6. Increment the global order counter.
//  7. Issue a loyalty coupon to this user when the new counter value hits
//     the cadence, so the milestone order itself is never discounted
//     retroactively.
//  8. Clear the cart.
//
// The whole sequence runs under one store transaction, so concurrent
// checkouts cannot double-redeem a coupon or snapshot a half-mutated cart.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, couponCode *string) (*model.Order, error) {
	var order *model.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.GetCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("get cart: %w", err)
		}
		if cart == nil || len(cart.Lines) == 0 {
			return ErrEmptyCart
		}

		var coupon *model.Coupon
		if couponCode != nil && *couponCode != "" {
			coupon, err = s.coupons.Validate(ctx, *couponCode, userID)
			if err != nil {
				return err
			}
		}

		subtotal := cart.TotalAmount()
		discount := decimal.Zero
		if coupon != nil {
			pct := decimal.NewFromFloat(coupon.DiscountPercentage)
			discount = subtotal.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
		}
		total := subtotal.Sub(discount).Round(2)

		order = &model.Order{
			OrderID:        uuid.NewString(),
			UserID:         userID,
			Lines:          model.SnapshotLines(cart.Lines),
			Subtotal:       subtotal,
			DiscountAmount: discount,
			TotalAmount:    total,
			CreatedAt:      time.Now().UTC(),
		}
		if coupon != nil {
			code := coupon.Code
			order.CouponCode = &code
		}

		if err := s.orders.Insert(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if coupon != nil {
			if err := s.coupons.MarkUsed(ctx, coupon.Code, order.OrderID); err != nil {
				return fmt.Errorf("mark coupon used: %w", err)
			}
			if err := s.orders.AddDiscountApplied(ctx, discount); err != nil {
				return fmt.Errorf("count discount: %w", err)
			}
		}

		if _, err := s.orders.IncrementOrderCount(ctx); err != nil {
			return fmt.Errorf("increment order count: %w", err)
		}

		due, err := s.coupons.ShouldAutoIssue(ctx)
		if err != nil {
			return fmt.Errorf("check auto issue: %w", err)
		}
		if due {
			if _, err := s.coupons.CreateDefault(ctx, userID); err != nil {
				return fmt.Errorf("auto issue coupon: %w", err)
			}
		}

		if err := s.carts.ClearCart(ctx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder retrieves an order by its ID.
// Returns ErrOrderNotFound if no such order exists.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
