package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// OrderAnalyticsSource is the slice of order data analytics reads from.
type OrderAnalyticsSource interface {
	List(ctx context.Context) ([]model.Order, error)
	TotalDiscountApplied(ctx context.Context) (decimal.Decimal, error)
}

// CouponAnalyticsSource is the slice of coupon data analytics reads from.
type CouponAnalyticsSource interface {
	ListAll(ctx context.Context) ([]model.Coupon, error)
	ListByStatus(ctx context.Context, status model.CouponStatus) ([]model.Coupon, error)
}

// AnalyticsService derives store-wide statistics by scanning the order and
// coupon collections. It is read-only and mutates nothing.
type AnalyticsService struct {
	orders  OrderAnalyticsSource
	coupons CouponAnalyticsSource
}

// NewAnalyticsService creates a new AnalyticsService with the given sources.
func NewAnalyticsService(orders OrderAnalyticsSource, coupons CouponAnalyticsSource) *AnalyticsService {
	return &AnalyticsService{orders: orders, coupons: coupons}
}

// Report aggregates orders and coupons into a single snapshot. Monetary sums
// accumulate unrounded and are rounded once at the point of reporting. The
// purchase amount sums subtotals, before discounts; the discount total is
// the running counter, not recomputed from orders.
func (s *AnalyticsService) Report(ctx context.Context) (*model.AnalyticsResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	coupons, err := s.coupons.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	unused, err := s.coupons.ListByStatus(ctx, model.CouponStatusUnused)
	if err != nil {
		return nil, fmt.Errorf("list unused coupons: %w", err)
	}
	used, err := s.coupons.ListByStatus(ctx, model.CouponStatusUsed)
	if err != nil {
		return nil, fmt.Errorf("list used coupons: %w", err)
	}
	totalDiscount, err := s.orders.TotalDiscountApplied(ctx)
	if err != nil {
		return nil, fmt.Errorf("total discount: %w", err)
	}

	totalItems := 0
	purchaseAmount := decimal.Zero
	for i := range orders {
		totalItems += orders[i].TotalItems()
		purchaseAmount = purchaseAmount.Add(orders[i].Subtotal)
	}

	codes := make([]model.CouponResponse, 0, len(coupons))
	for i := range coupons {
		codes = append(codes, model.NewCouponResponse(&coupons[i]))
	}

	return &model.AnalyticsResponse{
		TotalOrders:            len(orders),
		TotalItemsPurchased:    totalItems,
		TotalPurchaseAmount:    purchaseAmount.Round(2).InexactFloat64(),
		TotalDiscountApplied:   totalDiscount.Round(2).InexactFloat64(),
		DiscountCodesGenerated: codes,
		UnusedCoupons:          len(unused),
		UsedCoupons:            len(used),
	}, nil
}
