package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// codeAlphabet is the uppercase alphanumeric alphabet coupon codes draw from.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, coupon *model.Coupon) error
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	Exists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	List(ctx context.Context) ([]model.Coupon, error)
}

// OrderCounter exposes the global completed-order counter.
type OrderCounter interface {
	OrderCount(ctx context.Context) (int64, error)
}

// CouponService provides business logic for coupon issuance and redemption.
type CouponService struct {
	coupons         CouponRepositoryInterface
	orders          OrderCounter
	cadence         int64
	codeLength      int
	defaultDiscount float64
}

// NewCouponService creates a new CouponService. cadence is the auto-issue
// interval in completed orders, codeLength the generated code length, and
// defaultDiscount the percentage used when none is given.
func NewCouponService(coupons CouponRepositoryInterface, orders OrderCounter, cadence int, codeLength int, defaultDiscount float64) *CouponService {
	if cadence < 1 {
		cadence = 5
	}
	if codeLength < 1 {
		codeLength = 8
	}
	return &CouponService{
		coupons:         coupons,
		orders:          orders,
		cadence:         int64(cadence),
		codeLength:      codeLength,
		defaultDiscount: defaultDiscount,
	}
}

// DefaultDiscount returns the configured default discount percentage.
func (s *CouponService) DefaultDiscount() float64 {
	return s.defaultDiscount
}

// GenerateCode draws a fresh uppercase alphanumeric code from a
// cryptographically secure source. Each character is drawn uniformly, and the
// code is checked against every code ever issued; on collision a new code is
// drawn until a unique one is found.
func (s *CouponService) GenerateCode(ctx context.Context) (string, error) {
	buf := make([]byte, s.codeLength)
	for {
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", fmt.Errorf("draw code char: %w", err)
			}
			buf[i] = codeAlphabet[n.Int64()]
		}
		code := string(buf)

		taken, err := s.coupons.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
}

// ShouldAutoIssue reports whether a loyalty coupon is due. It is meant to be
// evaluated after the just-completed order was counted, so the user whose
// order reached the cadence milestone receives the coupon for their next
// purchase.
func (s *CouponService) ShouldAutoIssue(ctx context.Context) (bool, error) {
	count, err := s.orders.OrderCount(ctx)
	if err != nil {
		return false, fmt.Errorf("order count: %w", err)
	}
	return count > 0 && count%s.cadence == 0, nil
}

// Create issues a new unused coupon for the user with a fresh unique code.
// The admin path has no cadence restriction. A reason is set only for
// admin-issued coupons.
func (s *CouponService) Create(ctx context.Context, userID string, discountPercentage float64, reason *string) (*model.Coupon, error) {
	for {
		code, err := s.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}

		coupon := &model.Coupon{
			Code:               code,
			UserID:             userID,
			DiscountPercentage: discountPercentage,
			Status:             model.CouponStatusUnused,
			CreatedAt:          time.Now().UTC(),
			Reason:             reason,
		}
		err = s.coupons.Insert(ctx, coupon)
		if err == nil {
			return coupon, nil
		}
		// Lost the race for the code between the uniqueness check and the
		// insert; draw another one.
		if !errors.Is(err, ErrCouponCodeTaken) {
			return nil, fmt.Errorf("insert coupon: %w", err)
		}
	}
}

// CreateDefault issues a coupon with the configured default discount and no
// reason. This is the auto-issuance path used by checkout.
func (s *CouponService) CreateDefault(ctx context.Context, userID string) (*model.Coupon, error) {
	return s.Create(ctx, userID, s.defaultDiscount, nil)
}

// Validate checks whether the coupon can be redeemed by the user. Failures
// are reported in a fixed order: unknown code first, then wrong owner, then
// already used. On success the coupon is returned for discount computation.
func (s *CouponService) Validate(ctx context.Context, code, userID string) (*model.Coupon, error) {
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	switch {
	case coupon == nil:
		return nil, ErrCouponNotFound
	case coupon.UserID != userID:
		return nil, ErrCouponWrongOwner
	case !coupon.Usable():
		return nil, ErrCouponAlreadyUsed
	}
	return coupon, nil
}

// MarkUsed transitions the coupon to used, recording the consuming order and
// the redemption time. Not idempotent: the checkout orchestrator guarantees
// at most one call per successful redemption.
func (s *CouponService) MarkUsed(ctx context.Context, code, orderID string) error {
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return ErrCouponNotFound
	}

	coupon.MarkUsed(orderID, time.Now().UTC())
	if err := s.coupons.Update(ctx, coupon); err != nil {
		return fmt.Errorf("update coupon: %w", err)
	}
	return nil
}

// ListAll returns every coupon ever created, in issuance order.
func (s *CouponService) ListAll(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.coupons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return coupons, nil
}

// ListByStatus returns all coupons currently in the given status.
func (s *CouponService) ListByStatus(ctx context.Context, status model.CouponStatus) ([]model.Coupon, error) {
	coupons, err := s.coupons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	out := make([]model.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}
