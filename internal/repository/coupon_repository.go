package repository

import (
	"context"

	"github.com/shoplite/ecommerce-backend/internal/model"
	"github.com/shoplite/ecommerce-backend/internal/service"
)

// CouponRepository provides data access for coupons on top of the in-memory
// store. Coupons are never deleted, so the backing map doubles as the full
// historical code set used for uniqueness checks.
type CouponRepository struct {
	store *Store
}

// NewCouponRepository creates a new CouponRepository with the given store.
func NewCouponRepository(store *Store) *CouponRepository {
	return &CouponRepository{store: store}
}

// Insert stores a new coupon.
// Returns service.ErrCouponCodeTaken if the code was ever issued before.
func (r *CouponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	if _, ok := r.store.coupons[coupon.Code]; ok {
		return service.ErrCouponCodeTaken
	}
	r.store.coupons[coupon.Code] = coupon.Clone()
	r.store.couponCodes = append(r.store.couponCodes, coupon.Code)
	return nil
}

// GetByCode retrieves a coupon by its code.
// Returns nil, nil if the coupon is not found (service layer handles this).
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	coupon, ok := r.store.coupons[code]
	if !ok {
		return nil, nil
	}
	return coupon.Clone(), nil
}

// Exists reports whether a code was ever issued, used coupons included.
func (r *CouponRepository) Exists(ctx context.Context, code string) (bool, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	_, ok := r.store.coupons[code]
	return ok, nil
}

// Update overwrites the stored coupon with the given state.
// Returns service.ErrCouponNotFound if the code is unknown.
func (r *CouponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	if _, ok := r.store.coupons[coupon.Code]; !ok {
		return service.ErrCouponNotFound
	}
	r.store.coupons[coupon.Code] = coupon.Clone()
	return nil
}

// List returns all coupons ever created, in issuance order.
func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	out := make([]model.Coupon, 0, len(r.store.couponCodes))
	for _, code := range r.store.couponCodes {
		out = append(out, *r.store.coupons[code].Clone())
	}
	return out, nil
}
