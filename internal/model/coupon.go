package model

import "time"

// CouponStatus enumerates the lifecycle states of a coupon.
type CouponStatus string

const (
	// CouponStatusUnused marks a coupon that can still be redeemed.
	CouponStatusUnused CouponStatus = "unused"
	// CouponStatusUsed marks a coupon that was consumed by an order.
	CouponStatusUsed CouponStatus = "used"
)

// Coupon is a single-use, single-owner percentage discount token.
type Coupon struct {
	Code               string
	UserID             string
	DiscountPercentage float64
	Status             CouponStatus
	CreatedAt          time.Time
	UsedAt             *time.Time
	OrderID            *string
	Reason             *string
}

// Usable reports whether the coupon can still be redeemed.
func (c *Coupon) Usable() bool {
	return c.Status == CouponStatusUnused
}

// MarkUsed transitions the coupon to used, recording the consuming order.
// The transition is one-way; callers must not invoke it twice.
func (c *Coupon) MarkUsed(orderID string, at time.Time) {
	c.Status = CouponStatusUsed
	c.UsedAt = &at
	c.OrderID = &orderID
}

// Clone returns a deep copy that is safe to hand outside the store.
func (c *Coupon) Clone() *Coupon {
	cp := *c
	if c.UsedAt != nil {
		at := *c.UsedAt
		cp.UsedAt = &at
	}
	if c.OrderID != nil {
		id := *c.OrderID
		cp.OrderID = &id
	}
	if c.Reason != nil {
		reason := *c.Reason
		cp.Reason = &reason
	}
	return &cp
}

// GenerateCouponRequest is the DTO for POST /admin/coupons/generate.
// DiscountPercentage falls back to the configured default when omitted.
type GenerateCouponRequest struct {
	UserID             string   `json:"user_id" validate:"required,notblank,max=255"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	Reason             string   `json:"reason" validate:"required,notblank,max=255"`
}

// CouponResponse is the API representation of a coupon.
type CouponResponse struct {
	Code               string     `json:"code"`
	UserID             string     `json:"user_id"`
	DiscountPercentage float64    `json:"discount_percentage"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UsedAt             *time.Time `json:"used_at"`
	OrderID            *string    `json:"order_id"`
	Reason             *string    `json:"reason"`
}

// GenerateCouponResponse is the response for manual coupon generation.
type GenerateCouponResponse struct {
	Coupon  CouponResponse `json:"coupon"`
	Message string         `json:"message"`
}

// NewCouponResponse builds the response DTO for a coupon.
func NewCouponResponse(coupon *Coupon) CouponResponse {
	return CouponResponse{
		Code:               coupon.Code,
		UserID:             coupon.UserID,
		DiscountPercentage: coupon.DiscountPercentage,
		Status:             string(coupon.Status),
		CreatedAt:          coupon.CreatedAt,
		UsedAt:             coupon.UsedAt,
		OrderID:            coupon.OrderID,
		Reason:             coupon.Reason,
	}
}

// AnalyticsResponse is the API representation of store-wide statistics.
type AnalyticsResponse struct {
	TotalOrders            int              `json:"total_orders"`
	TotalItemsPurchased    int              `json:"total_items_purchased"`
	TotalPurchaseAmount    float64          `json:"total_purchase_amount"`
	TotalDiscountApplied   float64          `json:"total_discount_applied"`
	DiscountCodesGenerated []CouponResponse `json:"discount_codes_generated"`
	UnusedCoupons          int              `json:"unused_coupons"`
	UsedCoupons            int              `json:"used_coupons"`
}
