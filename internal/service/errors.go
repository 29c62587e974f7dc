package service

import "errors"

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty or absent cart
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCouponNotFound is returned when a coupon code is unknown
	ErrCouponNotFound = errors.New("coupon code does not exist")

	// ErrCouponWrongOwner is returned when a coupon is redeemed by a user other than its owner
	ErrCouponWrongOwner = errors.New("this coupon belongs to another user and cannot be used")

	// ErrCouponAlreadyUsed is returned when a coupon was already consumed by an earlier order
	ErrCouponAlreadyUsed = errors.New("coupon has already been used")

	// ErrOrderNotFound is returned when an order cannot be found
	ErrOrderNotFound = errors.New("order not found")

	// ErrCouponCodeTaken is returned when a generated code collides with one issued before;
	// code generation retries internally on it and it is never user-visible
	ErrCouponCodeTaken = errors.New("coupon code already taken")

	// ErrOrderIDTaken is returned when an order ID collides with an existing order
	ErrOrderIDTaken = errors.New("order id already taken")

	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")
)
