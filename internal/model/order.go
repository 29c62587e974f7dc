package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest is the DTO for POST /checkout.
type CheckoutRequest struct {
	UserID     string  `json:"user_id" validate:"required,notblank,max=255"`
	CouponCode *string `json:"coupon_code" validate:"omitempty,max=255"`
}

// OrderLine is an immutable snapshot of a cart line taken at checkout time.
type OrderLine struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// LineTotal returns unit price times quantity, rounded to 2 decimal places.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// Order is the immutable record of a completed purchase.
type Order struct {
	OrderID        string
	UserID         string
	Lines          []OrderLine
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	CouponCode     *string
	CreatedAt      time.Time
}

// TotalItems returns the summed quantity over all order lines.
func (o *Order) TotalItems() int {
	total := 0
	for _, line := range o.Lines {
		total += line.Quantity
	}
	return total
}

// Clone returns a deep copy that is safe to hand outside the store.
func (o *Order) Clone() *Order {
	cp := *o
	if len(o.Lines) > 0 {
		cp.Lines = make([]OrderLine, len(o.Lines))
		copy(cp.Lines, o.Lines)
	}
	if o.CouponCode != nil {
		code := *o.CouponCode
		cp.CouponCode = &code
	}
	return &cp
}

// SnapshotLines converts cart lines into order lines.
func SnapshotLines(lines []CartLine) []OrderLine {
	out := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}
	return out
}

// OrderLineResponse is the API representation of an order line.
type OrderLineResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	OrderID        string              `json:"order_id"`
	UserID         string              `json:"user_id"`
	Items          []OrderLineResponse `json:"items"`
	TotalItems     int                 `json:"total_items"`
	Subtotal       float64             `json:"subtotal"`
	DiscountAmount float64             `json:"discount_amount"`
	TotalAmount    float64             `json:"total_amount"`
	CouponCode     *string             `json:"coupon_code"`
	CreatedAt      time.Time           `json:"created_at"`
}

// NewOrderResponse builds the response DTO for an order.
func NewOrderResponse(order *Order) *OrderResponse {
	items := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, OrderLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Price:       line.UnitPrice.InexactFloat64(),
			Quantity:    line.Quantity,
			TotalPrice:  line.LineTotal().InexactFloat64(),
		})
	}
	return &OrderResponse{
		OrderID:        order.OrderID,
		UserID:         order.UserID,
		Items:          items,
		TotalItems:     order.TotalItems(),
		Subtotal:       order.Subtotal.InexactFloat64(),
		DiscountAmount: order.DiscountAmount.InexactFloat64(),
		TotalAmount:    order.TotalAmount.InexactFloat64(),
		CouponCode:     order.CouponCode,
		CreatedAt:      order.CreatedAt,
	}
}
