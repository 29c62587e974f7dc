package model

import "github.com/shopspring/decimal"

// AddItemRequest is the DTO for adding an item to a user's cart.
type AddItemRequest struct {
	ProductID   string  `json:"product_id" validate:"required,notblank,max=255"`
	ProductName string  `json:"product_name" validate:"required,notblank,max=255"`
	Price       float64 `json:"price" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
}

// CartLine is a single product entry in a cart.
type CartLine struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// LineTotal returns unit price times quantity, rounded to 2 decimal places.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}

// Cart is the per-user staging area for prospective purchases.
// Lines keep insertion order; a line is unique per product ID.
type Cart struct {
	UserID string
	Lines  []CartLine
}

// AddLine merges the given line into the cart. If a line with the same
// product ID already exists, only its quantity is increased; the stored
// name and unit price win over the incoming ones. Otherwise the line is
// appended, preserving insertion order.
func (c *Cart) AddLine(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// Clear removes all lines. The cart itself stays registered for its user.
func (c *Cart) Clear() {
	c.Lines = nil
}

// TotalItems returns the summed quantity over all lines.
// Always recomputed from the lines, never cached.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalAmount returns the summed line totals, rounded to 2 decimal places.
// Always recomputed from the lines, never cached.
func (c *Cart) TotalAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.Lines {
		sum = sum.Add(line.LineTotal())
	}
	return sum.Round(2)
}

// Clone returns a deep copy that is safe to mutate outside the store.
func (c *Cart) Clone() *Cart {
	cp := &Cart{UserID: c.UserID}
	if len(c.Lines) > 0 {
		cp.Lines = make([]CartLine, len(c.Lines))
		copy(cp.Lines, c.Lines)
	}
	return cp
}

// CartLineResponse is the API representation of a cart line.
type CartLineResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
}

// CartResponse is the API representation of a cart.
type CartResponse struct {
	UserID      string             `json:"user_id"`
	Items       []CartLineResponse `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalAmount float64            `json:"total_amount"`
}

// NewCartResponse builds the response DTO for a cart, deriving the totals.
func NewCartResponse(cart *Cart) *CartResponse {
	items := make([]CartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, CartLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Price:       line.UnitPrice.InexactFloat64(),
			Quantity:    line.Quantity,
			TotalPrice:  line.LineTotal().InexactFloat64(),
		})
	}
	return &CartResponse{
		UserID:      cart.UserID,
		Items:       items,
		TotalItems:  cart.TotalItems(),
		TotalAmount: cart.TotalAmount().InexactFloat64(),
	}
}
