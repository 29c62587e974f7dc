package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// TestConcurrentCouponRedemption races many checkouts over one coupon.
// Exactly one may win; the rest get the already-used rejection and leave
// their carts untouched.
func TestConcurrentCouponRedemption(t *testing.T) {
	app := newTestApp()

	var genResp model.GenerateCouponResponse
	status := doJSON(t, app, http.MethodPost, "/admin/coupons/generate", map[string]any{
		"user_id": "racer",
		"reason":  "contention test",
	}, &genResp)
	require.Equal(t, http.StatusCreated, status)
	code := genResp.Coupon.Code

	// One pre-filled cart and many simultaneous attempts to spend the coupon
	// on it. The losers fail on the spent coupon or the emptied cart.
	const attempts = 10
	addItem(t, app, "racer", "prod-1", "Gadget", 100, 1)

	var wg sync.WaitGroup
	statuses := make([]int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i] = doJSON(t, app, http.MethodPost, "/checkout",
				map[string]any{"user_id": "racer", "coupon_code": code}, nil)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, s := range statuses {
		if s == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusBadRequest, s)
		}
	}
	assert.Equal(t, 1, created, "a coupon is spendable exactly once")

	// The surviving state agrees: one used coupon, one order.
	var report model.AnalyticsResponse
	doJSON(t, app, http.MethodGet, "/admin/analytics", nil, &report)
	assert.Equal(t, 1, report.TotalOrders)
	assert.Equal(t, 1, report.UsedCoupons)
	assert.Equal(t, 0, report.UnusedCoupons)
}

// TestConcurrentCheckouts runs independent users through checkout in
// parallel and verifies the global counters and cadence hold up.
func TestConcurrentCheckouts(t *testing.T) {
	app := newTestApp()

	const users = 20
	for i := 0; i < users; i++ {
		addItem(t, app, fmt.Sprintf("user-%02d", i), "prod-1", "Gadget", 25, 2)
	}

	var wg sync.WaitGroup
	statuses := make([]int, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i] = doJSON(t, app, http.MethodPost, "/checkout",
				map[string]any{"user_id": fmt.Sprintf("user-%02d", i)}, nil)
		}(i)
	}
	wg.Wait()

	for i, s := range statuses {
		assert.Equal(t, http.StatusCreated, s, "checkout %d", i)
	}

	var report model.AnalyticsResponse
	doJSON(t, app, http.MethodGet, "/admin/analytics", nil, &report)
	assert.Equal(t, users, report.TotalOrders)
	assert.Equal(t, users*2, report.TotalItemsPurchased)
	assert.Equal(t, float64(users)*50.0, report.TotalPurchaseAmount)

	// 20 orders at a cadence of 5 issue exactly 4 coupons.
	var coupons []model.CouponResponse
	doJSON(t, app, http.MethodGet, "/admin/coupons", nil, &coupons)
	assert.Len(t, coupons, 4)

	// Codes are unique even under contention.
	seen := make(map[string]bool, len(coupons))
	for _, c := range coupons {
		assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
		seen[c.Code] = true
	}
}

// TestConcurrentCartAdds hammers one cart from many goroutines; the final
// quantity must reflect every add.
func TestConcurrentCartAdds(t *testing.T) {
	app := newTestApp()

	const adds = 50
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addItem(t, app, "hoarder", "prod-1", "Gadget", 2.50, 1)
		}()
	}
	wg.Wait()

	var cart model.CartResponse
	doJSON(t, app, http.MethodGet, "/cart/hoarder", nil, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, adds, cart.Items[0].Quantity)
	assert.Equal(t, 125.0, cart.TotalAmount)
}
