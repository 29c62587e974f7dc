package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// TestAddItem_ConcurrentAddsAllCounted hammers one cart from many goroutines.
// Every accepted add must land: the read-merge-write is a single store
// transaction, so no increment may overwrite another.
func TestAddItem_ConcurrentAddsAllCounted(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	const workers = 8
	const addsPerWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsPerWorker; i++ {
				_, err := f.carts.AddItem(ctx, "user-1", &model.AddItemRequest{
					ProductID:   "p1",
					ProductName: "Widget",
					Price:       2.50,
					Quantity:    1,
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	cart, err := f.carts.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, workers*addsPerWorker, cart.Lines[0].Quantity)
	assert.Equal(t, "500.00", cart.TotalAmount().StringFixed(2))
}

// TestAddItem_DoesNotInterleaveWithCheckout races one add against a checkout
// of the same cart. The add either merges in before the order snapshot or
// lands in the fresh cart after the clear; it is never lost, and lines the
// order consumed never resurface in the cart.
func TestAddItem_DoesNotInterleaveWithCheckout(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	f.addItem(t, "user-1", "p1", 10, 1)

	var wg sync.WaitGroup
	var order *model.Order
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		order, err = f.checkout.Checkout(ctx, "user-1", nil)
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := f.carts.AddItem(ctx, "user-1", &model.AddItemRequest{
			ProductID:   "p1",
			ProductName: "Widget",
			Price:       10,
			Quantity:    1,
		})
		assert.NoError(t, err)
	}()
	wg.Wait()

	cart, err := f.carts.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 2, order.TotalItems()+cart.TotalItems(),
		"every add is accounted for exactly once, in the order or in the cart")
}
