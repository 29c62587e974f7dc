package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

func testCart(userID string) *model.Cart {
	cart := &model.Cart{UserID: userID}
	cart.AddLine(model.CartLine{
		ProductID:   "p1",
		ProductName: "Widget",
		UnitPrice:   decimal.RequireFromString("9.99"),
		Quantity:    2,
	})
	return cart
}

func TestCartRepository_GetAbsent(t *testing.T) {
	repo := NewCartRepository(NewStore())

	cart, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, cart, "absent cart is nil, nil; the service layer decides what that means")
}

func TestCartRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(NewStore())

	saved := testCart("user-1")
	require.NoError(t, repo.Save(ctx, saved))

	// Mutations after Save must not leak into the store.
	saved.Lines[0].Quantity = 99

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Quantity)

	// Mutations of the returned copy must not leak either.
	got.Lines[0].Quantity = 42
	again, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Lines[0].Quantity)
}

func TestCartRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(NewStore())

	require.NoError(t, repo.Save(ctx, testCart("user-1")))
	require.NoError(t, repo.Clear(ctx, "user-1"))

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got, "cleared cart still exists, only emptied")
	assert.Empty(t, got.Lines)
}

func TestCartRepository_ClearAbsentIsNoop(t *testing.T) {
	repo := NewCartRepository(NewStore())
	assert.NoError(t, repo.Clear(context.Background(), "nobody"))
}
