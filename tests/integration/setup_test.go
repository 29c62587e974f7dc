// Package integration contains end-to-end tests that exercise the full HTTP
// surface against an in-process application instance. The store is in-memory,
// so every test gets a fresh, isolated world with no external infrastructure.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/ecommerce-backend/internal/handler"
	"github.com/shoplite/ecommerce-backend/internal/repository"
	"github.com/shoplite/ecommerce-backend/internal/service"
	"github.com/shoplite/ecommerce-backend/internal/validator"
)

// newTestApp wires the application exactly as main does, minus the listener
// and logging middleware. Cadence 5, code length 8, default discount 10%.
func newTestApp() *fiber.App {
	store := repository.NewStore()

	app := fiber.New()
	validate := validator.New()

	cartRepo := repository.NewCartRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	couponRepo := repository.NewCouponRepository(store)

	cartService := service.NewCartService(store, cartRepo)
	couponService := service.NewCouponService(couponRepo, orderRepo, 5, 8, 10.0)
	checkoutService := service.NewCheckoutService(store, cartService, couponService, orderRepo)
	analyticsService := service.NewAnalyticsService(orderRepo, couponService)

	cartHandler := handler.NewCartHandler(cartService, validate)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, validate)
	adminHandler := handler.NewAdminHandler(couponService, analyticsService, validate)
	healthHandler := handler.NewHealthHandler()

	app.Get("/health", healthHandler.Check)

	app.Post("/cart/:user_id/items", cartHandler.AddItem)
	app.Get("/cart/:user_id", cartHandler.GetCart)
	app.Delete("/cart/:user_id", cartHandler.ClearCart)

	app.Post("/checkout", checkoutHandler.Checkout)
	app.Get("/checkout/:order_id", checkoutHandler.GetOrder)

	app.Post("/admin/coupons/generate", adminHandler.GenerateCoupon)
	app.Get("/admin/analytics", adminHandler.Analytics)
	app.Get("/admin/coupons", adminHandler.ListCoupons)

	return app
}

// doJSON issues a request with a JSON body (may be nil) and decodes the JSON
// response into out (may be nil). Returns the status code.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func addItem(t *testing.T, app *fiber.App, userID, productID, name string, price float64, qty int) {
	t.Helper()
	status := doJSON(t, app, http.MethodPost, "/cart/"+userID+"/items", map[string]any{
		"product_id":   productID,
		"product_name": name,
		"price":        price,
		"quantity":     qty,
	}, nil)
	require.Equal(t, http.StatusCreated, status)
}
