package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/shoplite/ecommerce-backend/internal/model"
	"github.com/shoplite/ecommerce-backend/internal/service"
)

// CheckoutServiceInterface defines the interface for checkout business logic.
type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, userID string, couponCode *string) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
}

// CheckoutHandler handles HTTP requests for checkout operations.
type CheckoutHandler struct {
	service   CheckoutServiceInterface
	validator *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler with the given service and validator.
func NewCheckoutHandler(svc CheckoutServiceInterface, v *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{service: svc, validator: v}
}

// formatCheckoutValidationError converts validator errors into client-facing messages.
func formatCheckoutValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			switch fe.Field() {
			case "UserID":
				if fe.Tag() == "required" || fe.Tag() == "notblank" {
					return "invalid request: user_id is required"
				}
				return "invalid request: user_id is invalid"
			case "CouponCode":
				return "invalid request: coupon_code is invalid"
			default:
				return "invalid request: " + fe.Field() + " is invalid"
			}
		}
	}
	return "invalid request"
}

// isRejection reports whether the checkout error is a client-facing business
// rejection rather than an internal failure.
func isRejection(err error) bool {
	return errors.Is(err, service.ErrEmptyCart) ||
		errors.Is(err, service.ErrCouponNotFound) ||
		errors.Is(err, service.ErrCouponWrongOwner) ||
		errors.Is(err, service.ErrCouponAlreadyUsed)
}

// Checkout handles POST /checkout requests. Business rejections (empty cart,
// invalid coupon) come back as 400 with the rejection message; nothing is
// persisted for them.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var req model.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": formatCheckoutValidationError(err)})
	}

	order, err := h.service.Checkout(c.Context(), req.UserID, req.CouponCode)
	if err != nil {
		if isRejection(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("user_id", req.UserID).
			Msg("checkout failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("user_id", req.UserID).
		Str("order_id", order.OrderID).
		Msg("checkout completed")

	return c.Status(fiber.StatusCreated).JSON(model.NewOrderResponse(order))
}

// GetOrder handles GET /checkout/:order_id requests.
func (h *CheckoutHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("order_id")

	order, err := h.service.GetOrder(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to get order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(model.NewOrderResponse(order))
}
