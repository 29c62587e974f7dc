package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// CartServiceInterface defines the interface for cart business logic.
type CartServiceInterface interface {
	AddItem(ctx context.Context, userID string, req *model.AddItemRequest) (*model.Cart, error)
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// CartHandler handles HTTP requests for cart operations.
type CartHandler struct {
	service   CartServiceInterface
	validator *validator.Validate
}

// NewCartHandler creates a new CartHandler with the given service and validator.
func NewCartHandler(svc CartServiceInterface, v *validator.Validate) *CartHandler {
	return &CartHandler{service: svc, validator: v}
}

// formatCartValidationError converts validator errors into client-facing messages.
func formatCartValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "ProductID":
				if tag == "required" || tag == "notblank" {
					return "invalid request: product_id is required"
				}
				return "invalid request: product_id is invalid"
			case "ProductName":
				if tag == "required" || tag == "notblank" {
					return "invalid request: product_name is required"
				}
				return "invalid request: product_name is invalid"
			case "Price":
				return "invalid request: price must be greater than 0"
			case "Quantity":
				return "invalid request: quantity must be greater than 0"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// AddItem handles POST /cart/:user_id/items requests.
// Returns 201 with the updated cart, or 422 on invalid price or quantity.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	var req model.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": formatCartValidationError(err)})
	}

	cart, err := h.service.AddItem(c.Context(), userID, &req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("product_id", req.ProductID).Msg("failed to add item to cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("user_id", userID).
		Str("product_id", req.ProductID).
		Int("quantity", req.Quantity).
		Msg("item added to cart")

	return c.Status(fiber.StatusCreated).JSON(model.NewCartResponse(cart))
}

// GetCart handles GET /cart/:user_id requests.
// Users without a cart get an empty one, never an error.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	cart, err := h.service.GetCart(c.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(model.NewCartResponse(cart))
}

// ClearCart handles DELETE /cart/:user_id requests. Always returns 204;
// clearing a nonexistent cart is not an error.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	if err := h.service.ClearCart(c.Context(), userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
