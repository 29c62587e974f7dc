package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/shoplite/ecommerce-backend/internal/model"
)

// AdminCouponServiceInterface defines the coupon operations exposed on the admin surface.
type AdminCouponServiceInterface interface {
	Create(ctx context.Context, userID string, discountPercentage float64, reason *string) (*model.Coupon, error)
	DefaultDiscount() float64
	ListAll(ctx context.Context) ([]model.Coupon, error)
}

// AnalyticsServiceInterface defines the interface for analytics reporting.
type AnalyticsServiceInterface interface {
	Report(ctx context.Context) (*model.AnalyticsResponse, error)
}

// AdminHandler handles HTTP requests for the admin surface.
type AdminHandler struct {
	coupons   AdminCouponServiceInterface
	analytics AnalyticsServiceInterface
	validator *validator.Validate
}

// NewAdminHandler creates a new AdminHandler with the given services and validator.
func NewAdminHandler(coupons AdminCouponServiceInterface, analytics AnalyticsServiceInterface, v *validator.Validate) *AdminHandler {
	return &AdminHandler{coupons: coupons, analytics: analytics, validator: v}
}

// formatGenerateValidationError converts validator errors into client-facing messages.
func formatGenerateValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			switch fe.Field() {
			case "UserID":
				if fe.Tag() == "required" || fe.Tag() == "notblank" {
					return "invalid request: user_id is required"
				}
				return "invalid request: user_id is invalid"
			case "Reason":
				if fe.Tag() == "required" || fe.Tag() == "notblank" {
					return "invalid request: reason is required"
				}
				return "invalid request: reason is invalid"
			case "DiscountPercentage":
				return "invalid request: discount_percentage must be between 0 and 100"
			default:
				return "invalid request: " + fe.Field() + " is invalid"
			}
		}
	}
	return "invalid request"
}

// GenerateCoupon handles POST /admin/coupons/generate requests. Admins can
// issue a coupon to any user at any time, without cadence restriction; the
// reason is mandatory on this path.
func (h *AdminHandler) GenerateCoupon(c *fiber.Ctx) error {
	var req model.GenerateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": formatGenerateValidationError(err)})
	}

	discount := h.coupons.DefaultDiscount()
	if req.DiscountPercentage != nil {
		discount = *req.DiscountPercentage
	}

	reason := req.Reason
	coupon, err := h.coupons.Create(c.Context(), req.UserID, discount, &reason)
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to generate coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("user_id", req.UserID).
		Str("code", coupon.Code).
		Float64("discount_percentage", discount).
		Msg("coupon generated by admin")

	return c.Status(fiber.StatusCreated).JSON(model.GenerateCouponResponse{
		Coupon:  model.NewCouponResponse(coupon),
		Message: "Coupon generated successfully by admin",
	})
}

// Analytics handles GET /admin/analytics requests.
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	report, err := h.analytics.Report(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build analytics report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(report)
}

// ListCoupons handles GET /admin/coupons requests, returning every coupon
// ever created in issuance order.
func (h *AdminHandler) ListCoupons(c *fiber.Ctx) error {
	coupons, err := h.coupons.ListAll(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	out := make([]model.CouponResponse, 0, len(coupons))
	for i := range coupons {
		out = append(out, model.NewCouponResponse(&coupons[i]))
	}
	return c.JSON(out)
}
