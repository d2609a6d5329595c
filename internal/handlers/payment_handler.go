package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/identity"
	"github.com/surveyscape/backend/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req dto.CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	secret, err := h.paymentService.CreateIntent(req.Price)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Payment gateway unavailable",
		})
	}

	return c.JSON(dto.CreateIntentResponse{ClientSecret: secret})
}

// Record persists a captured payment for the caller and promotes their role.
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.paymentService.Record(caller.Email, req.Amount, req.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrPromotionPending):
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"message": "Payment recorded, role update pending",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to record payment",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
