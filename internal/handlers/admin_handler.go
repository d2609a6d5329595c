package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/services"
)

type AdminHandler struct {
	authService    *services.AuthService
	voteService    *services.VoteService
	paymentService *services.PaymentService
}

func NewAdminHandler(authService *services.AuthService, voteService *services.VoteService, paymentService *services.PaymentService) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		voteService:    voteService,
		paymentService: paymentService,
	}
}

func (h *AdminHandler) AllUsers(c *fiber.Ctx) error {
	users, err := h.authService.AllUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(users)
}

// VotesAndPayments is the combined activity feed for the admin dashboard.
func (h *AdminHandler) VotesAndPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.AllPayments()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	votes, err := h.voteService.AllVotes()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(dto.VotesAndPayments{Payments: payments, Votes: votes})
}

func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.authService.SetRole(req.UserID, req.Role); err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update role",
		})
	}

	return c.JSON(fiber.Map{"message": "Role updated"})
}
