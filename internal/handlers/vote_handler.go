package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/identity"
	"github.com/surveyscape/backend/internal/services"
)

type VoteHandler struct {
	voteService *services.VoteService
}

func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// Submit records the caller's vote. The voter email always comes from the
// verified token, never from the request body.
func (h *VoteHandler) Submit(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmitVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	surveyID, err := uuid.Parse(req.SurveyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey id",
		})
	}

	receipt, err := h.voteService.Submit(surveyID, caller.Email, req.Response)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSurveyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Survey not found",
			})
		case errors.Is(err, services.ErrAlreadyVoted):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrSurveyClosed), errors.Is(err, services.ErrInvalidOption):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrTallyPending):
			// The vote is durable; only the counter move failed. 202 tells
			// the client not to retry, the reconciler will finish the job.
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"message": "Vote recorded, tally pending",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to submit vote",
			})
		}
	}

	return c.JSON(receipt)
}
