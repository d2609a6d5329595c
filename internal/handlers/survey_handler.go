package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/identity"
	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/services"
)

type SurveyHandler struct {
	surveyService *services.SurveyService
}

func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

func (h *SurveyHandler) Published(c *fiber.Ctx) error {
	surveys, err := h.surveyService.ListByStatus(models.StatusPublished)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(surveys)
}

func (h *SurveyHandler) Unpublished(c *fiber.Ctx) error {
	surveys, err := h.surveyService.ListByStatus(models.StatusUnpublished)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(surveys)
}

func (h *SurveyHandler) Create(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	survey, err := h.surveyService.Create(caller, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSurvey) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create survey",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(survey)
}

// SetStatus handles the publish/unpublish toggle. The request carries a
// condition string; "publish" moves to published, anything else unpublishes.
func (h *SurveyHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.HandleSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey id",
		})
	}

	target := models.StatusUnpublished
	if req.Condition == "publish" {
		target = models.StatusPublished
	}

	survey, err := h.surveyService.SetStatus(id, target)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Survey not found",
			})
		}
		if errors.Is(err, services.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update survey status",
		})
	}

	return c.JSON(survey)
}

func (h *SurveyHandler) Update(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	survey, err := h.surveyService.Update(caller, &req)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Survey not found",
			})
		}
		if errors.Is(err, services.ErrNotOwner) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update survey",
		})
	}

	return c.JSON(survey)
}

func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey id",
		})
	}

	survey, err := h.surveyService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Survey not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(survey)
}

// Detail returns the survey plus the caller's vote status.
func (h *SurveyHandler) Detail(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid survey id",
		})
	}

	detail, err := h.surveyService.Detail(id, caller.Email)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Survey not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(detail)
}

func (h *SurveyHandler) MostVoted(c *fiber.Ctx) error {
	surveys, err := h.surveyService.MostVoted(viewLimit(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(surveys)
}

func (h *SurveyHandler) Latest(c *fiber.Ctx) error {
	surveys, err := h.surveyService.Latest(viewLimit(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(surveys)
}

// viewLimit reads the limit query parameter, clamped so a zero or negative
// value cannot become an unbounded query.
func viewLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", 6)
	if limit < 1 || limit > 50 {
		return 6
	}
	return limit
}

// Owned lists the caller's created and updated surveys.
func (h *SurveyHandler) Owned(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	owned, err := h.surveyService.OwnedBy(caller.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(owned)
}
