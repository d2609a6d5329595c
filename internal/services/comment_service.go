package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidComment = errors.New("surveyId and comment are required")

// CommentService appends discussion entries; text passes the moderation
// filter before insert.
type CommentService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewCommentService(db *gorm.DB, moderation *ModerationService) *CommentService {
	return &CommentService{db: db, moderation: moderation}
}

func (s *CommentService) Create(req *dto.CreateCommentRequest) (*models.Comment, error) {
	surveyID, err := uuid.Parse(req.SurveyID)
	if err != nil || strings.TrimSpace(req.Comment) == "" {
		return nil, ErrInvalidComment
	}

	if ok, reason := s.moderation.FilterContent(req.Comment); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, reason)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		SurveyID: surveyID,
		Email:    req.Email,
		Name:     req.Name,
		Comment:  strings.TrimSpace(req.Comment),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

func (s *CommentService) BySurvey(surveyID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("survey_id = ?", surveyID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) ByName(name string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("name = ?", name).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
