package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/identity"
	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/scope"
	"gorm.io/gorm"
)

var (
	ErrSurveyNotFound    = errors.New("survey not found")
	ErrInvalidTransition = errors.New("survey already in requested state")
	ErrInvalidSurvey     = errors.New("title and at least two distinct options are required")
	ErrNotOwner          = errors.New("only the survey owner can update it")
)

// SurveyService owns authoring, the publication-state machine and the
// read-only query views.
type SurveyService struct {
	db *gorm.DB
}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{db: db}
}

// Create stores a new survey in the unpublished state.
func (s *SurveyService) Create(caller identity.Identity, req *dto.CreateSurveyRequest) (*models.Survey, error) {
	labels := make([]string, 0, len(req.Options))
	seen := make(map[string]struct{})
	for _, raw := range req.Options {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	if strings.TrimSpace(req.Title) == "" || len(labels) < 2 {
		return nil, ErrInvalidSurvey
	}

	survey := models.Survey{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Status:      models.StatusUnpublished,
		CreatedBy:   caller.Email,
		UpdatedBy:   caller.Email,
		Deadline:    req.Deadline,
	}
	for i, label := range labels {
		survey.Options = append(survey.Options, models.SurveyOption{
			ID:       uuid.New(),
			SurveyID: survey.ID,
			Label:    label,
			Position: i,
		})
	}

	if err := s.db.Create(&survey).Error; err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	return &survey, nil
}

// SetStatus flips the publication state with a single conditional update
// keyed on the current state. Two concurrent flips on the same survey
// cannot both succeed; the loser sees ErrInvalidTransition. Content fields
// are untouched.
func (s *SurveyService) SetStatus(id uuid.UUID, target string) (*models.Survey, error) {
	if !models.ValidStatus(target) {
		return nil, ErrInvalidTransition
	}

	source := models.StatusPublished
	if target == models.StatusPublished {
		source = models.StatusUnpublished
	}

	res := s.db.Model(&models.Survey{}).
		Where("id = ? AND status = ?", id, source).
		Update("status", target)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update survey status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&models.Survey{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check survey state: %w", err)
		}
		if count == 0 {
			return nil, ErrSurveyNotFound
		}
		return nil, ErrInvalidTransition
	}

	return s.Get(id)
}

// Update mutates content fields only. The caller must be the survey's
// creator or an admin.
func (s *SurveyService) Update(caller identity.Identity, req *dto.UpdateSurveyRequest) (*models.Survey, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, ErrSurveyNotFound
	}

	var survey models.Survey
	if err := s.db.First(&survey, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}

	if survey.CreatedBy != caller.Email && caller.Role != models.RoleAdmin {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"updated_by":  caller.Email,
	}
	if req.Deadline != nil {
		updates["deadline"] = req.Deadline
	}

	if err := s.db.Model(&survey).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update survey: %w", err)
	}
	return s.Get(id)
}

// Get loads a survey with its options in authored order.
func (s *SurveyService) Get(id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.Preload("Options", orderedOptions).First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}
	return &survey, nil
}

// Detail annotates the survey with the caller's vote status.
func (s *SurveyService) Detail(id uuid.UUID, email string) (*dto.SurveyDetail, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	detail := dto.SurveyDetail{Survey: *survey}
	var vote models.Vote
	err = s.db.Where("survey_id = ? AND voter_email = ?", id, email).First(&vote).Error
	switch {
	case err == nil:
		detail.Voted = true
		detail.Response = vote.Response
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load vote status: %w", err)
	}
	return &detail, nil
}

// ListByStatus is the backing query for the published and unpublished
// listing views. Because status is a single column, a survey appears in
// exactly one of them.
func (s *SurveyService) ListByStatus(status string) ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.db.Scopes(scope.ByStatus(status)).
		Preload("Options", orderedOptions).
		Order("created_at DESC").
		Find(&surveys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	return surveys, nil
}

// MostVoted returns published surveys by tally, created_at ascending as the
// stable tie-break.
func (s *SurveyService) MostVoted(limit int) ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.db.Scopes(scope.ByStatus(models.StatusPublished)).
		Order("votes DESC, created_at ASC").
		Limit(limit).
		Find(&surveys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list most voted surveys: %w", err)
	}
	return surveys, nil
}

// Latest returns the newest published surveys.
func (s *SurveyService) Latest(limit int) ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.db.Scopes(scope.ByStatus(models.StatusPublished)).
		Order("created_at DESC").
		Limit(limit).
		Find(&surveys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list latest surveys: %w", err)
	}
	return surveys, nil
}

// OwnedBy returns a surveyor's created and updated sets across both
// publication states.
func (s *SurveyService) OwnedBy(email string) (*dto.OwnedSurveys, error) {
	owned := &dto.OwnedSurveys{Created: []models.Survey{}, Updated: []models.Survey{}}

	if err := s.db.Where("created_by = ?", email).Order("created_at DESC").Find(&owned.Created).Error; err != nil {
		return nil, fmt.Errorf("failed to list created surveys: %w", err)
	}
	if err := s.db.Where("updated_by = ?", email).Order("created_at DESC").Find(&owned.Updated).Error; err != nil {
		return nil, fmt.Errorf("failed to list updated surveys: %w", err)
	}
	return owned, nil
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
