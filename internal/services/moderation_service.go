package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidReport     = errors.New("surveyId and reason are required")
	ErrContentRejected   = errors.New("content rejected by moderation filter")
	ErrInvalidReportStep = errors.New("unknown report status")
)

var BannedWords = []string{
	"fuck", "fucking", "shit", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ModerationService screens user-generated text and runs the admin report
// workflow.
type ModerationService struct {
	db                  *gorm.DB
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
}

func NewModerationService(db *gorm.DB) *ModerationService {
	ms := &ModerationService{db: db}
	for _, word := range BannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		if re, err := regexp.Compile(pattern); err == nil {
			ms.bannedWordRegexps = append(ms.bannedWordRegexps, re)
		}
	}
	ms.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	// RE2 has no backreferences, so spell the runs out.
	ms.repeatedCharPattern = regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`)
	return ms
}

// FilterContent returns false with a reason when text should be rejected.
func (ms *ModerationService) FilterContent(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "contains banned language"
		}
	}
	if ms.urlPattern.MatchString(text) {
		return false, "links are not allowed"
	}
	if ms.repeatedCharPattern.MatchString(text) {
		return false, "looks like spam"
	}
	return true, ""
}

// CreateReport files a survey report for admin review.
func (ms *ModerationService) CreateReport(req *dto.CreateReportRequest) (*models.Report, error) {
	surveyID, err := uuid.Parse(req.SurveyID)
	if err != nil || strings.TrimSpace(req.Reason) == "" {
		return nil, ErrInvalidReport
	}

	report := models.Report{
		ID:       uuid.New(),
		SurveyID: surveyID,
		Email:    req.Email,
		Title:    req.Title,
		Reason:   strings.TrimSpace(req.Reason),
		Status:   models.ReportPending,
	}
	if err := ms.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// ReportsByEmail lists a user's own reports.
func (ms *ModerationService) ReportsByEmail(email string) ([]models.Report, error) {
	var reports []models.Report
	if err := ms.db.Where("email = ?", email).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// AllReports backs the admin review panel.
func (ms *ModerationService) AllReports() ([]models.Report, error) {
	var reports []models.Report
	if err := ms.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ActionReport moves a report through the review workflow.
func (ms *ModerationService) ActionReport(id uuid.UUID, status, adminNote string) (*models.Report, error) {
	switch status {
	case models.ReportPending, models.ReportReviewed, models.ReportDismissed:
	default:
		return nil, ErrInvalidReportStep
	}

	var report models.Report
	if err := ms.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, ErrReportNotFound
	}

	updates := map[string]interface{}{"status": status}
	if adminNote != "" {
		updates["admin_note"] = adminNote
	}
	if err := ms.db.Model(&report).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to action report: %w", err)
	}
	return &report, nil
}
