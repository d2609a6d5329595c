package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/testutil"
)

func TestFilterContent(t *testing.T) {
	ms := NewModerationService(nil)

	tests := []struct {
		name string
		text string
		ok   bool
	}{
		{"clean text", "I like this survey", true},
		{"empty text", "", true},
		{"banned word", "this is total bullshit", false},
		{"banned word uppercase", "SPAM alert", false},
		{"banned word inside another word", "scunthorpe classic", true},
		{"http link", "vote here http://evil.example.com", false},
		{"www link", "see www.evil.example for details", false},
		{"repeated characters", "yessssss", false},
		{"triple characters allowed", "hmmm ok", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ms.FilterContent(tt.text)
			if ok != tt.ok {
				t.Errorf("FilterContent(%q) = %v (%s), want %v", tt.text, ok, reason, tt.ok)
			}
		})
	}
}

func TestCommentModeration(t *testing.T) {
	db := testutil.NewTestDB(t)
	ms := NewModerationService(db)
	comments := NewCommentService(db, ms)

	survey := testutil.CreateSurvey(t, db, "Discussed", models.StatusPublished, "maker@example.com", "a", "b")

	clean := dto.CreateCommentRequest{
		SurveyID: survey.ID.String(),
		Email:    "pro@example.com",
		Name:     "Pro",
		Comment:  "Interesting results so far",
	}
	if _, err := comments.Create(&clean); err != nil {
		t.Fatalf("clean comment rejected: %v", err)
	}

	dirty := clean
	dirty.Comment = "buy followers at www.spam.example"
	if _, err := comments.Create(&dirty); !errors.Is(err, ErrContentRejected) {
		t.Fatalf("expected ErrContentRejected, got %v", err)
	}

	empty := clean
	empty.Comment = "   "
	if _, err := comments.Create(&empty); !errors.Is(err, ErrInvalidComment) {
		t.Fatalf("expected ErrInvalidComment, got %v", err)
	}

	listed, err := comments.BySurvey(survey.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("expected 1 stored comment, got %d", len(listed))
	}
}

func TestReportWorkflow(t *testing.T) {
	db := testutil.NewTestDB(t)
	ms := NewModerationService(db)

	survey := testutil.CreateSurvey(t, db, "Reported", models.StatusPublished, "maker@example.com", "a", "b")

	report, err := ms.CreateReport(&dto.CreateReportRequest{
		SurveyID: survey.ID.String(),
		Email:    "reporter@example.com",
		Title:    survey.Title,
		Reason:   "misleading options",
	})
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}
	if report.Status != models.ReportPending {
		t.Errorf("new report should be pending, got %q", report.Status)
	}

	if _, err := ms.CreateReport(&dto.CreateReportRequest{SurveyID: "junk", Reason: "x"}); !errors.Is(err, ErrInvalidReport) {
		t.Fatalf("expected ErrInvalidReport, got %v", err)
	}
	if _, err := ms.CreateReport(&dto.CreateReportRequest{SurveyID: survey.ID.String(), Reason: " "}); !errors.Is(err, ErrInvalidReport) {
		t.Fatalf("expected ErrInvalidReport for empty reason, got %v", err)
	}

	mine, err := ms.ReportsByEmail("reporter@example.com")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected 1 own report, got %d (%v)", len(mine), err)
	}

	reviewed, err := ms.ActionReport(report.ID, models.ReportReviewed, "survey unpublished")
	if err != nil {
		t.Fatalf("action failed: %v", err)
	}
	if reviewed.Status != models.ReportReviewed || reviewed.AdminNote != "survey unpublished" {
		t.Errorf("unexpected actioned report: %+v", reviewed)
	}

	if _, err := ms.ActionReport(report.ID, "escalated", ""); !errors.Is(err, ErrInvalidReportStep) {
		t.Fatalf("expected ErrInvalidReportStep, got %v", err)
	}
	if _, err := ms.ActionReport(uuid.New(), models.ReportDismissed, ""); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
