package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/identity"
	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/testutil"
)

func TestCreateSurvey(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSurveyService(db)
	maker := identity.Identity{Email: "maker@example.com", Role: models.RoleSurveyor}

	tests := []struct {
		name    string
		req     dto.CreateSurveyRequest
		wantErr error
		wantOpt int
	}{
		{
			name:    "valid",
			req:     dto.CreateSurveyRequest{Title: "Lunch", Options: []string{"pizza", "sushi", "salad"}},
			wantOpt: 3,
		},
		{
			name:    "duplicate options collapsed",
			req:     dto.CreateSurveyRequest{Title: "Dup", Options: []string{"yes", "yes ", " no"}},
			wantOpt: 2,
		},
		{
			name:    "missing title",
			req:     dto.CreateSurveyRequest{Title: "  ", Options: []string{"a", "b"}},
			wantErr: ErrInvalidSurvey,
		},
		{
			name:    "single option",
			req:     dto.CreateSurveyRequest{Title: "One", Options: []string{"only"}},
			wantErr: ErrInvalidSurvey,
		},
		{
			name:    "blank options filtered",
			req:     dto.CreateSurveyRequest{Title: "Blank", Options: []string{"a", "   ", ""}},
			wantErr: ErrInvalidSurvey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			survey, err := svc.Create(maker, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if survey.Status != models.StatusUnpublished {
				t.Errorf("new survey should start unpublished, got %q", survey.Status)
			}
			if survey.CreatedBy != maker.Email {
				t.Errorf("created_by mismatch: %q", survey.CreatedBy)
			}
			if len(survey.Options) != tt.wantOpt {
				t.Errorf("expected %d options, got %d", tt.wantOpt, len(survey.Options))
			}
		})
	}
}

func TestSetStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSurveyService(db)

	survey := testutil.CreateSurvey(t, db, "Flip me", models.StatusUnpublished, "maker@example.com", "a", "b")

	published, err := svc.SetStatus(survey.ID, models.StatusPublished)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.Status != models.StatusPublished {
		t.Fatalf("expected published, got %q", published.Status)
	}

	// Publishing an already published survey is rejected, not overwritten.
	if _, err := svc.SetStatus(survey.ID, models.StatusPublished); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	unpublished, err := svc.SetStatus(survey.ID, models.StatusUnpublished)
	if err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	if unpublished.Status != models.StatusUnpublished {
		t.Fatalf("expected unpublished, got %q", unpublished.Status)
	}

	if _, err := svc.SetStatus(uuid.New(), models.StatusPublished); !errors.Is(err, ErrSurveyNotFound) {
		t.Fatalf("expected ErrSurveyNotFound, got %v", err)
	}

	if _, err := svc.SetStatus(survey.ID, "archived"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
}

func TestSetStatusKeepsContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSurveyService(db)

	survey := testutil.CreateSurvey(t, db, "Untouched", models.StatusUnpublished, "maker@example.com", "a", "b")
	db.Model(survey).Update("votes", 7)

	flipped, err := svc.SetStatus(survey.ID, models.StatusPublished)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if flipped.Title != "Untouched" || flipped.Votes != 7 || len(flipped.Options) != 2 {
		t.Errorf("status flip touched content fields: %+v", flipped)
	}
}

func TestUpdateSurveyOwnership(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSurveyService(db)

	survey := testutil.CreateSurvey(t, db, "Mine", models.StatusUnpublished, "owner@example.com", "a", "b")

	req := dto.UpdateSurveyRequest{ID: survey.ID.String(), Title: "Renamed", Category: "general"}

	stranger := identity.Identity{Email: "other@example.com", Role: models.RoleSurveyor}
	if _, err := svc.Update(stranger, &req); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	owner := identity.Identity{Email: "owner@example.com", Role: models.RoleSurveyor}
	updated, err := svc.Update(owner, &req)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title not updated: %q", updated.Title)
	}

	// Admin can update anyone's survey.
	admin := identity.Identity{Email: "admin@example.com", Role: models.RoleAdmin}
	req.Title = "Admin edit"
	if _, err := svc.Update(admin, &req); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestListByStatusIsDisjoint(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSurveyService(db)

	testutil.CreateSurvey(t, db, "Pub", models.StatusPublished, "maker@example.com", "a", "b")
	testutil.CreateSurvey(t, db, "Draft", models.StatusUnpublished, "maker@example.com", "a", "b")

	published, err := svc.ListByStatus(models.StatusPublished)
	if err != nil {
		t.Fatalf("list published failed: %v", err)
	}
	unpublished, err := svc.ListByStatus(models.StatusUnpublished)
	if err != nil {
		t.Fatalf("list unpublished failed: %v", err)
	}

	if len(published) != 1 || len(unpublished) != 1 {
		t.Fatalf("expected 1/1 split, got %d/%d", len(published), len(unpublished))
	}
	if published[0].Title != "Pub" || unpublished[0].Title != "Draft" {
		t.Errorf("surveys landed in the wrong list")
	}
}

func TestMostVotedOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSurveyService(db)

	low := testutil.CreateSurvey(t, db, "Low", models.StatusPublished, "maker@example.com", "a", "b")
	high := testutil.CreateSurvey(t, db, "High", models.StatusPublished, "maker@example.com", "a", "b")
	testutil.CreateSurvey(t, db, "Hidden", models.StatusUnpublished, "maker@example.com", "a", "b")

	db.Model(low).Update("votes", 3)
	db.Model(high).Update("votes", 10)

	surveys, err := svc.MostVoted(6)
	if err != nil {
		t.Fatalf("most voted failed: %v", err)
	}
	if len(surveys) != 2 {
		t.Fatalf("expected 2 published surveys, got %d", len(surveys))
	}
	if surveys[0].Title != "High" || surveys[1].Title != "Low" {
		t.Errorf("wrong order: %q then %q", surveys[0].Title, surveys[1].Title)
	}
}

func TestStoreOutageIsNotNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	surveys := NewSurveyService(db)
	votes := NewVoteService(db)
	auth := NewAuthService(db, testutil.NewTestConfig())
	payments := NewPaymentService(db, &fakeGateway{}, "usd")

	survey := testutil.CreateSurvey(t, db, "Exists", models.StatusPublished, "maker@example.com", "a", "b")
	testutil.CreateUser(t, db, "someone@example.com", models.RoleUser)

	// Kill the pool: every query now fails with a store error, and none of
	// these lookups may misreport that as a missing record.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.Close()

	if _, err := surveys.Get(survey.ID); err == nil || errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("survey load over dead store reported not-found: %v", err)
	}
	if _, err := surveys.SetStatus(survey.ID, models.StatusPublished); err == nil || errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("state flip over dead store reported not-found: %v", err)
	}
	if _, err := votes.Submit(survey.ID, "someone@example.com", "a"); err == nil || errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("vote over dead store reported not-found: %v", err)
	}
	if _, err := auth.UserRole("someone@example.com"); err == nil || errors.Is(err, ErrUserNotFound) {
		t.Errorf("role lookup over dead store reported not-found: %v", err)
	}
	if _, err := payments.Record("someone@example.com", 10, "txn_dead"); err == nil || errors.Is(err, ErrUserNotFound) {
		t.Errorf("payment over dead store reported not-found: %v", err)
	}
}

func TestDetailMarksVoted(t *testing.T) {
	db := testutil.NewTestDB(t)
	surveys := NewSurveyService(db)
	votes := NewVoteService(db)

	survey := testutil.CreateSurvey(t, db, "Detail", models.StatusPublished, "maker@example.com", "a", "b")
	if _, err := votes.Submit(survey.ID, "alice@example.com", "a"); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	detail, err := surveys.Detail(survey.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if !detail.Voted || detail.Response != "a" {
		t.Errorf("expected voted detail, got voted=%v response=%q", detail.Voted, detail.Response)
	}

	fresh, err := surveys.Detail(survey.ID, "nobody@example.com")
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if fresh.Voted {
		t.Errorf("non-voter marked as voted")
	}
}
