// Package testutil provides the shared in-memory database and token helpers
// for service and handler tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/config"
	"github.com/surveyscape/backend/internal/database"
	"github.com/surveyscape/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory sqlite database with the full schema.
// TranslateError stays on, matching production, so duplicate-key paths
// behave the same under test. The pool is pinned to one connection because
// every sqlite :memory: connection is its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// NewTestConfig returns a config suitable for tests; no env vars are read.
func NewTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		StripeCurrency:    "usd",
		ReconcileInterval: time.Minute,
		ReconcileMinAge:   0,
		Port:              "0",
		CORSOrigins:       "*",
	}
}

// SignToken issues a token the way the auth service does, for exercising
// protected routes.
func SignToken(t *testing.T, cfg *config.Config, email, name, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  email,
		"name": name,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(cfg.JWTExpiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// CreateUser inserts a user row directly.
func CreateUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := models.User{
		ID:    uuid.New(),
		Email: email,
		Name:  email,
		Role:  role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateSurvey inserts a survey with the given options and status.
func CreateSurvey(t *testing.T, db *gorm.DB, title, status, createdBy string, options ...string) *models.Survey {
	t.Helper()

	survey := models.Survey{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
	}
	for i, label := range options {
		survey.Options = append(survey.Options, models.SurveyOption{
			ID:       uuid.New(),
			SurveyID: survey.ID,
			Label:    label,
			Position: i,
		})
	}
	if err := db.Create(&survey).Error; err != nil {
		t.Fatalf("failed to create test survey: %v", err)
	}
	return &survey
}
