package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report statuses for the admin review workflow.
const (
	ReportPending   = "pending"
	ReportReviewed  = "reviewed"
	ReportDismissed = "dismissed"
)

// Report flags a survey for admin review.
type Report struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"surveyId"`
	Email     string         `gorm:"size:255;not null;index" json:"email"`
	Title     string         `gorm:"size:500" json:"title"`
	Reason    string         `gorm:"not null;size:500" json:"reason"`
	Status    string         `gorm:"not null;default:'pending';size:50" json:"status"`
	AdminNote string         `gorm:"size:1000" json:"admin_note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
