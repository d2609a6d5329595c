package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only discussion entry on a survey.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"surveyId"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Name      string    `gorm:"size:255;index" json:"name"`
	Comment   string    `gorm:"size:1000;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
