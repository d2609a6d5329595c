package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Publication states. A survey is always in exactly one of them; the flip is
// a single conditional UPDATE so no reader can observe both or neither.
const (
	StatusPublished   = "published"
	StatusUnpublished = "unpublished"
)

// ValidStatus reports whether s names a defined publication state.
func ValidStatus(s string) bool {
	return s == StatusPublished || s == StatusUnpublished
}

// Survey holds the content fields plus the aggregate vote counter. Votes
// must always equal the number of Vote rows referencing the survey; the
// counter is only ever moved inside the tally transaction.
type Survey struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null;size:500" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Status      string         `gorm:"size:20;not null;default:'unpublished';index" json:"status"`
	Votes       int            `gorm:"default:0" json:"votes"`
	CreatedBy   string         `gorm:"size:255;index" json:"createdBy"`
	UpdatedBy   string         `gorm:"size:255;index" json:"updatedBy"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Options     []SurveyOption `gorm:"foreignKey:SurveyID" json:"options"`
}

// SurveyOption is one choice of a survey with its own tally. Position keeps
// the authored order stable.
type SurveyOption struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_survey_options_survey_label" json:"survey_id"`
	Label    string    `gorm:"size:500;not null;uniqueIndex:idx_survey_options_survey_label" json:"label"`
	Position int       `gorm:"not null" json:"position"`
	Votes    int       `gorm:"default:0" json:"votes"`
}
