package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote records one user's response to one survey. The unique index on
// (survey_id, voter_email) is the authority on one-vote-per-user; a
// duplicate insert fails at the store, not in application code. Tallied
// flips to true once the survey counters reflect this row — a false value
// older than a few seconds is a reconciliation candidate.
type Vote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_survey_voter" json:"surveyId"`
	VoterEmail  string    `gorm:"size:255;not null;uniqueIndex:idx_votes_survey_voter" json:"userEmail"`
	Response    string    `gorm:"size:500;not null" json:"response"`
	SurveyTitle string    `gorm:"size:500" json:"title"`
	Tallied     bool      `gorm:"default:false;index" json:"-"`
	CreatedAt   time.Time `json:"time"`
}
