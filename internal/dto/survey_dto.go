package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/models"
)

type CreateSurveyRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Options     []string   `json:"options"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type UpdateSurveyRequest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// HandleSurveyRequest toggles publication state; condition "publish" moves
// to published, anything else moves to unpublished.
type HandleSurveyRequest struct {
	ID        string `json:"id"`
	Condition string `json:"condition"`
}

// SurveyDetail annotates a survey with the caller's vote status.
type SurveyDetail struct {
	models.Survey
	Voted    bool   `json:"voted,omitempty"`
	Response string `json:"response,omitempty"`
}

// OwnedSurveys groups a surveyor's surveys across both publication states.
type OwnedSurveys struct {
	Created []models.Survey `json:"created"`
	Updated []models.Survey `json:"updated"`
}

type SubmitVoteRequest struct {
	SurveyID  string `json:"surveyId"`
	UserEmail string `json:"userEmail"`
	Response  string `json:"response"`
	Title     string `json:"title"`
}

// VoteReceipt carries the post-vote tally view.
type VoteReceipt struct {
	SurveyID   uuid.UUID             `json:"surveyId"`
	Title      string                `json:"title"`
	TotalVotes int                   `json:"totalVotes"`
	Options    []models.SurveyOption `json:"options"`
}

type CreateCommentRequest struct {
	SurveyID string `json:"surveyId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Comment  string `json:"comment"`
}

type CreateReportRequest struct {
	SurveyID string `json:"surveyId"`
	Email    string `json:"email"`
	Title    string `json:"title"`
	Reason   string `json:"reason"`
}

type ActionReportRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}
