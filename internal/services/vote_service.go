package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyVoted  = errors.New("you already voted")
	ErrSurveyClosed  = errors.New("survey is not accepting votes")
	ErrInvalidOption = errors.New("unknown survey option")
	ErrTallyPending  = errors.New("vote recorded but tally update pending")
)

// VoteService is the one-vote-per-user ledger. Uniqueness is enforced by
// the (survey_id, voter_email) index, never by a pre-check: the insert's
// duplicate-key error is the authoritative AlreadyVoted signal under
// concurrent submissions.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// Submit records a vote and moves the survey tally. The vote insert comes
// first; the tally follows in its own transaction. A tally failure leaves
// an untallied vote row, surfaces ErrTallyPending to the caller and is
// reapplied by the reconciler.
func (s *VoteService) Submit(surveyID uuid.UUID, voterEmail, option string) (*dto.VoteReceipt, error) {
	var survey models.Survey
	err := s.db.Preload("Options", orderedOptions).First(&survey, "id = ?", surveyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}

	if survey.Status != models.StatusPublished {
		return nil, ErrSurveyClosed
	}
	if survey.Deadline != nil && time.Now().After(*survey.Deadline) {
		return nil, ErrSurveyClosed
	}

	valid := false
	for _, opt := range survey.Options {
		if opt.Label == option {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidOption
	}

	vote := models.Vote{
		ID:          uuid.New(),
		SurveyID:    surveyID,
		VoterEmail:  voterEmail,
		Response:    option,
		SurveyTitle: survey.Title,
	}
	if err := s.db.Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	if err := s.applyTally(&vote); err != nil {
		slog.Error("vote recorded but tally update failed",
			"action", "tally",
			"survey_id", surveyID.String(),
			"voter", voterEmail,
			"error", err.Error())
		return nil, ErrTallyPending
	}

	return s.receipt(surveyID)
}

// applyTally moves the survey counters for one vote, exactly once. The
// vote row is claimed with a conditional update inside the transaction, so
// reapplying an already-tallied vote is a no-op and a rollback releases
// the claim along with the increments.
func (s *VoteService) applyTally(vote *models.Vote) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		claimed := tx.Model(&models.Vote{}).
			Where("id = ? AND tallied = ?", vote.ID, false).
			Update("tallied", true)
		if claimed.Error != nil {
			return claimed.Error
		}
		if claimed.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.Survey{}).
			Where("id = ?", vote.SurveyID).
			Update("votes", gorm.Expr("votes + 1")).Error; err != nil {
			return err
		}

		res := tx.Model(&models.SurveyOption{}).
			Where("survey_id = ? AND label = ?", vote.SurveyID, vote.Response).
			Update("votes", gorm.Expr("votes + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("option %q not found for survey %s", vote.Response, vote.SurveyID)
		}
		return nil
	})
}

// ReapplyPending re-runs the tally for untallied votes older than minAge.
// Safe to call repeatedly; applyTally is idempotent per vote.
func (s *VoteService) ReapplyPending(minAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-minAge)

	var votes []models.Vote
	if err := s.db.Where("tallied = ? AND created_at < ?", false, cutoff).Find(&votes).Error; err != nil {
		return 0, fmt.Errorf("failed to list pending votes: %w", err)
	}

	applied := 0
	for i := range votes {
		if err := s.applyTally(&votes[i]); err != nil {
			slog.Error("vote tally reapply failed",
				"action", "tally_reapply",
				"survey_id", votes[i].SurveyID.String(),
				"voter", votes[i].VoterEmail,
				"error", err.Error())
			continue
		}
		applied++
	}
	return applied, nil
}

// AllVotes backs the admin aggregate view.
func (s *VoteService) AllVotes() ([]models.Vote, error) {
	var votes []models.Vote
	if err := s.db.Order("created_at DESC").Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

func (s *VoteService) receipt(surveyID uuid.UUID) (*dto.VoteReceipt, error) {
	var survey models.Survey
	err := s.db.Preload("Options", orderedOptions).First(&survey, "id = ?", surveyID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load updated tally: %w", err)
	}
	return &dto.VoteReceipt{
		SurveyID:   survey.ID,
		Title:      survey.Title,
		TotalVotes: survey.Votes,
		Options:    survey.Options,
	}, nil
}
