package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/gateway"
	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/scope"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrGateway          = errors.New("payment gateway error")
	ErrPromotionPending = errors.New("payment recorded but role update pending")
)

// PaymentService records payments and promotes the payer's access tier.
// Promotion is monotonic: a conditional update only touches roles ranked
// below pro-user, so an admin is never downgraded by paying.
type PaymentService struct {
	db       *gorm.DB
	gateway  gateway.PaymentGateway
	currency string
}

func NewPaymentService(db *gorm.DB, gw gateway.PaymentGateway, currency string) *PaymentService {
	return &PaymentService{db: db, gateway: gw, currency: currency}
}

// CreateIntent asks the gateway for a client-confirmable secret. No state
// is written here; capture confirmation arrives via Record.
func (s *PaymentService) CreateIntent(price float64) (string, error) {
	cents := int64(math.Round(price * 100))
	if cents < 1 {
		return "", ErrInvalidAmount
	}

	secret, err := s.gateway.CreateIntent(cents, s.currency)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return secret, nil
}

// Record persists the captured payment, then promotes the payer. A
// promotion failure leaves the payment row unpromoted, surfaces
// ErrPromotionPending and is retried by the reconciler.
func (s *PaymentService) Record(email string, amount float64, transactionID string) (*dto.RecordPaymentResponse, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var user models.User
	if err := s.db.Scopes(scope.ByEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	payment := models.Payment{
		ID:            uuid.New(),
		Email:         email,
		Amount:        amount,
		TransactionID: transactionID,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := s.promote(&payment); err != nil {
		slog.Error("payment recorded but role update failed",
			"action", "promote",
			"payment_id", payment.ID.String(),
			"voter", email,
			"error", err.Error())
		return nil, ErrPromotionPending
	}

	return &dto.RecordPaymentResponse{
		PaymentID: payment.ID.String(),
		Message:   "User role updated",
	}, nil
}

// promote applies the role change for one payment, exactly once. The role
// update is conditional on the current role ranking below pro-user; a
// zero-row update means the user already holds an equal or higher tier,
// which still counts as promoted.
func (s *PaymentService) promote(payment *models.Payment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		claimed := tx.Model(&models.Payment{}).
			Where("id = ? AND promoted = ?", payment.ID, false).
			Update("promoted", true)
		if claimed.Error != nil {
			return claimed.Error
		}
		if claimed.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&models.User{}).
			Where("email = ? AND role IN ?", payment.Email, models.RolesBelow(models.RoleProUser)).
			Update("role", models.RoleProUser).Error
	})
}

// ReapplyPending retries the promotion for unpromoted payments older than
// minAge.
func (s *PaymentService) ReapplyPending(minAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-minAge)

	var payments []models.Payment
	if err := s.db.Where("promoted = ? AND created_at < ?", false, cutoff).Find(&payments).Error; err != nil {
		return 0, fmt.Errorf("failed to list pending payments: %w", err)
	}

	applied := 0
	for i := range payments {
		if err := s.promote(&payments[i]); err != nil {
			slog.Error("payment promotion reapply failed",
				"action", "promote_reapply",
				"payment_id", payments[i].ID.String(),
				"error", err.Error())
			continue
		}
		applied++
	}
	return applied, nil
}

// AllPayments backs the admin aggregate view.
func (s *PaymentService) AllPayments() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
