package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is append-only. Promoted flips to true once the payer's role
// reflects this payment; a stale false value is picked up by the
// reconciler.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"size:255;not null;index" json:"email"`
	Amount        float64   `gorm:"not null" json:"amount"`
	TransactionID string    `gorm:"size:255" json:"transactionId,omitempty"`
	Promoted      bool      `gorm:"default:false;index" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
