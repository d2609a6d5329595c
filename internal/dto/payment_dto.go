package dto

import "github.com/surveyscape/backend/internal/models"

type CreateIntentRequest struct {
	Price float64 `json:"price"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type RecordPaymentRequest struct {
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
}

type RecordPaymentResponse struct {
	PaymentID string `json:"paymentId"`
	Message   string `json:"message"`
}

// VotesAndPayments is the admin aggregate view.
type VotesAndPayments struct {
	Payments []models.Payment `json:"payments"`
	Votes    []models.Vote    `json:"votes"`
}
