package payment

import (
	"github.com/google/uuid"
)

// Normalized payment statuses exposed to the frontend.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// Requests

// CreatePreferenceRequest's amount field is accepted for wire compatibility
// but never charged; the preference is priced from the persisted order row.
type CreatePreferenceRequest struct {
	OrderID     uuid.UUID `json:"orderID" validate:"required"`
	Amount      float64   `json:"amount" validate:"omitempty,gt=0"`
	Description string    `json:"description" validate:"omitempty,max=255"`
	PayerName   string    `json:"payerName" validate:"omitempty,max=120"`
	PayerEmail  string    `json:"payerEmail" validate:"omitempty,email"`
}

// Responses

// PreferenceResult reports gateway failures as data instead of errors, so
// the frontend can always render something actionable.
type PreferenceResult struct {
	Success      bool   `json:"success"`
	PreferenceID string `json:"preferenceID,omitempty"`
	InitPoint    string `json:"initPoint,omitempty"`
	Error        string `json:"error,omitempty"`
}

type PaymentStatusResult struct {
	Success           bool    `json:"success"`
	PaymentID         int     `json:"paymentID,omitempty"`
	Status            string  `json:"status,omitempty"`
	StatusDetail      string  `json:"statusDetail,omitempty"`
	TransactionAmount float64 `json:"transactionAmount,omitempty"`
	PaymentMethodID   string  `json:"paymentMethodID,omitempty"`
	Error             string  `json:"error,omitempty"`
}
