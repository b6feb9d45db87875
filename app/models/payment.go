package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one payment recorded against a fee record. Payments are
// immutable once recorded; there is no edit or delete.
type Payment struct {
	ID        string          `json:"id"`
	Date      Date            `json:"date" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    PaymentMethod   `json:"method" validate:"required"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
