package models

// FeeStatus defines the payment state of a fee record. It is derived from
// the payment history, never set directly.
type FeeStatus string

const (
	FeePaid    FeeStatus = "paid"
	FeeUnpaid  FeeStatus = "unpaid"
	FeePartial FeeStatus = "partial"
	FeeOverdue FeeStatus = "overdue"
)

// FeeStatusAll is the identity filter value accepted by list queries.
const FeeStatusAll = "all"

// IsValid reports whether s is one of the known fee statuses.
func (s FeeStatus) IsValid() bool {
	switch s {
	case FeePaid, FeeUnpaid, FeePartial, FeeOverdue:
		return true
	}
	return false
}

// PaymentMethod defines how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodUPI          PaymentMethod = "upi"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodOther        PaymentMethod = "other"
)

// IsValid reports whether m is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI, MethodBankTransfer, MethodOther:
		return true
	}
	return false
}
