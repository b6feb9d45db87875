// Package feeledger holds the fee-ledger business rules: status derivation
// from payment history, paid/remaining totals, and the append-only payment
// and note mutations. Everything here is a pure transform over in-memory
// values; persistence belongs to the database package and callers must
// persist the returned record for a mutation to take effect.
package feeledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"feetrack-schools/app/models"
)

// TotalPaid sums the amounts of all recorded payments.
func TotalPaid(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// DeriveStatus classifies a fee record from its payment history.
//
// A fully paid record is paid even when the due date has passed, and a
// partially paid record past its due date stays partial rather than
// overdue; only a record with no payments at all can be overdue.
func DeriveStatus(feeAmount decimal.Decimal, payments []models.Payment, dueDate, today models.Date) models.FeeStatus {
	totalPaid := TotalPaid(payments)
	switch {
	case totalPaid.GreaterThanOrEqual(feeAmount):
		return models.FeePaid
	case totalPaid.GreaterThan(decimal.Zero):
		return models.FeePartial
	case today.Time.After(dueDate.Time):
		return models.FeeOverdue
	default:
		return models.FeeUnpaid
	}
}

// Totals is the aggregate view of a fee record's payment history.
type Totals struct {
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// ComputeTotals returns the paid total and remaining balance. The balance
// goes negative on overpayment; use DisplayBalance when rendering.
func ComputeTotals(feeAmount decimal.Decimal, payments []models.Payment) Totals {
	totalPaid := TotalPaid(payments)
	return Totals{
		TotalPaid:        totalPaid,
		RemainingBalance: feeAmount.Sub(totalPaid),
	}
}

// DisplayBalance is the remaining balance clamped at zero.
func (t Totals) DisplayBalance() decimal.Decimal {
	if t.RemainingBalance.IsNegative() {
		return decimal.Zero
	}
	return t.RemainingBalance
}

// RecordPayment appends a payment to the record and recomputes its status
// as of today. The input record is not modified; callers get back a fresh
// value with copied payment and note slices. Fails with ValidationError
// on a non-positive amount or unknown method, leaving nothing applied.
func RecordPayment(record models.FeeRecord, payment models.Payment, today models.Date) (models.FeeRecord, error) {
	if !payment.Amount.IsPositive() {
		return models.FeeRecord{}, validationErrorf("payment amount must be greater than zero")
	}
	if !payment.Method.IsValid() {
		return models.FeeRecord{}, validationErrorf("unknown payment method %q", payment.Method)
	}

	updated := record
	updated.Payments = append(clonePayments(record.Payments), payment)
	updated.Notes = cloneNotes(record.Notes)
	updated.Status = DeriveStatus(updated.FeeAmount, updated.Payments, updated.DueDate, today)
	return updated, nil
}

// RecordNote appends a note to the record. Notes never affect the status.
// Fails with ValidationError when the text is empty after trimming.
func RecordNote(record models.FeeRecord, note models.Note) (models.FeeRecord, error) {
	note.Text = strings.TrimSpace(note.Text)
	if note.Text == "" {
		return models.FeeRecord{}, validationErrorf("note text must not be empty")
	}

	updated := record
	updated.Payments = clonePayments(record.Payments)
	updated.Notes = append(cloneNotes(record.Notes), note)
	return updated, nil
}

func clonePayments(payments []models.Payment) []models.Payment {
	out := make([]models.Payment, len(payments))
	copy(out, payments)
	return out
}

func cloneNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	copy(out, notes)
	return out
}
