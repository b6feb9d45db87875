package feeledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"feetrack-schools/app/models"
)

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func payments(amounts ...string) []models.Payment {
	out := make([]models.Payment, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, models.Payment{Amount: amount(a), Method: models.MethodCash})
	}
	return out
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		feeAmount string
		payments  []models.Payment
		dueDate   string
		today     string
		want      models.FeeStatus
	}{
		{"no payments before due date", "45000", nil, "2023-04-15", "2023-04-01", models.FeeUnpaid},
		{"no payments on due date", "45000", nil, "2023-04-15", "2023-04-15", models.FeeUnpaid},
		{"no payments past due date", "45000", nil, "2023-04-15", "2023-04-16", models.FeeOverdue},
		{"fully paid", "45000", payments("45000"), "2023-04-15", "2023-04-10", models.FeePaid},
		{"fully paid past due date stays paid", "45000", payments("45000"), "2023-04-15", "2023-06-01", models.FeePaid},
		{"overpaid", "45000", payments("30000", "20000"), "2023-04-15", "2023-04-10", models.FeePaid},
		{"partial", "50000", payments("25000"), "2023-04-15", "2023-04-01", models.FeePartial},
		{"partial past due date stays partial", "50000", payments("25000"), "2023-04-15", "2023-06-01", models.FeePartial},
		{"several partial payments", "50000", payments("10000", "15000"), "2023-04-15", "2023-05-01", models.FeePartial},
		{"payments summing to exact amount", "50000", payments("25000", "25000"), "2023-04-15", "2023-05-01", models.FeePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(amount(tt.feeAmount), tt.payments, date(t, tt.dueDate), date(t, tt.today))
			if got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name          string
		feeAmount     string
		payments      []models.Payment
		wantPaid      string
		wantRemaining string
	}{
		{"no payments", "45000", nil, "0", "45000"},
		{"fully paid", "45000", payments("45000"), "45000", "0"},
		{"partial", "50000", payments("25000"), "25000", "25000"},
		{"overpaid goes negative", "45000", payments("50000"), "50000", "-5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(amount(tt.feeAmount), tt.payments)
			if !got.TotalPaid.Equal(amount(tt.wantPaid)) {
				t.Errorf("TotalPaid = %s, want %s", got.TotalPaid, tt.wantPaid)
			}
			if !got.RemainingBalance.Equal(amount(tt.wantRemaining)) {
				t.Errorf("RemainingBalance = %s, want %s", got.RemainingBalance, tt.wantRemaining)
			}
			// The identity holds for every input, overpayment included.
			sum := got.RemainingBalance.Add(got.TotalPaid)
			if !sum.Equal(amount(tt.feeAmount)) {
				t.Errorf("RemainingBalance + TotalPaid = %s, want %s", sum, tt.feeAmount)
			}
		})
	}
}

func TestDisplayBalanceClampsAtZero(t *testing.T) {
	totals := ComputeTotals(amount("45000"), payments("50000"))
	if !totals.RemainingBalance.Equal(amount("-5000")) {
		t.Fatalf("RemainingBalance = %s, want -5000", totals.RemainingBalance)
	}
	if !totals.DisplayBalance().IsZero() {
		t.Errorf("DisplayBalance = %s, want 0", totals.DisplayBalance())
	}
}

func testRecord(t *testing.T) models.FeeRecord {
	t.Helper()
	return models.FeeRecord{
		ID: "fr-1",
		Student: models.StudentRef{
			ID:              "st-1",
			AdmissionNumber: "ADM-001",
			FirstName:       "Aisha",
			LastName:        "Khan",
		},
		FeeAmount:       amount("45000"),
		Status:          models.FeeUnpaid,
		DueDate:         date(t, "2023-04-15"),
		NextPaymentDate: date(t, "2023-03-31"),
		Payments:        payments("10000"),
		Notes:           []models.Note{{ID: "n-1", Text: "called parent"}},
	}
}

func TestRecordPaymentAppendsWithoutMutatingInput(t *testing.T) {
	original := testRecord(t)
	payment := models.Payment{
		ID:     "p-2",
		Date:   date(t, "2023-04-10"),
		Amount: amount("35000"),
		Method: models.MethodUPI,
	}

	updated, err := RecordPayment(original, payment, date(t, "2023-04-10"))
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}

	if len(updated.Payments) != len(original.Payments)+1 {
		t.Fatalf("updated has %d payments, want %d", len(updated.Payments), len(original.Payments)+1)
	}
	if updated.Payments[len(updated.Payments)-1].ID != "p-2" {
		t.Errorf("last payment = %q, want p-2", updated.Payments[len(updated.Payments)-1].ID)
	}
	if updated.Status != models.FeePaid {
		t.Errorf("status = %s, want paid", updated.Status)
	}

	// The input must be untouched, including through slice aliasing.
	if len(original.Payments) != 1 {
		t.Errorf("original has %d payments, want 1", len(original.Payments))
	}
	if original.Status != models.FeeUnpaid {
		t.Errorf("original status changed to %s", original.Status)
	}
	updated.Payments[0].Amount = amount("999")
	if !original.Payments[0].Amount.Equal(amount("10000")) {
		t.Error("mutating the result changed the input's payments")
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	record := testRecord(t)
	today := date(t, "2023-04-10")

	tests := []struct {
		name    string
		payment models.Payment
	}{
		{"zero amount", models.Payment{Amount: amount("0"), Method: models.MethodCash}},
		{"negative amount", models.Payment{Amount: amount("-100"), Method: models.MethodCash}},
		{"unknown method", models.Payment{Amount: amount("100"), Method: "cheque"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RecordPayment(record, tt.payment, today)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("RecordPayment() error = %v, want ValidationError", err)
			}
			if len(record.Payments) != 1 {
				t.Error("failed payment must not change the record")
			}
		})
	}
}

func TestRecordNote(t *testing.T) {
	original := testRecord(t)

	updated, err := RecordNote(original, models.Note{ID: "n-2", Text: "  promised to pay Friday  "})
	if err != nil {
		t.Fatalf("RecordNote() error = %v", err)
	}
	if len(updated.Notes) != 2 {
		t.Fatalf("updated has %d notes, want 2", len(updated.Notes))
	}
	if got := updated.Notes[1].Text; got != "promised to pay Friday" {
		t.Errorf("note text = %q, want trimmed text", got)
	}
	if updated.Status != original.Status {
		t.Errorf("notes must not affect status, got %s", updated.Status)
	}
	if len(original.Notes) != 1 {
		t.Error("input record was mutated")
	}

	_, err = RecordNote(original, models.Note{Text: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("RecordNote(blank) error = %v, want ValidationError", err)
	}
}

func TestFullPaymentScenario(t *testing.T) {
	// feeAmount 45000, one payment of 45000 on 2023-04-10, due 2023-04-15.
	record := models.FeeRecord{
		FeeAmount: amount("45000"),
		DueDate:   date(t, "2023-04-15"),
	}
	payment := models.Payment{ID: "p-1", Date: date(t, "2023-04-10"), Amount: amount("45000"), Method: models.MethodBankTransfer}

	updated, err := RecordPayment(record, payment, date(t, "2023-04-10"))
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if updated.Status != models.FeePaid {
		t.Errorf("status = %s, want paid", updated.Status)
	}

	totals := ComputeTotals(updated.FeeAmount, updated.Payments)
	if !totals.TotalPaid.Equal(amount("45000")) || !totals.RemainingBalance.IsZero() {
		t.Errorf("totals = {%s %s}, want {45000 0}", totals.TotalPaid, totals.RemainingBalance)
	}
}
