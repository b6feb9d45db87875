package feeimport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func validRow() Row {
	return Row{
		Index:           2,
		AdmissionNumber: "ADM-017",
		FullName:        "Aisha Khan Noor",
		FeeAmount:       "45000",
		AdmissionDate:   "01/20/2023",
		AcademicYear:    "2023-2024",
		Term:            "Term 1",
	}
}

func TestParseCellDate(t *testing.T) {
	t.Run("spreadsheet serial", func(t *testing.T) {
		// 44962 days after 1899-12-30 is 2023-02-05.
		d, err := ParseCellDate("44962")
		require.NoError(t, err)
		assert.Equal(t, "2023-02-05", d.String())
	})

	t.Run("textual MM/DD/YYYY", func(t *testing.T) {
		d, err := ParseCellDate("03/15/2023")
		require.NoError(t, err)
		assert.Equal(t, "2023-03-15", d.String())
	})

	t.Run("rejects empty cell", func(t *testing.T) {
		_, err := ParseCellDate("   ")
		assert.Error(t, err)
	})

	t.Run("rejects malformed text", func(t *testing.T) {
		_, err := ParseCellDate("2023/15/03")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive serial", func(t *testing.T) {
		_, err := ParseCellDate("0")
		assert.Error(t, err)
	})
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"Aisha Khan", "Aisha", "Khan"},
		{"Aisha Khan Noor", "Aisha", "Khan Noor"},
		{"  Aisha   Khan  ", "Aisha", "Khan"},
		{"Aisha", "Aisha", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		first, last := SplitFullName(tt.full)
		assert.Equal(t, tt.first, first, "first name of %q", tt.full)
		assert.Equal(t, tt.last, last, "last name of %q", tt.full)
	}
}

func TestNormalizeRow(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		draft, err := NormalizeRow(validRow())
		require.NoError(t, err)

		assert.Equal(t, "ADM-017", draft.AdmissionNumber)
		assert.Equal(t, "Aisha", draft.FirstName)
		assert.Equal(t, "Khan Noor", draft.LastName)
		assert.True(t, draft.FeeAmount.Equal(decimalFromString(t, "45000")))
		assert.Equal(t, "2023-01-20", draft.AdmissionDate.String())
		// Next payment one month after admission, due 15 days after that.
		assert.Equal(t, "2023-02-20", draft.NextPaymentDate.String())
		assert.Equal(t, "2023-03-07", draft.DueDate.String())
		assert.Equal(t, "2023-2024", draft.AcademicYear)
		assert.Equal(t, "Term 1", draft.Term)
	})

	t.Run("serial admission date", func(t *testing.T) {
		row := validRow()
		row.AdmissionDate = "44962"
		draft, err := NormalizeRow(row)
		require.NoError(t, err)
		assert.Equal(t, "2023-02-05", draft.AdmissionDate.String())
		assert.Equal(t, "2023-03-05", draft.NextPaymentDate.String())
		assert.Equal(t, "2023-03-20", draft.DueDate.String())
	})

	errorCases := []struct {
		name   string
		mutate func(*Row)
		reason string
	}{
		{"missing admission number", func(r *Row) { r.AdmissionNumber = " " }, "missing admission number"},
		{"missing name", func(r *Row) { r.FullName = "" }, "missing student name"},
		{"missing amount", func(r *Row) { r.FeeAmount = "" }, "missing fee amount"},
		{"bad amount", func(r *Row) { r.FeeAmount = "forty five" }, "invalid fee amount"},
		{"negative amount", func(r *Row) { r.FeeAmount = "-5" }, "must not be negative"},
		{"bad date", func(r *Row) { r.AdmissionDate = "20/01/2023" }, "invalid admission date"},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			row := validRow()
			tc.mutate(&row)

			_, err := NormalizeRow(row)
			require.Error(t, err)

			rowErr, ok := err.(*RowError)
			require.True(t, ok, "want *RowError, got %T", err)
			assert.Equal(t, 2, rowErr.Row)
			assert.Contains(t, rowErr.Error(), tc.reason)
		})
	}
}

func TestNormalizeRowsAbortsOnFirstError(t *testing.T) {
	good := validRow()
	bad := validRow()
	bad.Index = 3
	bad.AdmissionDate = "not a date"
	trailing := validRow()
	trailing.Index = 4

	drafts, err := NormalizeRows([]Row{good, bad, trailing})
	require.Error(t, err)
	assert.Nil(t, drafts, "a failed batch must not return partial results")

	rowErr, ok := err.(*RowError)
	require.True(t, ok)
	assert.Equal(t, 3, rowErr.Row)
}

func TestNormalizeRowsAllValid(t *testing.T) {
	rows := []Row{validRow(), validRow()}
	rows[1].Index = 3
	rows[1].AdmissionNumber = "ADM-018"

	drafts, err := NormalizeRows(rows)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "ADM-018", drafts[1].AdmissionNumber)
}
