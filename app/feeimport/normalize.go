// Package feeimport turns spreadsheet rows into fee record drafts:
// date-cell parsing (spreadsheet serials and MM/DD/YYYY strings), full-name
// splitting, and the derived payment schedule. Normalization is pure; the
// workbook reading lives in excel.go.
package feeimport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"feetrack-schools/app/models"
)

// Spreadsheets count days from 1899-12-30; the off-by-two anchor absorbs
// the 1900 leap-year convention that Excel inherited from Lotus 1-2-3.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const textDateLayout = "01/02/2006"

// Row is one data row of the import sheet, cells still raw strings.
// Index is the 1-based row number in the sheet, used in error messages.
type Row struct {
	Index           int
	AdmissionNumber string
	FullName        string
	FeeAmount       string
	AdmissionDate   string
	AcademicYear    string
	Term            string
}

// Draft is a normalized row, ready to be persisted as a fee record once
// the student has been resolved or created.
type Draft struct {
	AdmissionNumber string
	FirstName       string
	LastName        string
	FeeAmount       decimal.Decimal
	AdmissionDate   models.Date
	NextPaymentDate models.Date
	DueDate         models.Date
	AcademicYear    string
	Term            string
}

// RowError reports which row of the sheet failed and why. The batch caller
// aborts the whole import on the first RowError.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

func rowErrorf(row int, format string, args ...interface{}) error {
	return &RowError{Row: row, Reason: fmt.Sprintf(format, args...)}
}

// NormalizeRow validates and converts one raw row into a Draft.
//
// The payment schedule follows the admission date: the first payment falls
// due one month after admission and the record's due date 15 days after
// that.
func NormalizeRow(row Row) (Draft, error) {
	admission := strings.TrimSpace(row.AdmissionNumber)
	if admission == "" {
		return Draft{}, rowErrorf(row.Index, "missing admission number")
	}

	first, last := SplitFullName(row.FullName)
	if first == "" {
		return Draft{}, rowErrorf(row.Index, "missing student name")
	}

	amountCell := strings.TrimSpace(row.FeeAmount)
	if amountCell == "" {
		return Draft{}, rowErrorf(row.Index, "missing fee amount")
	}
	amount, err := decimal.NewFromString(amountCell)
	if err != nil {
		return Draft{}, rowErrorf(row.Index, "invalid fee amount %q", amountCell)
	}
	if amount.IsNegative() {
		return Draft{}, rowErrorf(row.Index, "fee amount %q must not be negative", amountCell)
	}

	admissionDate, err := ParseCellDate(row.AdmissionDate)
	if err != nil {
		return Draft{}, rowErrorf(row.Index, "invalid admission date %q", strings.TrimSpace(row.AdmissionDate))
	}

	nextPayment := models.NewDate(admissionDate.AddDate(0, 1, 0))
	dueDate := models.NewDate(nextPayment.AddDate(0, 0, 15))

	return Draft{
		AdmissionNumber: admission,
		FirstName:       first,
		LastName:        last,
		FeeAmount:       amount,
		AdmissionDate:   admissionDate,
		NextPaymentDate: nextPayment,
		DueDate:         dueDate,
		AcademicYear:    strings.TrimSpace(row.AcademicYear),
		Term:            strings.TrimSpace(row.Term),
	}, nil
}

// NormalizeRows converts the whole batch, stopping at the first bad row.
// Partial results are discarded so a failed import applies nothing.
func NormalizeRows(rows []Row) ([]Draft, error) {
	drafts := make([]Draft, 0, len(rows))
	for _, row := range rows {
		draft, err := NormalizeRow(row)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// ParseCellDate interprets a date cell. Numeric cells are spreadsheet
// serial dates anchored at the 1899-12-30 epoch; anything else must be an
// MM/DD/YYYY string.
func ParseCellDate(cell string) (models.Date, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return models.Date{}, fmt.Errorf("empty date cell")
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if serial <= 0 {
			return models.Date{}, fmt.Errorf("serial date %v out of range", serial)
		}
		return models.NewDate(serialEpoch.AddDate(0, 0, int(serial))), nil
	}

	t, err := time.Parse(textDateLayout, cell)
	if err != nil {
		return models.Date{}, err
	}
	return models.NewDate(t), nil
}

// SplitFullName splits on whitespace: first token is the first name, the
// rest joined by single spaces becomes the last name.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
