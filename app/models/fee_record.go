package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeRecord is one fee obligation for one student in one academic term.
// Status is derived from the payment history; the stored value is kept in
// sync on every write and must never diverge from the derivation.
type FeeRecord struct {
	ID              string          `json:"id"`
	Student         StudentRef      `json:"student"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	Status          FeeStatus       `json:"status"`
	NextPaymentDate Date            `json:"nextPaymentDate"`
	DueDate         Date            `json:"dueDate"`
	Payments        []Payment       `json:"payments"`
	Notes           []Note          `json:"notes"`
	AcademicYear    string          `json:"academicYear"`
	Term            string          `json:"term"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`
}

// FeeStats summarises the fee ledger for the reporting endpoint.
type FeeStats struct {
	TotalRecords     int             `json:"totalRecords"`
	PaidRecords      int             `json:"paidRecords"`
	UnpaidRecords    int             `json:"unpaidRecords"`
	PartialRecords   int             `json:"partialRecords"`
	OverdueRecords   int             `json:"overdueRecords"`
	TotalBilled      decimal.Decimal `json:"totalBilled"`
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	StudentsWithFees int             `json:"studentsWithFees"`
}
