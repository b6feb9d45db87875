package feerecords

import (
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"feetrack-schools/app/database"
	"feetrack-schools/app/feeledger"
	"feetrack-schools/app/models"
)

var validate = validator.New()

// paginationResponse matches the envelope the mobile client renders
// pagers from.
type paginationResponse struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// GetFeeRecordsAPI lists fee records filtered by status and search text,
// paginated.
func GetFeeRecordsAPI(c *fiber.Ctx, db *sql.DB) error {
	status := c.Query("status", models.FeeStatusAll)
	if status != models.FeeStatusAll && !models.FeeStatus(status).IsValid() {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown status filter")
	}

	filters := database.FeeRecordFilters{
		Status: status,
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	page, err := database.GetFeeRecordsPage(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee records")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    page.Records,
		"pagination": paginationResponse{
			CurrentPage:  page.CurrentPage,
			TotalPages:   page.TotalPages,
			TotalItems:   page.TotalItems,
			ItemsPerPage: page.PerPage,
		},
	})
}

// GetFeeRecordByIDAPI returns one fee record with its computed totals.
func GetFeeRecordByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	record, err := database.GetFeeRecordByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee record")
	}

	totals := feeledger.ComputeTotals(record.FeeAmount, record.Payments)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    record,
		"totals": fiber.Map{
			"totalPaid":        totals.TotalPaid,
			"remainingBalance": totals.RemainingBalance,
			"displayBalance":   totals.DisplayBalance(),
		},
	})
}

type createFeeRecordRequest struct {
	StudentID       string          `json:"studentId" validate:"required,uuid"`
	FeeAmount       decimal.Decimal `json:"feeAmount" validate:"required"`
	DueDate         string          `json:"dueDate" validate:"required"`
	NextPaymentDate string          `json:"nextPaymentDate" validate:"required"`
	AcademicYear    string          `json:"academicYear"`
	Term            string          `json:"term"`
}

// CreateFeeRecordAPI creates one fee record for an existing student.
func CreateFeeRecordAPI(c *fiber.Ctx, db *sql.DB) error {
	var req createFeeRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}
	if req.FeeAmount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Fee amount must not be negative")
	}

	dueDate, err := models.ParseDate(req.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid due date")
	}
	nextPaymentDate, err := models.ParseDate(req.NextPaymentDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid next payment date")
	}

	student, err := database.GetStudentByID(db, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up student")
	}

	record := models.FeeRecord{
		Student: models.StudentRef{
			ID:              student.ID,
			AdmissionNumber: student.AdmissionNumber,
			FirstName:       student.FirstName,
			LastName:        student.LastName,
		},
		FeeAmount:       req.FeeAmount,
		NextPaymentDate: nextPaymentDate,
		DueDate:         dueDate,
		Payments:        []models.Payment{},
		Notes:           []models.Note{},
		AcademicYear:    req.AcademicYear,
		Term:            req.Term,
	}
	if err := database.InsertFeeRecord(db, &record); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    record,
		"message": "Fee record created successfully",
	})
}

type addPaymentRequest struct {
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// AddPaymentAPI records a payment against a fee record. The ledger rules
// decide the new status; the payment and status land in one transaction.
func AddPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req addPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Amount and method are required")
	}

	paidOn := models.Today()
	if req.Date != "" {
		parsed, err := models.ParseDate(req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payment date")
		}
		paidOn = parsed
	}

	record, err := database.GetFeeRecordByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee record")
	}

	payment := models.Payment{
		ID:        uuid.NewString(),
		Date:      paidOn,
		Amount:    req.Amount,
		Method:    models.PaymentMethod(req.Method),
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	updated, err := feeledger.RecordPayment(*record, payment, models.Today())
	if err != nil {
		var verr *feeledger.ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(fiber.StatusBadRequest, verr.Reason)
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	if err := database.AppendPayment(db, record.ID, payment, updated.Status); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save payment")
	}

	saved, err := database.GetFeeRecordByID(db, record.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload fee record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    saved,
		"message": "Payment recorded successfully",
	})
}

type addNoteRequest struct {
	Text string `json:"text" validate:"required"`
	Date string `json:"date"`
}

// AddNoteAPI attaches a note to a fee record. The author comes from the
// authenticated session.
func AddNoteAPI(c *fiber.Ctx, db *sql.DB) error {
	var req addNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	notedOn := models.Today()
	if req.Date != "" {
		parsed, err := models.ParseDate(req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid note date")
		}
		notedOn = parsed
	}

	record, err := database.GetFeeRecordByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee record")
	}

	authorID, _ := c.Locals("user_id").(string)
	authorName, _ := c.Locals("user_name").(string)
	note := models.Note{
		ID:         uuid.NewString(),
		Date:       notedOn,
		Text:       req.Text,
		AuthorID:   authorID,
		AuthorName: authorName,
	}

	updated, err := feeledger.RecordNote(*record, note)
	if err != nil {
		var verr *feeledger.ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(fiber.StatusBadRequest, verr.Reason)
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record note")
	}
	// engine trims the text; persist what it accepted
	note = updated.Notes[len(updated.Notes)-1]

	if err := database.AppendNote(db, record.ID, note); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save note")
	}

	saved, err := database.GetFeeRecordByID(db, record.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reload fee record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    saved,
		"message": "Note added successfully",
	})
}

// GetFeeStatsAPI returns ledger-wide statistics for the reports screen.
func GetFeeStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetFeeStats(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee statistics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
