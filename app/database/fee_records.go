package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"feetrack-schools/app/feeimport"
	"feetrack-schools/app/feeledger"
	"feetrack-schools/app/models"
)

// FeeRecordFilters narrows and pages the fee record listing. Status "all"
// or empty means no status filter; Search matches student names and
// admission numbers case-insensitively.
type FeeRecordFilters struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// FeeRecordPage is one page of fully loaded fee records plus the counts
// the pagination envelope needs. Page clamping follows the same policy as
// feeledger.Paginate so remote and local pagination agree.
type FeeRecordPage struct {
	Records     []models.FeeRecord
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
}

const feeRecordColumns = `f.id, f.fee_amount, f.status, f.next_payment_date, f.due_date,
		f.academic_year, f.term, f.created_at, f.updated_at,
		s.id, s.admission_number, s.first_name, s.last_name`

// GetFeeRecordsPage lists fee records newest first with their payments and
// notes attached.
func GetFeeRecordsPage(db *sql.DB, filters FeeRecordFilters) (*FeeRecordPage, error) {
	where := "s.is_active = true AND f.deleted_at IS NULL"
	var args []interface{}
	argIndex := 1

	if filters.Status != "" && filters.Status != models.FeeStatusAll {
		where += fmt.Sprintf(" AND f.status = $%d", argIndex)
		args = append(args, filters.Status)
		argIndex++
	}

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		where += fmt.Sprintf(` AND (LOWER(s.first_name) LIKE $%d
			OR LOWER(s.last_name) LIKE $%d
			OR LOWER(s.first_name || ' ' || s.last_name) LIKE $%d
			OR LOWER(s.admission_number) LIKE $%d)`, argIndex, argIndex+1, argIndex+2, argIndex+3)
		args = append(args, pattern, pattern, pattern, pattern)
		argIndex += 4
	}

	countQuery := `SELECT COUNT(*) FROM fee_records f JOIN students s ON f.student_id = s.id WHERE ` + where
	var totalItems int
	if err := db.QueryRow(countQuery, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	perPage := filters.Limit
	if perPage < 1 {
		perPage = 10
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	query := `SELECT ` + feeRecordColumns + `
		FROM fee_records f
		JOIN students s ON f.student_id = s.id
		WHERE ` + where +
		fmt.Sprintf(" ORDER BY f.created_at DESC, f.id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.FeeRecord, 0, perPage)
	for rows.Next() {
		rec, err := scanFeeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachPaymentsAndNotes(db, records); err != nil {
		return nil, err
	}

	return &FeeRecordPage{
		Records:     records,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     perPage,
	}, nil
}

// GetFeeRecordByID loads one fee record with payments and notes.
// Returns sql.ErrNoRows when the record does not exist.
func GetFeeRecordByID(db *sql.DB, id string) (*models.FeeRecord, error) {
	query := `SELECT ` + feeRecordColumns + `
		FROM fee_records f
		JOIN students s ON f.student_id = s.id
		WHERE f.id = $1 AND f.deleted_at IS NULL`

	row := db.QueryRow(query, id)
	rec, err := scanFeeRecord(row)
	if err != nil {
		return nil, err
	}

	records := []models.FeeRecord{rec}
	if err := attachPaymentsAndNotes(db, records); err != nil {
		return nil, err
	}
	return &records[0], nil
}

// InsertFeeRecord creates one fee record for an existing student. The
// stored status always comes from the derivation, never from the caller.
func InsertFeeRecord(db *sql.DB, rec *models.FeeRecord) error {
	rec.ID = uuid.NewString()
	rec.Status = feeledger.DeriveStatus(rec.FeeAmount, rec.Payments, rec.DueDate, models.Today())

	query := `INSERT INTO fee_records (id, student_id, fee_amount, status, next_payment_date, due_date, academic_year, term)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return db.QueryRow(query, rec.ID, rec.Student.ID, rec.FeeAmount, rec.Status,
		rec.NextPaymentDate, rec.DueDate, rec.AcademicYear, rec.Term).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// AppendPayment persists one payment and the freshly derived status in a
// single transaction, so a failure applies neither.
func AppendPayment(db *sql.DB, recordID string, payment models.Payment, status models.FeeStatus) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO payments (id, fee_record_id, paid_on, amount, method, reference, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		payment.ID, recordID, payment.Date, payment.Amount, payment.Method, payment.Reference, payment.Notes)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(`UPDATE fee_records SET status = $1, updated_at = NOW() WHERE id = $2`, status, recordID); err != nil {
		return err
	}

	return tx.Commit()
}

// AppendNote persists one note. Notes never change the record status.
func AppendNote(db *sql.DB, recordID string, note models.Note) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var authorID interface{}
	if note.AuthorID != "" {
		authorID = note.AuthorID
	}
	_, err = tx.Exec(`INSERT INTO notes (id, fee_record_id, noted_on, text, author_id, author_name)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID, recordID, note.Date, note.Text, authorID, note.AuthorName)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(`UPDATE fee_records SET updated_at = NOW() WHERE id = $1`, recordID); err != nil {
		return err
	}

	return tx.Commit()
}

// ImportFeeRecords creates students and fee records for a normalized
// batch in one transaction. Any failure rolls back the whole batch.
// Students are matched by admission number and created when missing;
// existing students keep their stored names.
func ImportFeeRecords(db *sql.DB, drafts []feeimport.Draft) ([]models.FeeRecord, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	today := models.Today()
	records := make([]models.FeeRecord, 0, len(drafts))
	for _, draft := range drafts {
		var student models.StudentRef
		err := tx.QueryRow(`INSERT INTO students (id, admission_number, first_name, last_name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (admission_number) DO UPDATE SET updated_at = NOW()
			RETURNING id, admission_number, first_name, last_name`,
			uuid.NewString(), draft.AdmissionNumber, draft.FirstName, draft.LastName).
			Scan(&student.ID, &student.AdmissionNumber, &student.FirstName, &student.LastName)
		if err != nil {
			return nil, err
		}

		rec := models.FeeRecord{
			ID:              uuid.NewString(),
			Student:         student,
			FeeAmount:       draft.FeeAmount,
			NextPaymentDate: draft.NextPaymentDate,
			DueDate:         draft.DueDate,
			Payments:        []models.Payment{},
			Notes:           []models.Note{},
			AcademicYear:    draft.AcademicYear,
			Term:            draft.Term,
		}
		rec.Status = feeledger.DeriveStatus(rec.FeeAmount, rec.Payments, rec.DueDate, today)

		err = tx.QueryRow(`INSERT INTO fee_records (id, student_id, fee_amount, status, next_payment_date, due_date, academic_year, term)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at`,
			rec.ID, student.ID, rec.FeeAmount, rec.Status, rec.NextPaymentDate, rec.DueDate, rec.AcademicYear, rec.Term).
			Scan(&rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetFeeStats aggregates the ledger for the reporting endpoint.
func GetFeeStats(db *sql.DB) (*models.FeeStats, error) {
	stats := &models.FeeStats{}

	err := db.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'unpaid'),
			COUNT(*) FILTER (WHERE status = 'partial'),
			COUNT(*) FILTER (WHERE status = 'overdue'),
			COALESCE(SUM(fee_amount), 0),
			COUNT(DISTINCT student_id)
		FROM fee_records
		WHERE deleted_at IS NULL`).
		Scan(&stats.TotalRecords, &stats.PaidRecords, &stats.UnpaidRecords,
			&stats.PartialRecords, &stats.OverdueRecords, &stats.TotalBilled, &stats.StudentsWithFees)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN fee_records f ON p.fee_record_id = f.id
		WHERE f.deleted_at IS NULL`).
		Scan(&stats.TotalCollected)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// MarkOverdue flips unpaid records past their due date to overdue. This
// mirrors DeriveStatus for the only transition that happens without a
// write: time passing over the due date.
func MarkOverdue(db *sql.DB) (int64, error) {
	result, err := db.Exec(`UPDATE fee_records
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND due_date < CURRENT_DATE AND deleted_at IS NULL`,
		models.FeeOverdue, models.FeeUnpaid)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFeeRecord(row rowScanner) (models.FeeRecord, error) {
	var rec models.FeeRecord
	err := row.Scan(
		&rec.ID, &rec.FeeAmount, &rec.Status, &rec.NextPaymentDate, &rec.DueDate,
		&rec.AcademicYear, &rec.Term, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.Student.ID, &rec.Student.AdmissionNumber, &rec.Student.FirstName, &rec.Student.LastName,
	)
	return rec, err
}

// attachPaymentsAndNotes loads the child rows for a page of records with
// two queries instead of two per record.
func attachPaymentsAndNotes(db *sql.DB, records []models.FeeRecord) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, len(records))
	index := make(map[string]int, len(records))
	for i := range records {
		ids[i] = records[i].ID
		index[records[i].ID] = i
		records[i].Payments = []models.Payment{}
		records[i].Notes = []models.Note{}
	}

	rows, err := db.Query(`SELECT fee_record_id, id, paid_on, amount, method, reference, notes, created_at
		FROM payments WHERE fee_record_id = ANY($1) ORDER BY created_at, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var recordID string
		var p models.Payment
		if err := rows.Scan(&recordID, &p.ID, &p.Date, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.CreatedAt); err != nil {
			return err
		}
		i := index[recordID]
		records[i].Payments = append(records[i].Payments, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	noteRows, err := db.Query(`SELECT fee_record_id, id, noted_on, text, COALESCE(author_id::text, ''), author_name, created_at
		FROM notes WHERE fee_record_id = ANY($1) ORDER BY created_at, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer noteRows.Close()
	for noteRows.Next() {
		var recordID string
		var n models.Note
		if err := noteRows.Scan(&recordID, &n.ID, &n.Date, &n.Text, &n.AuthorID, &n.AuthorName, &n.CreatedAt); err != nil {
			return err
		}
		i := index[recordID]
		records[i].Notes = append(records[i].Notes, n)
	}
	return noteRows.Err()
}
