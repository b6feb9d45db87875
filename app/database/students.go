package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"feetrack-schools/app/models"
)

// SearchStudents lists active students matching the search term by name
// or admission number, alphabetically, with limit/offset paging. Returns
// the page and the total match count.
func SearchStudents(db *sql.DB, search string, limit, offset int) ([]models.Student, int, error) {
	where := "is_active = true AND deleted_at IS NULL"
	var args []interface{}
	argIndex := 1

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		where += fmt.Sprintf(` AND (LOWER(first_name) LIKE $%d
			OR LOWER(last_name) LIKE $%d
			OR LOWER(first_name || ' ' || last_name) LIKE $%d
			OR LOWER(admission_number) LIKE $%d)`, argIndex, argIndex+1, argIndex+2, argIndex+3)
		args = append(args, pattern, pattern, pattern, pattern)
		argIndex += 4
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit < 1 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT id, admission_number, first_name, last_name, is_active, created_at, updated_at
		FROM students WHERE ` + where +
		fmt.Sprintf(" ORDER BY first_name, last_name LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := make([]models.Student, 0, limit)
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.AdmissionNumber, &s.FirstName, &s.LastName, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// GetStudentByID loads one active student.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	var s models.Student
	err := db.QueryRow(`SELECT id, admission_number, first_name, last_name, is_active, created_at, updated_at
		FROM students WHERE id = $1 AND deleted_at IS NULL`, id).
		Scan(&s.ID, &s.AdmissionNumber, &s.FirstName, &s.LastName, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStudent registers a student manually (outside of batch import).
func CreateStudent(db *sql.DB, s *models.Student) error {
	s.ID = uuid.NewString()
	return db.QueryRow(`INSERT INTO students (id, admission_number, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING is_active, created_at, updated_at`,
		s.ID, s.AdmissionNumber, s.FirstName, s.LastName).
		Scan(&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}
