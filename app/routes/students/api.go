package students

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"feetrack-schools/app/database"
	"feetrack-schools/app/models"
)

var validate = validator.New()

// GetStudentsAPI lists active students with search and limit/offset
// paging, for the payment entry screens.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	search := c.Query("search")
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	students, total, err := database.SearchStudents(db, search, limit, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"students":    students,
		"count":       len(students),
		"total_count": total,
		"has_more":    offset+len(students) < total,
		"next_offset": offset + len(students),
	})
}

// GetStudentByIDAPI returns one student.
func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

type createStudentRequest struct {
	AdmissionNumber string `json:"admissionNumber" validate:"required"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName"`
}

// CreateStudentAPI registers a student manually.
func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req createStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Admission number and first name are required")
	}

	student := models.Student{
		AdmissionNumber: req.AdmissionNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	}
	if err := database.CreateStudent(db, &student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    student,
		"message": "Student created successfully",
	})
}
