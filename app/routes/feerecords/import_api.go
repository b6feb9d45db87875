package feerecords

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"feetrack-schools/app/database"
	"feetrack-schools/app/feeimport"
	"feetrack-schools/app/feeledger"
)

// ImportFeeRecordsAPI creates fee records in bulk from an uploaded .xlsx
// sheet. The whole batch is rejected on the first bad row, so a failed
// upload never applies a partial import. The response pages over the
// freshly imported batch with the same envelope as the listing endpoint.
func ImportFeeRecordsAPI(c *fiber.Ctx, db *sql.DB) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing upload file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot open upload file")
	}
	defer file.Close()

	rows, err := feeimport.ReadWorkbook(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot read workbook: "+err.Error())
	}
	if len(rows) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Workbook has no data rows")
	}

	drafts, err := feeimport.NormalizeRows(rows)
	if err != nil {
		var rowErr *feeimport.RowError
		if errors.As(err, &rowErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   rowErr.Error(),
				"row":     rowErr.Row,
			})
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	records, err := database.ImportFeeRecords(db, drafts)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to import fee records")
	}

	page := feeledger.Paginate(records, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"feeRecords": page.Items,
		},
		"pagination": paginationResponse{
			CurrentPage:  page.CurrentPage,
			TotalPages:   page.TotalPages,
			TotalItems:   page.TotalItems,
			ItemsPerPage: page.ItemsPerPage,
		},
		"message": "Fee records imported successfully",
	})
}
