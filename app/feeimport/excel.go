package feeimport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Expected sheet layout, one row per fee record:
// admission number | student name | fee amount | admission date | academic year | term
const expectedColumns = 6

// ReadWorkbook reads the first sheet of an .xlsx upload into raw Rows.
// The first row is treated as a header and skipped. Entirely empty rows
// are ignored; short rows are padded so normalization reports the missing
// field rather than an index error.
func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	rows := make([]Row, 0, len(cells))
	for i, cols := range cells {
		if i == 0 {
			continue // header
		}
		if isEmptyRow(cols) {
			continue
		}
		for len(cols) < expectedColumns {
			cols = append(cols, "")
		}
		rows = append(rows, Row{
			Index:           i + 1,
			AdmissionNumber: cols[0],
			FullName:        cols[1],
			FeeAmount:       cols[2],
			AdmissionDate:   cols[3],
			AcademicYear:    cols[4],
			Term:            cols[5],
		})
	}
	return rows, nil
}

func isEmptyRow(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}
