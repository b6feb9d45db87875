package feeledger

import (
	"strings"

	"feetrack-schools/app/models"
)

// FilterByStatus keeps the records whose status matches the filter.
// "all" (or an empty filter) is the identity. Input ordering is preserved.
func FilterByStatus(records []models.FeeRecord, filter string) []models.FeeRecord {
	if filter == "" || filter == models.FeeStatusAll {
		return records
	}
	out := make([]models.FeeRecord, 0, len(records))
	for _, r := range records {
		if string(r.Status) == filter {
			out = append(out, r)
		}
	}
	return out
}

// SearchByText keeps the records whose student matches the query by
// case-insensitive substring against first name, last name, full name or
// admission number. A blank query is the identity.
func SearchByText(records []models.FeeRecord, query string) []models.FeeRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}
	out := make([]models.FeeRecord, 0, len(records))
	for _, r := range records {
		s := r.Student
		if strings.Contains(strings.ToLower(s.FirstName), query) ||
			strings.Contains(strings.ToLower(s.LastName), query) ||
			strings.Contains(strings.ToLower(s.FullName()), query) ||
			strings.Contains(strings.ToLower(s.AdmissionNumber), query) {
			out = append(out, r)
		}
	}
	return out
}

// Page is one page of fee records plus the pagination bookkeeping the
// client needs to render pagers. The shape matches the remote API's
// pagination envelope so local and server-side pages look the same.
type Page struct {
	Items        []models.FeeRecord `json:"items"`
	CurrentPage  int                `json:"currentPage"`
	TotalPages   int                `json:"totalPages"`
	TotalItems   int                `json:"totalItems"`
	ItemsPerPage int                `json:"itemsPerPage"`
}

// Paginate slices records into 1-indexed pages of pageSize. TotalPages is
// at least 1 even for an empty input. Out-of-range pages are clamped into
// [1, TotalPages] rather than rejected, so a pager that asks for a page
// past the end gets the last page; pageSize is clamped to at least 1.
func Paginate(records []models.FeeRecord, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	totalItems := len(records)
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page{
		Items:        records[start:end],
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: pageSize,
	}
}
