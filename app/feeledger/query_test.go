package feeledger

import (
	"fmt"
	"testing"

	"feetrack-schools/app/models"
)

func sampleRecords() []models.FeeRecord {
	return []models.FeeRecord{
		{ID: "1", Status: models.FeePaid, Student: models.StudentRef{AdmissionNumber: "ADM-001", FirstName: "Aisha", LastName: "Khan"}},
		{ID: "2", Status: models.FeeUnpaid, Student: models.StudentRef{AdmissionNumber: "ADM-002", FirstName: "Brian", LastName: "Okello"}},
		{ID: "3", Status: models.FeeOverdue, Student: models.StudentRef{AdmissionNumber: "ADM-003", FirstName: "Chandra", LastName: "Rao"}},
		{ID: "4", Status: models.FeePartial, Student: models.StudentRef{AdmissionNumber: "ADM-004", FirstName: "Aban", LastName: "Khandelwal"}},
	}
}

func ids(records []models.FeeRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	records := sampleRecords()

	t.Run("all is the identity", func(t *testing.T) {
		got := FilterByStatus(records, models.FeeStatusAll)
		if len(got) != len(records) {
			t.Fatalf("got %d records, want %d", len(got), len(records))
		}
		for i := range got {
			if got[i].ID != records[i].ID {
				t.Errorf("record %d = %s, want %s (order must be preserved)", i, got[i].ID, records[i].ID)
			}
		}
	})

	t.Run("empty filter is the identity", func(t *testing.T) {
		if got := FilterByStatus(records, ""); len(got) != len(records) {
			t.Errorf("got %d records, want %d", len(got), len(records))
		}
	})

	t.Run("single status", func(t *testing.T) {
		got := FilterByStatus(records, "overdue")
		if len(got) != 1 || got[0].ID != "3" {
			t.Errorf("got %v, want [3]", ids(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		few := records[:1]
		if got := FilterByStatus(few, "overdue"); len(got) != 0 {
			t.Errorf("got %v, want empty", ids(got))
		}
	})
}

func TestSearchByText(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank query is identity", "   ", []string{"1", "2", "3", "4"}},
		{"first name case-insensitive", "aisha", []string{"1"}},
		{"last name fragment", "khan", []string{"1", "4"}},
		{"full name across fields", "brian ok", []string{"2"}},
		{"admission number", "adm-003", []string{"3"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(SearchByText(records, tt.query))
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("SearchByText(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	records := make([]models.FeeRecord, 23)
	for i := range records {
		records[i].ID = fmt.Sprintf("r%02d", i)
	}

	t.Run("23 items at 10 per page gives 3 pages", func(t *testing.T) {
		page := Paginate(records, 3, 10)
		if page.TotalPages != 3 || page.TotalItems != 23 {
			t.Fatalf("got %d pages / %d items, want 3 / 23", page.TotalPages, page.TotalItems)
		}
		if len(page.Items) != 3 {
			t.Errorf("page 3 has %d items, want 3", len(page.Items))
		}
		if page.Items[0].ID != "r20" {
			t.Errorf("page 3 starts at %s, want r20", page.Items[0].ID)
		}
	})

	t.Run("first page", func(t *testing.T) {
		page := Paginate(records, 1, 10)
		if len(page.Items) != 10 || page.Items[0].ID != "r00" || page.CurrentPage != 1 {
			t.Errorf("unexpected first page: %+v", page)
		}
	})

	t.Run("page past the end clamps to last page", func(t *testing.T) {
		page := Paginate(records, 99, 10)
		if page.CurrentPage != 3 || len(page.Items) != 3 {
			t.Errorf("got page %d with %d items, want page 3 with 3", page.CurrentPage, len(page.Items))
		}
	})

	t.Run("page below one clamps to first page", func(t *testing.T) {
		page := Paginate(records, 0, 10)
		if page.CurrentPage != 1 || len(page.Items) != 10 {
			t.Errorf("got page %d with %d items, want page 1 with 10", page.CurrentPage, len(page.Items))
		}
	})

	t.Run("empty input still reports one page", func(t *testing.T) {
		page := Paginate(nil, 1, 10)
		if page.TotalPages != 1 || page.TotalItems != 0 || len(page.Items) != 0 {
			t.Errorf("unexpected empty page: %+v", page)
		}
	})

	t.Run("non-positive page size is clamped", func(t *testing.T) {
		page := Paginate(records, 1, 0)
		if page.ItemsPerPage != 1 || len(page.Items) != 1 {
			t.Errorf("got perPage %d with %d items, want 1 with 1", page.ItemsPerPage, len(page.Items))
		}
	})
}
