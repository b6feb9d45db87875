package services

import (
	"database/sql"
	"log"

	"feetrack-schools/app/database"
)

// SweepOverdueFees re-derives the stored status for records the passage
// of time has made overdue. Paid and partial records never transition
// here; only unpaid records past their due date do.
func SweepOverdueFees(db *sql.DB) error {
	updated, err := database.MarkOverdue(db)
	if err != nil {
		return err
	}
	if updated > 0 {
		log.Printf("Overdue sweep: %d fee record(s) marked overdue", updated)
	}
	return nil
}
