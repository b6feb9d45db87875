package services

import (
	"database/sql"
	"log"

	"github.com/robfig/cron/v3"
)

// StartScheduler starts the background jobs. The overdue sweep runs once
// shortly after midnight, when due dates roll over.
func StartScheduler(db *sql.DB) *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	if _, err := c.AddFunc("5 0 * * *", func() {
		if err := SweepOverdueFees(db); err != nil {
			log.Printf("Overdue sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Failed to register overdue sweep:", err)
	}

	c.Start()
	log.Println("Scheduler started...")
	return c
}
