package main

import (
	"database/sql"
	"log"
	"os"

	"feetrack-schools/app/config"
	"feetrack-schools/app/database"
)

func main() {
	log.Println("Starting migration run...")

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Extra SQL files can be passed for one-off fixes.
	for _, path := range os.Args[1:] {
		executeSQLFile(db, path)
	}

	log.Println("Migration run completed successfully!")
}

func executeSQLFile(db *sql.DB, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Skipping %s: %v", path, err)
		return
	}

	log.Printf("Executing %s...", path)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", path, err)
	} else {
		log.Printf("Successfully executed %s", path)
	}
}
