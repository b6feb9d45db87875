package database

import (
	"database/sql"
	"log"
)

// RunMigrations applies the schema. Statements are idempotent so the
// runner can execute on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'bursar',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY,
			admission_number TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS fee_records (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES students(id),
			fee_amount NUMERIC(12,2) NOT NULL CHECK (fee_amount >= 0),
			status VARCHAR(20) NOT NULL DEFAULT 'unpaid',
			next_payment_date DATE NOT NULL,
			due_date DATE NOT NULL,
			academic_year TEXT NOT NULL DEFAULT '',
			term TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			fee_record_id UUID NOT NULL REFERENCES fee_records(id),
			paid_on DATE NOT NULL,
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			method VARCHAR(20) NOT NULL,
			reference TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id UUID PRIMARY KEY,
			fee_record_id UUID NOT NULL REFERENCES fee_records(id),
			noted_on DATE NOT NULL,
			text TEXT NOT NULL,
			author_id UUID,
			author_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_records_student ON fee_records(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_records_status ON fee_records(status) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_fee_records_due_date ON fee_records(due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_fee_record ON payments(fee_record_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_fee_record ON notes(fee_record_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
