package database

import (
	"database/sql"

	"github.com/google/uuid"

	"feetrack-schools/app/models"
)

// CreateUser registers a staff account. Password must already be hashed.
func CreateUser(db *sql.DB, u *models.User) error {
	u.ID = uuid.NewString()
	return db.QueryRow(`INSERT INTO users (id, email, password, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING is_active, created_at, updated_at`,
		u.ID, u.Email, u.Password, u.FirstName, u.LastName, u.Role).
		Scan(&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// GetUserByEmail loads an active user for login.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var u models.User
	err := db.QueryRow(`SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1) AND is_active = true AND deleted_at IS NULL`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserPassword stores a new bcrypt hash for the user.
func UpdateUserPassword(db *sql.DB, userID, hash string) error {
	result, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hash, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
