package models

import (
	"database/sql"
)

// User represents a teacher account row.
type User struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	Name         string         `db:"name"`
	GoogleID     sql.NullString `db:"google_id"`
	PasswordHash sql.NullString `db:"password_hash"`
	Designation  sql.NullString `db:"designation"`
	Department   sql.NullString `db:"department"`
	Role         string         `db:"role"`
	CreatedAt    int64          `db:"created_at"`
	UpdatedAt    int64          `db:"updated_at"`
}
