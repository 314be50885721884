package models

import "time"

// Teacher defines a teacher account based on the 'teachers' table.
// PublicID is the opaque identifier carried in the session cookie.
type Teacher struct {
	ID           int64     `json:"id" db:"id"`
	PublicID     string    `json:"publicId" db:"public_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Department   *string   `json:"department,omitempty" db:"department"` // Nullable
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
