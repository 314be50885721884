package models

import "time"

// Student defines the student model based on the 'students' table.
// TeacherID is the owning teacher; once set it is never reassigned by
// an upload, only claimed when null.
type Student struct {
	ID              int64     `json:"id" db:"id"`
	StudentID       string    `json:"studentId" db:"student_id"` // Institutional identifier, unique
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Phone           *string   `json:"phone,omitempty" db:"phone"`
	DOB             time.Time `json:"dob" db:"dob"`
	Department      *string   `json:"department,omitempty" db:"department"`
	CurrentSemester int       `json:"currentSemester" db:"current_semester"` // 1..8
	BatchID         *int64    `json:"batchId,omitempty" db:"batch_id"`
	TeacherID       *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	ParentName      *string   `json:"parentName,omitempty" db:"parent_name"`
	ParentPhone     *string   `json:"parentPhone,omitempty" db:"parent_phone"`
	Address         *string   `json:"address,omitempty" db:"address"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Batch *Batch `json:"batch,omitempty"`
}
