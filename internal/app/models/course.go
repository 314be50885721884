package models

// Course represents a course referenced by academic records. Courses
// referenced before being defined are created with placeholder
// metadata and tidied up later through the admin tooling.
type Course struct {
	ID         int64  `json:"id" db:"id"`
	Code       string `json:"code" db:"code"`
	Name       string `json:"name" db:"name"`
	Semester   int    `json:"semester" db:"semester"`
	Department string `json:"department" db:"department"`
}
