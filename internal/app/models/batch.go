package models

// Batch represents an admission batch, identified by a code like
// "CSE2024B": department letters, four-digit year, section letter.
type Batch struct {
	ID         int64  `json:"id" db:"id"`
	Code       string `json:"code" db:"code"`
	Department string `json:"department" db:"department"`
	Year       int    `json:"year" db:"year"`
	Section    string `json:"section" db:"section"`
}
