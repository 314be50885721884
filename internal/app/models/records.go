package models

import "time"

// AttendanceRecord is one student's attendance for a course in a
// calendar month. Month is truncated to the first of the month.
type AttendanceRecord struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	Month      time.Time `json:"month" db:"month"`
	Percentage float64   `json:"percentage" db:"percentage"` // 0..100
}

// TestScore is an appended score entry; identical re-uploads create
// additional rows on purpose.
type TestScore struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	TestDate  time.Time `json:"testDate" db:"test_date"`
	TestType  *string   `json:"testType,omitempty" db:"test_type"`
	Score     float64   `json:"score" db:"score"` // 0..100
	MaxScore  *float64  `json:"maxScore,omitempty" db:"max_score"`
}

// Backlog tracks an uncleared course for a student, one row per
// (student, course).
type Backlog struct {
	ID        int64 `json:"id" db:"id"`
	StudentID int64 `json:"studentId" db:"student_id"`
	CourseID  int64 `json:"courseId" db:"course_id"`
	Attempts  int   `json:"attempts" db:"attempts"` // >= 1
	Cleared   bool  `json:"cleared" db:"cleared"`
}

// FeePayment is an appended fee ledger entry.
type FeePayment struct {
	ID        int64      `json:"id" db:"id"`
	StudentID int64      `json:"studentId" db:"student_id"`
	Amount    *float64   `json:"amount,omitempty" db:"amount"`
	DueDate   time.Time  `json:"dueDate" db:"due_date"`
	PaidDate  *time.Time `json:"paidDate,omitempty" db:"paid_date"`
	Status    string     `json:"status" db:"status"`
	DueMonths int        `json:"dueMonths" db:"due_months"` // >= 1
}

// Project is a student project supervised by the uploading teacher.
type Project struct {
	ID           int64      `json:"id" db:"id"`
	StudentID    int64      `json:"studentId" db:"student_id"`
	SupervisorID int64      `json:"supervisorId" db:"supervisor_id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description,omitempty" db:"description"`
	StartDate    time.Time  `json:"startDate" db:"start_date"`
	EndDate      *time.Time `json:"endDate,omitempty" db:"end_date"`
	Status       *string    `json:"status,omitempty" db:"status"`
}

// PhDSupervision records a doctoral candidacy under the uploading
// teacher.
type PhDSupervision struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	SupervisorID int64     `json:"supervisorId" db:"supervisor_id"`
	Title        string    `json:"title" db:"title"`
	ResearchArea string    `json:"researchArea" db:"research_area"`
	StartDate    time.Time `json:"startDate" db:"start_date"`
	Status       *string   `json:"status,omitempty" db:"status"`
}

// Fellowship is a stipend or grant held by a student.
type Fellowship struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	SupervisorID   int64     `json:"supervisorId" db:"supervisor_id"`
	Type           string    `json:"type" db:"type"`
	Amount         float64   `json:"amount" db:"amount"`
	DurationMonths int       `json:"durationMonths" db:"duration_months"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
}
