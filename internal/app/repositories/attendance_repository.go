package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
)

// AttendanceRepository handles database operations for attendance
// records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert writes the attendance percentage for the (student, course,
// month) key, overwriting an existing record for the same key.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO attendance_records (student_id, course_id, month, percentage)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, course_id, month)
		DO UPDATE SET percentage = EXCLUDED.percentage
		RETURNING id
	`, record.StudentID, record.CourseID, record.Month, record.Percentage).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("error upserting attendance record: %w", err)
	}
	return nil
}

// ListByStudent retrieves all attendance records for a student,
// newest month first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, course_id, month, percentage
		FROM attendance_records
		WHERE student_id = $1
		ORDER BY month DESC, course_id
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.CourseID, &rec.Month, &rec.Percentage); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
