package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
)

// BacklogRepository handles database operations for backlog records
type BacklogRepository struct {
	db *pgxpool.Pool
}

// NewBacklogRepository creates a new backlog repository
func NewBacklogRepository(db *pgxpool.Pool) *BacklogRepository {
	return &BacklogRepository{db: db}
}

// Upsert writes the attempt count and cleared flag for the (student,
// course) key, overwriting an existing record for the same key.
func (r *BacklogRepository) Upsert(ctx context.Context, backlog *models.Backlog) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO backlogs (student_id, course_id, attempts, cleared)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, course_id)
		DO UPDATE SET attempts = EXCLUDED.attempts, cleared = EXCLUDED.cleared
		RETURNING id
	`, backlog.StudentID, backlog.CourseID, backlog.Attempts, backlog.Cleared).Scan(&backlog.ID)
	if err != nil {
		return fmt.Errorf("error upserting backlog: %w", err)
	}
	return nil
}

// ListByStudent retrieves all backlog records for a student
func (r *BacklogRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Backlog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, course_id, attempts, cleared
		FROM backlogs
		WHERE student_id = $1
		ORDER BY course_id
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var backlogs []*models.Backlog
	for rows.Next() {
		var b models.Backlog
		if err := rows.Scan(&b.ID, &b.StudentID, &b.CourseID, &b.Attempts, &b.Cleared); err != nil {
			return nil, err
		}
		backlogs = append(backlogs, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return backlogs, nil
}
