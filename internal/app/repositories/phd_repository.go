package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
)

// PhDRepository handles database operations for PhD supervisions
type PhDRepository struct {
	db *pgxpool.Pool
}

// NewPhDRepository creates a new PhD supervision repository
func NewPhDRepository(db *pgxpool.Pool) *PhDRepository {
	return &PhDRepository{db: db}
}

// Create appends a PhD supervision record
func (r *PhDRepository) Create(ctx context.Context, supervision *models.PhDSupervision) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO phd_supervisions (student_id, supervisor_id, title, research_area, start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, supervision.StudentID, supervision.SupervisorID, supervision.Title,
		supervision.ResearchArea, supervision.StartDate, supervision.Status).Scan(&supervision.ID)
	if err != nil {
		return fmt.Errorf("error creating PhD supervision: %w", err)
	}
	return nil
}

// ListByStudent retrieves all PhD supervision records for a student
func (r *PhDRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.PhDSupervision, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, supervisor_id, title, research_area, start_date, status
		FROM phd_supervisions
		WHERE student_id = $1
		ORDER BY start_date DESC, id DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supervisions []*models.PhDSupervision
	for rows.Next() {
		var s models.PhDSupervision
		if err := rows.Scan(&s.ID, &s.StudentID, &s.SupervisorID, &s.Title,
			&s.ResearchArea, &s.StartDate, &s.Status); err != nil {
			return nil, err
		}
		supervisions = append(supervisions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return supervisions, nil
}
