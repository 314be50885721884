package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
)

// FellowshipRepository handles database operations for fellowships
type FellowshipRepository struct {
	db *pgxpool.Pool
}

// NewFellowshipRepository creates a new fellowship repository
func NewFellowshipRepository(db *pgxpool.Pool) *FellowshipRepository {
	return &FellowshipRepository{db: db}
}

// Create appends a fellowship record
func (r *FellowshipRepository) Create(ctx context.Context, fellowship *models.Fellowship) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO fellowships (student_id, supervisor_id, type, amount, duration_months, start_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, fellowship.StudentID, fellowship.SupervisorID, fellowship.Type,
		fellowship.Amount, fellowship.DurationMonths, fellowship.StartDate).Scan(&fellowship.ID)
	if err != nil {
		return fmt.Errorf("error creating fellowship: %w", err)
	}
	return nil
}

// ListByStudent retrieves all fellowships for a student
func (r *FellowshipRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Fellowship, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, supervisor_id, type, amount, duration_months, start_date
		FROM fellowships
		WHERE student_id = $1
		ORDER BY start_date DESC, id DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fellowships []*models.Fellowship
	for rows.Next() {
		var f models.Fellowship
		if err := rows.Scan(&f.ID, &f.StudentID, &f.SupervisorID, &f.Type,
			&f.Amount, &f.DurationMonths, &f.StartDate); err != nil {
			return nil, err
		}
		fellowships = append(fellowships, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fellowships, nil
}
