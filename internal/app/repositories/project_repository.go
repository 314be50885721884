package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
)

// ProjectRepository handles database operations for student projects
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create appends a project record
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO projects (student_id, supervisor_id, title, description, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, project.StudentID, project.SupervisorID, project.Title, project.Description,
		project.StartDate, project.EndDate, project.Status).Scan(&project.ID)
	if err != nil {
		return fmt.Errorf("error creating project: %w", err)
	}
	return nil
}

// ListByStudent retrieves all projects for a student, newest first
func (r *ProjectRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, supervisor_id, title, description, start_date, end_date, status
		FROM projects
		WHERE student_id = $1
		ORDER BY start_date DESC, id DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.StudentID, &p.SupervisorID, &p.Title, &p.Description,
			&p.StartDate, &p.EndDate, &p.Status); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
