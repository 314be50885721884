package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
)

// TestScoreRepository handles database operations for test scores
type TestScoreRepository struct {
	db *pgxpool.Pool
}

// NewTestScoreRepository creates a new test score repository
func NewTestScoreRepository(db *pgxpool.Pool) *TestScoreRepository {
	return &TestScoreRepository{db: db}
}

// Create appends a test score entry. Scores are never updated in
// place; a re-upload adds another row.
func (r *TestScoreRepository) Create(ctx context.Context, score *models.TestScore) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO test_scores (student_id, course_id, test_date, test_type, score, max_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, score.StudentID, score.CourseID, score.TestDate, score.TestType, score.Score, score.MaxScore).Scan(&score.ID)
	if err != nil {
		return fmt.Errorf("error creating test score: %w", err)
	}
	return nil
}

// ListByStudent retrieves all test scores for a student, newest first
func (r *TestScoreRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.TestScore, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, course_id, test_date, test_type, score, max_score
		FROM test_scores
		WHERE student_id = $1
		ORDER BY test_date DESC, id DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*models.TestScore
	for rows.Next() {
		var s models.TestScore
		if err := rows.Scan(&s.ID, &s.StudentID, &s.CourseID, &s.TestDate, &s.TestType, &s.Score, &s.MaxScore); err != nil {
			return nil, err
		}
		scores = append(scores, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
