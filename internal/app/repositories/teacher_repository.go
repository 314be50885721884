package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
	"github.com/oguzk/acadrecord/internal/pkg/dberrors"
)

// TeacherRepository handles database operations for teacher accounts
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create creates a new teacher account
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (public_id, email, password_hash, full_name, department)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		teacher.PublicID, teacher.Email, teacher.PasswordHash, teacher.FullName, teacher.Department,
	).Scan(&teacher.ID, &teacher.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetByEmail retrieves a teacher by email
func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	return r.getOne(ctx, "email = $1", email)
}

// GetByPublicID retrieves a teacher by the opaque identifier carried
// in the session cookie.
func (r *TeacherRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Teacher, error) {
	return r.getOne(ctx, "public_id = $1", publicID)
}

// GetByID retrieves a teacher by primary key
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *TeacherRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Teacher, error) {
	query := `
		SELECT id, public_id, email, password_hash, full_name, department, created_at
		FROM teachers
		WHERE ` + where

	var teacher models.Teacher
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&teacher.ID,
		&teacher.PublicID,
		&teacher.Email,
		&teacher.PasswordHash,
		&teacher.FullName,
		&teacher.Department,
		&teacher.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return &teacher, nil
}
