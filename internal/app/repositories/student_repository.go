package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
	"github.com/oguzk/acadrecord/internal/pkg/dberrors"
	"github.com/oguzk/acadrecord/internal/pkg/logger"
)

var ErrStudentIDExists = errors.New("student ID already in use")

var studentColumns = []string{
	"id", "student_id", "name", "email", "phone", "dob", "department",
	"current_semester", "batch_id", "teacher_id", "parent_name",
	"parent_phone", "address", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("student_id", "name", "email", "phone", "dob", "department",
			"current_semester", "batch_id", "teacher_id", "parent_name",
			"parent_phone", "address").
		Values(student.StudentID, student.Name, student.Email, student.Phone,
			student.DOB, student.Department, student.CurrentSemester,
			student.BatchID, student.TeacherID, student.ParentName,
			student.ParentPhone, student.Address).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			logger.Warn().Str("studentID", student.StudentID).Msg("Attempted to create student with duplicate student ID")
			return ErrStudentIDExists
		}
		logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of an existing student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("name", student.Name).
		Set("email", student.Email).
		Set("phone", student.Phone).
		Set("dob", student.DOB).
		Set("department", student.Department).
		Set("current_semester", student.CurrentSemester).
		Set("batch_id", student.BatchID).
		Set("teacher_id", student.TeacherID).
		Set("parent_name", student.ParentName).
		Set("parent_phone", student.ParentPhone).
		Set("address", student.Address).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// GetByStudentID retrieves a student by the institutional identifier
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := r.scanOne(ctx, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// ListByTeacher retrieves one page of a teacher's students, ordered by
// student identifier.
func (r *StudentRepository) ListByTeacher(ctx context.Context, teacherID int64, offset uint64, limit int) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		OrderBy("student_id").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// CountByTeacher counts a teacher's students
func (r *StudentRepository) CountByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE teacher_id = $1`, teacherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

func (r *StudentRepository) scanOne(ctx context.Context, sql string, args []interface{}) (*models.Student, error) {
	var s models.Student
	row := r.db.QueryRow(ctx, sql, args...)
	if err := scanStudentRow(row, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudentRow(row rowScanner, s *models.Student) error {
	return row.Scan(
		&s.ID, &s.StudentID, &s.Name, &s.Email, &s.Phone, &s.DOB,
		&s.Department, &s.CurrentSemester, &s.BatchID, &s.TeacherID,
		&s.ParentName, &s.ParentPhone, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
}

func scanStudent(rows pgx.Rows, s *models.Student) error {
	return scanStudentRow(rows, s)
}
