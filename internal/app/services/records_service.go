package services

import (
	"context"
	"fmt"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/app/models/dto"
	"github.com/oguzk/acadrecord/internal/app/repositories"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
	"github.com/oguzk/acadrecord/internal/pkg/helpers"
)

// RecordsService serves read access to uploaded records, scoped to
// the requesting teacher's students.
type RecordsService struct {
	repos *repositories.Repositories
}

// NewRecordsService creates a new records service
func NewRecordsService(repos *repositories.Repositories) *RecordsService {
	return &RecordsService{repos: repos}
}

// ListStudents returns one page of the teacher's students
func (s *RecordsService) ListStudents(ctx context.Context, teacherID int64, page, size int) (*dto.PaginatedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, err := s.repos.StudentRepository.ListByTeacher(ctx, teacherID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	total, err := s.repos.StudentRepository.CountByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	if students == nil {
		students = []*models.Student{}
	}

	return &dto.PaginatedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetStudent retrieves one of the teacher's students by institutional
// identifier. Students owned by another teacher are reported as not
// found rather than leaking their existence.
func (s *RecordsService) GetStudent(ctx context.Context, teacherID int64, studentID string) (*models.Student, error) {
	student, err := s.repos.StudentRepository.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if student.TeacherID == nil || *student.TeacherID != teacherID {
		return nil, apperrors.ErrStudentNotFound
	}

	return student, nil
}

// StudentAttendance lists the attendance records of one student
func (s *RecordsService) StudentAttendance(ctx context.Context, teacherID int64, studentID string) ([]*models.AttendanceRecord, error) {
	student, err := s.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return s.repos.AttendanceRepository.ListByStudent(ctx, student.ID)
}

// StudentScores lists the test scores of one student
func (s *RecordsService) StudentScores(ctx context.Context, teacherID int64, studentID string) ([]*models.TestScore, error) {
	student, err := s.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return s.repos.TestScoreRepository.ListByStudent(ctx, student.ID)
}

// StudentBacklogs lists the backlog records of one student
func (s *RecordsService) StudentBacklogs(ctx context.Context, teacherID int64, studentID string) ([]*models.Backlog, error) {
	student, err := s.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return s.repos.BacklogRepository.ListByStudent(ctx, student.ID)
}

// StudentFees lists the fee ledger of one student
func (s *RecordsService) StudentFees(ctx context.Context, teacherID int64, studentID string) ([]*models.FeePayment, error) {
	student, err := s.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return s.repos.FeeRepository.ListByStudent(ctx, student.ID)
}

// StudentProjects lists the projects of one student
func (s *RecordsService) StudentProjects(ctx context.Context, teacherID int64, studentID string) ([]*models.Project, error) {
	student, err := s.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return s.repos.ProjectRepository.ListByStudent(ctx, student.ID)
}

// StudentPhD lists the PhD supervision records of one student
func (s *RecordsService) StudentPhD(ctx context.Context, teacherID int64, studentID string) ([]*models.PhDSupervision, error) {
	student, err := s.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return s.repos.PhDRepository.ListByStudent(ctx, student.ID)
}

// StudentFellowships lists the fellowships of one student
func (s *RecordsService) StudentFellowships(ctx context.Context, teacherID int64, studentID string) ([]*models.Fellowship, error) {
	student, err := s.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return s.repos.FellowshipRepository.ListByStudent(ctx, student.ID)
}

// ListBatches returns all admission batches
func (s *RecordsService) ListBatches(ctx context.Context) ([]*models.Batch, error) {
	return s.repos.BatchRepository.GetAll(ctx)
}

// ListCourses returns all courses
func (s *RecordsService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.repos.CourseRepository.GetAll(ctx)
}
