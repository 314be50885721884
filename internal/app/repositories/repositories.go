package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	TeacherRepository    *TeacherRepository
	StudentRepository    *StudentRepository
	BatchRepository      *BatchRepository
	CourseRepository     *CourseRepository
	AttendanceRepository *AttendanceRepository
	TestScoreRepository  *TestScoreRepository
	BacklogRepository    *BacklogRepository
	FeeRepository        *FeeRepository
	ProjectRepository    *ProjectRepository
	PhDRepository        *PhDRepository
	FellowshipRepository *FellowshipRepository
}

// NewRepositories creates all repositories over one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		TeacherRepository:    NewTeacherRepository(db),
		StudentRepository:    NewStudentRepository(db),
		BatchRepository:      NewBatchRepository(db),
		CourseRepository:     NewCourseRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		TestScoreRepository:  NewTestScoreRepository(db),
		BacklogRepository:    NewBacklogRepository(db),
		FeeRepository:        NewFeeRepository(db),
		ProjectRepository:    NewProjectRepository(db),
		PhDRepository:        NewPhDRepository(db),
		FellowshipRepository: NewFellowshipRepository(db),
	}
}
