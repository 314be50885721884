package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/app/models/dto"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
	"github.com/oguzk/acadrecord/internal/pkg/csvparse"
	"github.com/oguzk/acadrecord/internal/pkg/helpers"
	"github.com/oguzk/acadrecord/internal/pkg/logger"
)

// DefaultMaxErrors caps the error list returned per upload.
const DefaultMaxErrors = 10

// Store interfaces consumed by the import dispatcher. The concrete
// repositories satisfy them; tests substitute in-memory fakes.
type (
	// StudentStore is the persistence gateway for students
	StudentStore interface {
		GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
		Create(ctx context.Context, student *models.Student) error
		Update(ctx context.Context, student *models.Student) error
	}

	// BatchStore lazily creates admission batches
	BatchStore interface {
		Ensure(ctx context.Context, batch *models.Batch) (int64, error)
	}

	// CourseStore lazily creates referenced courses
	CourseStore interface {
		Ensure(ctx context.Context, course *models.Course) (int64, error)
	}

	// AttendanceStore upserts attendance per (student, course, month)
	AttendanceStore interface {
		Upsert(ctx context.Context, record *models.AttendanceRecord) error
	}

	// TestScoreStore appends test scores
	TestScoreStore interface {
		Create(ctx context.Context, score *models.TestScore) error
	}

	// BacklogStore upserts backlogs per (student, course)
	BacklogStore interface {
		Upsert(ctx context.Context, backlog *models.Backlog) error
	}

	// FeeStore appends fee ledger entries
	FeeStore interface {
		Create(ctx context.Context, fee *models.FeePayment) error
	}

	// ProjectStore appends project records
	ProjectStore interface {
		Create(ctx context.Context, project *models.Project) error
	}

	// PhDStore appends PhD supervision records
	PhDStore interface {
		Create(ctx context.Context, supervision *models.PhDSupervision) error
	}

	// FellowshipStore appends fellowship records
	FellowshipStore interface {
		Create(ctx context.Context, fellowship *models.Fellowship) error
	}
)

// ImportStores bundles the gateways the dispatcher writes through
type ImportStores struct {
	Students    StudentStore
	Batches     BatchStore
	Courses     CourseStore
	Attendance  AttendanceStore
	TestScores  TestScoreStore
	Backlogs    BacklogStore
	Fees        FeeStore
	Projects    ProjectStore
	PhD         PhDStore
	Fellowships FellowshipStore
}

// ImportService turns an uploaded CSV into per-row upserts. Rows are
// processed strictly in arrival order, each row its own unit of work;
// a failed row is recorded and never aborts the batch.
type ImportService struct {
	stores    ImportStores
	maxErrors int
}

// NewImportService creates a new import service. maxErrors caps the
// error list in the result; values below 1 fall back to the default.
func NewImportService(stores ImportStores, maxErrors int) *ImportService {
	if maxErrors < 1 {
		maxErrors = DefaultMaxErrors
	}
	return &ImportService{stores: stores, maxErrors: maxErrors}
}

// Import parses csvText and applies one row at a time on behalf of
// teacherID. Request-level failures (unknown type, no parseable rows)
// return an error and touch nothing; row-level failures are collected
// in the result. Processed counts rows that reached the store, Total
// counts every row the parser emitted.
func (s *ImportService) Import(ctx context.Context, uploadType, csvText string, teacherID int64) (*dto.ImportResult, error) {
	if teacherID <= 0 {
		return nil, apperrors.ErrAuthRequired
	}

	desc, ok := uploadTypes[uploadType]
	if !ok {
		return nil, apperrors.ErrInvalidUploadType
	}

	records := csvparse.Parse(csvText)
	if len(records) == 0 {
		return nil, apperrors.ErrNoCSVData
	}

	result := &dto.ImportResult{
		Success: true,
		Total:   len(records),
		Errors:  []string{},
	}

	for i, record := range records {
		rowNum := i + 1

		if record.Err != nil {
			s.addError(result, rowNum, record.Err.Error())
			continue
		}

		if field := firstMissingField(record.Row, desc.required); field != "" {
			s.addError(result, rowNum, "Missing required field: "+field)
			continue
		}

		if err := desc.persist(s, ctx, record.Row, teacherID); err != nil {
			if re, ok := asRowError(err); ok {
				s.addError(result, rowNum, re.msg)
			} else {
				logger.Error().Err(err).Str("uploadType", uploadType).Int("row", rowNum).Msg("Persist step failed")
				s.addError(result, rowNum, "Database error - "+err.Error())
			}
			continue
		}

		result.Processed++
	}

	logger.Info().
		Str("uploadType", uploadType).
		Int64("teacherID", teacherID).
		Int("processed", result.Processed).
		Int("total", result.Total).
		Msg("Import finished")

	return result, nil
}

// Template returns the expected sheet layout for an upload type
func (s *ImportService) Template(uploadType string) (*dto.ImportTemplate, error) {
	desc, ok := uploadTypes[uploadType]
	if !ok {
		return nil, apperrors.ErrInvalidUploadType
	}

	return &dto.ImportTemplate{
		Type:     uploadType,
		Required: append([]string(nil), desc.required...),
		Header:   strings.Join(desc.header, ","),
	}, nil
}

func (s *ImportService) addError(result *dto.ImportResult, rowNum int, msg string) {
	if len(result.Errors) < s.maxErrors {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, msg))
	}
}

// requireStudent resolves the studentId reference for non-student
// uploads. Students are never auto-created by reference.
func (s *ImportService) requireStudent(ctx context.Context, row csvparse.Row) (*models.Student, error) {
	student, err := s.stores.Students.GetByStudentID(ctx, row.Get("studentId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, errStudentMissing
		}
		return nil, err
	}
	return student, nil
}

// ensureCourse resolves the courseId reference, creating the course
// with placeholder metadata when it does not exist yet.
func (s *ImportService) ensureCourse(ctx context.Context, code string) (int64, error) {
	return s.stores.Courses.Ensure(ctx, &models.Course{
		Code:       code,
		Name:       code,
		Semester:   1,
		Department: "GENERAL",
	})
}

func (s *ImportService) importStudent(ctx context.Context, row csvparse.Row, teacherID int64) error {
	dob, err := parseDateField(row, "dob")
	if err != nil {
		return err
	}

	semester, err := parseIntField(row, "currentSemester", "semester")
	if err != nil {
		return err
	}
	if semester < 1 || semester > 8 {
		return rowErrorf("Invalid semester: %s", row.Get("currentSemester"))
	}

	// Batch codes that do not match the pattern leave the reference
	// null rather than failing the row.
	var batchID *int64
	if code := row.Get("batchId"); code != "" {
		if dept, year, section, ok := parseBatchCode(code); ok {
			id, err := s.stores.Batches.Ensure(ctx, &models.Batch{
				Code:       code,
				Department: strings.ToUpper(dept),
				Year:       year,
				Section:    strings.ToUpper(section),
			})
			if err != nil {
				return err
			}
			batchID = &id

			if _, err := s.stores.Courses.Ensure(ctx, &models.Course{
				Code:       strings.ToUpper(dept) + "_GENERAL",
				Name:       strings.ToUpper(dept) + " General",
				Semester:   1,
				Department: strings.ToUpper(dept),
			}); err != nil {
				return err
			}
		}
	}

	existing, err := s.stores.Students.GetByStudentID(ctx, row.Get("studentId"))
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		return err
	}

	if existing == nil {
		return s.stores.Students.Create(ctx, &models.Student{
			StudentID:       row.Get("studentId"),
			Name:            row.Get("name"),
			Email:           row.Get("email"),
			Phone:           optionalString(row, "phone"),
			DOB:             dob,
			Department:      optionalString(row, "department"),
			CurrentSemester: semester,
			BatchID:         batchID,
			TeacherID:       &teacherID,
			ParentName:      optionalString(row, "parentName"),
			ParentPhone:     optionalString(row, "parentPhone"),
			Address:         optionalString(row, "address"),
		})
	}

	existing.Name = row.Get("name")
	existing.Email = row.Get("email")
	existing.Phone = optionalString(row, "phone")
	existing.DOB = dob
	existing.Department = optionalString(row, "department")
	existing.CurrentSemester = semester
	existing.ParentName = optionalString(row, "parentName")
	existing.ParentPhone = optionalString(row, "parentPhone")
	existing.Address = optionalString(row, "address")
	if batchID != nil {
		existing.BatchID = batchID
	}
	// An unowned student is claimed by the uploader; an owned one is
	// never reassigned.
	if existing.TeacherID == nil {
		existing.TeacherID = &teacherID
	}

	return s.stores.Students.Update(ctx, existing)
}

func (s *ImportService) importAttendance(ctx context.Context, row csvparse.Row, teacherID int64) error {
	percent, err := parseFloatField(row, "attendancePercent", "attendance percentage")
	if err != nil {
		return err
	}
	if percent < 0 || percent > 100 {
		return rowErrorf("Invalid attendance percentage: %s", row.Get("attendancePercent"))
	}

	month, err := parseDateField(row, "month")
	if err != nil {
		return err
	}

	student, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	courseID, err := s.ensureCourse(ctx, row.Get("courseId"))
	if err != nil {
		return err
	}

	return s.stores.Attendance.Upsert(ctx, &models.AttendanceRecord{
		StudentID:  student.ID,
		CourseID:   courseID,
		Month:      helpers.TruncateToMonth(month),
		Percentage: percent,
	})
}

func (s *ImportService) importTestScore(ctx context.Context, row csvparse.Row, teacherID int64) error {
	score, err := parseFloatField(row, "score", "score")
	if err != nil {
		return err
	}
	if score < 0 || score > 100 {
		return rowErrorf("Invalid score: %s", row.Get("score"))
	}

	testDate, err := parseDateField(row, "testDate")
	if err != nil {
		return err
	}

	maxScore, err := optionalFloatField(row, "maxScore", "max score")
	if err != nil {
		return err
	}

	student, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	courseID, err := s.ensureCourse(ctx, row.Get("courseId"))
	if err != nil {
		return err
	}

	return s.stores.TestScores.Create(ctx, &models.TestScore{
		StudentID: student.ID,
		CourseID:  courseID,
		TestDate:  testDate,
		TestType:  optionalString(row, "testType"),
		Score:     score,
		MaxScore:  maxScore,
	})
}

func (s *ImportService) importBacklog(ctx context.Context, row csvparse.Row, teacherID int64) error {
	attempts, err := parseIntField(row, "attempts", "attempts")
	if err != nil {
		return err
	}
	if attempts < 1 {
		return rowErrorf("Invalid attempts: %s", row.Get("attempts"))
	}

	student, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	courseID, err := s.ensureCourse(ctx, row.Get("courseId"))
	if err != nil {
		return err
	}

	return s.stores.Backlogs.Upsert(ctx, &models.Backlog{
		StudentID: student.ID,
		CourseID:  courseID,
		Attempts:  attempts,
		Cleared:   parseBoolField(row, "cleared"),
	})
}

func (s *ImportService) importFee(ctx context.Context, row csvparse.Row, teacherID int64) error {
	dueDate, err := parseDateField(row, "dueDate")
	if err != nil {
		return err
	}

	dueMonths, err := parseIntField(row, "dueMonths", "due months")
	if err != nil {
		return err
	}
	if dueMonths < 1 {
		return rowErrorf("Invalid due months: %s", row.Get("dueMonths"))
	}

	amount, err := optionalFloatField(row, "amount", "amount")
	if err != nil {
		return err
	}

	paidDate, err := optionalDateField(row, "paidDate")
	if err != nil {
		return err
	}

	student, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	return s.stores.Fees.Create(ctx, &models.FeePayment{
		StudentID: student.ID,
		Amount:    amount,
		DueDate:   dueDate,
		PaidDate:  paidDate,
		Status:    row.Get("status"),
		DueMonths: dueMonths,
	})
}

func (s *ImportService) importProject(ctx context.Context, row csvparse.Row, teacherID int64) error {
	startDate, err := parseDateField(row, "startDate")
	if err != nil {
		return err
	}

	endDate, err := optionalDateField(row, "endDate")
	if err != nil {
		return err
	}

	student, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	return s.stores.Projects.Create(ctx, &models.Project{
		StudentID:    student.ID,
		SupervisorID: teacherID,
		Title:        row.Get("title"),
		Description:  optionalString(row, "description"),
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       optionalString(row, "status"),
	})
}

func (s *ImportService) importPhD(ctx context.Context, row csvparse.Row, teacherID int64) error {
	startDate, err := parseDateField(row, "startDate")
	if err != nil {
		return err
	}

	student, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	return s.stores.PhD.Create(ctx, &models.PhDSupervision{
		StudentID:    student.ID,
		SupervisorID: teacherID,
		Title:        row.Get("title"),
		ResearchArea: row.Get("researchArea"),
		StartDate:    startDate,
		Status:       optionalString(row, "status"),
	})
}

func (s *ImportService) importFellowship(ctx context.Context, row csvparse.Row, teacherID int64) error {
	amount, err := parseFloatField(row, "amount", "amount")
	if err != nil {
		return err
	}

	duration, err := parseIntField(row, "duration", "duration")
	if err != nil {
		return err
	}
	if duration < 1 {
		return rowErrorf("Invalid duration: %s", row.Get("duration"))
	}

	startDate, err := parseDateField(row, "startDate")
	if err != nil {
		return err
	}

	student, err := s.requireStudent(ctx, row)
	if err != nil {
		return err
	}

	return s.stores.Fellowships.Create(ctx, &models.Fellowship{
		StudentID:      student.ID,
		SupervisorID:   teacherID,
		Type:           row.Get("type"),
		Amount:         amount,
		DurationMonths: duration,
		StartDate:      startDate,
	})
}
