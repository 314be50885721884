package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
)

// fakeStores is an in-memory implementation of every store interface
// the dispatcher writes through.
type fakeStores struct {
	nextID   int64
	students map[string]*models.Student
	created  []*models.Student
	updated  []*models.Student

	batches map[string]*models.Batch
	courses map[string]*models.Course

	attendance  []*models.AttendanceRecord
	scores      []*models.TestScore
	backlogs    []*models.Backlog
	fees        []*models.FeePayment
	projects    []*models.Project
	phd         []*models.PhDSupervision
	fellowships []*models.Fellowship

	failWith error
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		students: make(map[string]*models.Student),
		batches:  make(map[string]*models.Batch),
		courses:  make(map[string]*models.Course),
	}
}

func (f *fakeStores) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStores) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	if s, ok := f.students[studentID]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStores) Create(_ context.Context, student *models.Student) error {
	if f.failWith != nil {
		return f.failWith
	}
	student.ID = f.id()
	f.students[student.StudentID] = student
	f.created = append(f.created, student)
	return nil
}

func (f *fakeStores) Update(_ context.Context, student *models.Student) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.students[student.StudentID] = student
	f.updated = append(f.updated, student)
	return nil
}

func (f *fakeStores) EnsureBatch(_ context.Context, batch *models.Batch) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	if existing, ok := f.batches[batch.Code]; ok {
		return existing.ID, nil
	}
	batch.ID = f.id()
	f.batches[batch.Code] = batch
	return batch.ID, nil
}

func (f *fakeStores) EnsureCourse(_ context.Context, course *models.Course) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	if existing, ok := f.courses[course.Code]; ok {
		return existing.ID, nil
	}
	course.ID = f.id()
	f.courses[course.Code] = course
	return course.ID, nil
}

func (f *fakeStores) UpsertAttendance(_ context.Context, record *models.AttendanceRecord) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.attendance = append(f.attendance, record)
	return nil
}

func (f *fakeStores) CreateScore(_ context.Context, score *models.TestScore) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.scores = append(f.scores, score)
	return nil
}

func (f *fakeStores) UpsertBacklog(_ context.Context, backlog *models.Backlog) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.backlogs = append(f.backlogs, backlog)
	return nil
}

func (f *fakeStores) CreateFee(_ context.Context, fee *models.FeePayment) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.fees = append(f.fees, fee)
	return nil
}

func (f *fakeStores) CreateProject(_ context.Context, project *models.Project) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.projects = append(f.projects, project)
	return nil
}

func (f *fakeStores) CreatePhD(_ context.Context, supervision *models.PhDSupervision) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.phd = append(f.phd, supervision)
	return nil
}

func (f *fakeStores) CreateFellowship(_ context.Context, fellowship *models.Fellowship) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.fellowships = append(f.fellowships, fellowship)
	return nil
}

// Adapter types bind the single fake onto the narrower interfaces.
type (
	batchStoreFunc      struct{ f *fakeStores }
	courseStoreFunc     struct{ f *fakeStores }
	attendanceStoreFunc struct{ f *fakeStores }
	scoreStoreFunc      struct{ f *fakeStores }
	backlogStoreFunc    struct{ f *fakeStores }
	feeStoreFunc        struct{ f *fakeStores }
	projectStoreFunc    struct{ f *fakeStores }
	phdStoreFunc        struct{ f *fakeStores }
	fellowshipStoreFunc struct{ f *fakeStores }
)

func (a batchStoreFunc) Ensure(ctx context.Context, b *models.Batch) (int64, error) {
	return a.f.EnsureBatch(ctx, b)
}
func (a courseStoreFunc) Ensure(ctx context.Context, c *models.Course) (int64, error) {
	return a.f.EnsureCourse(ctx, c)
}
func (a attendanceStoreFunc) Upsert(ctx context.Context, r *models.AttendanceRecord) error {
	return a.f.UpsertAttendance(ctx, r)
}
func (a scoreStoreFunc) Create(ctx context.Context, s *models.TestScore) error {
	return a.f.CreateScore(ctx, s)
}
func (a backlogStoreFunc) Upsert(ctx context.Context, b *models.Backlog) error {
	return a.f.UpsertBacklog(ctx, b)
}
func (a feeStoreFunc) Create(ctx context.Context, fee *models.FeePayment) error {
	return a.f.CreateFee(ctx, fee)
}
func (a projectStoreFunc) Create(ctx context.Context, p *models.Project) error {
	return a.f.CreateProject(ctx, p)
}
func (a phdStoreFunc) Create(ctx context.Context, p *models.PhDSupervision) error {
	return a.f.CreatePhD(ctx, p)
}
func (a fellowshipStoreFunc) Create(ctx context.Context, fw *models.Fellowship) error {
	return a.f.CreateFellowship(ctx, fw)
}

func newTestService(f *fakeStores) *ImportService {
	return NewImportService(ImportStores{
		Students:    f,
		Batches:     batchStoreFunc{f},
		Courses:     courseStoreFunc{f},
		Attendance:  attendanceStoreFunc{f},
		TestScores:  scoreStoreFunc{f},
		Backlogs:    backlogStoreFunc{f},
		Fees:        feeStoreFunc{f},
		Projects:    projectStoreFunc{f},
		PhD:         phdStoreFunc{f},
		Fellowships: fellowshipStoreFunc{f},
	}, DefaultMaxErrors)
}

func (f *fakeStores) addStudent(studentID string, teacherID *int64) *models.Student {
	s := &models.Student{
		ID:              f.id(),
		StudentID:       studentID,
		Name:            "Seeded",
		Email:           studentID + "@example.edu",
		CurrentSemester: 1,
		TeacherID:       teacherID,
	}
	f.students[studentID] = s
	return s
}

func TestImportRejectsUnknownType(t *testing.T) {
	svc := newTestService(newFakeStores())

	_, err := svc.Import(context.Background(), "grades", "a,b\n1,2", 1)
	if !errors.Is(err, apperrors.ErrInvalidUploadType) {
		t.Fatalf("expected ErrInvalidUploadType, got %v", err)
	}
}

func TestImportRejectsMissingTeacher(t *testing.T) {
	svc := newTestService(newFakeStores())

	_, err := svc.Import(context.Background(), "students", "a,b\n1,2", 0)
	if !errors.Is(err, apperrors.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestImportRejectsEmptyCSV(t *testing.T) {
	svc := newTestService(newFakeStores())

	for _, text := range []string{"", "studentId,name,email,dob,currentSemester"} {
		_, err := svc.Import(context.Background(), "students", text, 1)
		if !errors.Is(err, apperrors.ErrNoCSVData) {
			t.Fatalf("input %q: expected ErrNoCSVData, got %v", text, err)
		}
	}
}

func TestImportStudentsCreate(t *testing.T) {
	f := newFakeStores()
	svc := newTestService(f)

	csv := strings.Join([]string{
		"studentId,name,email,phone,dob,department,currentSemester,batchId",
		"S001,Alice,alice@example.edu,555-0100,2004-05-12,CSE,3,CSE2024B",
	}, "\n")

	result, err := svc.Import(context.Background(), "students", csv, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.Processed != 1 || result.Total != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected row errors: %v", result.Errors)
	}

	student, ok := f.students["S001"]
	if !ok {
		t.Fatal("student not created")
	}
	if student.Name != "Alice" || student.CurrentSemester != 3 {
		t.Errorf("student = %+v", student)
	}
	if student.TeacherID == nil || *student.TeacherID != 7 {
		t.Errorf("teacher not claimed: %v", student.TeacherID)
	}

	batch, ok := f.batches["CSE2024B"]
	if !ok {
		t.Fatal("batch not created")
	}
	if batch.Department != "CSE" || batch.Year != 2024 || batch.Section != "B" {
		t.Errorf("batch = %+v", batch)
	}
	if student.BatchID == nil || *student.BatchID != batch.ID {
		t.Errorf("student batch reference = %v, want %d", student.BatchID, batch.ID)
	}

	if _, ok := f.courses["CSE_GENERAL"]; !ok {
		t.Error("department general course not created")
	}
}

func TestImportStudentsUpdateNeverReassignsOwner(t *testing.T) {
	f := newFakeStores()
	owner := int64(3)
	f.addStudent("S001", &owner)
	svc := newTestService(f)

	csv := "studentId,name,email,dob,currentSemester\nS001,Alice,alice@example.edu,2004-05-12,4"
	result, err := svc.Import(context.Background(), "students", csv, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("result = %+v", result)
	}

	student := f.students["S001"]
	if student.TeacherID == nil || *student.TeacherID != 3 {
		t.Errorf("owner reassigned: %v", student.TeacherID)
	}
	if student.Name != "Alice" || student.CurrentSemester != 4 {
		t.Errorf("fields not updated: %+v", student)
	}
	if len(f.updated) != 1 || len(f.created) != 0 {
		t.Errorf("expected update path, created=%d updated=%d", len(f.created), len(f.updated))
	}
}

func TestImportStudentsClaimsUnownedStudent(t *testing.T) {
	f := newFakeStores()
	f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := "studentId,name,email,dob,currentSemester\nS001,Alice,alice@example.edu,2004-05-12,4"
	if _, err := svc.Import(context.Background(), "students", csv, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	student := f.students["S001"]
	if student.TeacherID == nil || *student.TeacherID != 9 {
		t.Errorf("unowned student not claimed: %v", student.TeacherID)
	}
}

func TestImportStudentsInvalidSemester(t *testing.T) {
	svc := newTestService(newFakeStores())

	csv := "studentId,name,email,dob,currentSemester\nS001,Alice,alice@example.edu,2004-05-12,9"
	result, err := svc.Import(context.Background(), "students", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 0 || len(result.Errors) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.Errors[0] != "Row 1: Invalid semester: 9" {
		t.Errorf("error = %q", result.Errors[0])
	}
}

func TestImportStudentsBadBatchCodeIsIgnored(t *testing.T) {
	f := newFakeStores()
	svc := newTestService(f)

	csv := "studentId,name,email,dob,currentSemester,batchId\nS001,Alice,alice@example.edu,2004-05-12,3,notabatch"
	result, err := svc.Import(context.Background(), "students", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 1 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
	if f.students["S001"].BatchID != nil {
		t.Error("batch reference should stay nil for an unparseable code")
	}
	if len(f.batches) != 0 {
		t.Errorf("no batch should be created, got %d", len(f.batches))
	}
}

func TestImportMissingRequiredField(t *testing.T) {
	svc := newTestService(newFakeStores())

	csv := "studentId,name,email,dob,currentSemester\nS001,Alice,,2004-05-12,3"
	result, err := svc.Import(context.Background(), "students", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Row 1: Missing required field: email" {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestImportColumnMismatchSurfacesAsRowError(t *testing.T) {
	svc := newTestService(newFakeStores())

	csv := "studentId,name,email,dob,currentSemester\nS001,Alice,alice@example.edu"
	result, err := svc.Import(context.Background(), "students", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Row 1: expected 5 columns, got 3" {
		t.Errorf("errors = %v", result.Errors)
	}
	if result.Total != 1 || result.Processed != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestImportAttendanceUpsert(t *testing.T) {
	f := newFakeStores()
	student := f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := "studentId,courseId,month,attendancePercent\nS001,CS101,2024-03-15,87.5"
	result, err := svc.Import(context.Background(), "attendance", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("result = %+v", result)
	}

	if len(f.attendance) != 1 {
		t.Fatalf("expected 1 attendance record, got %d", len(f.attendance))
	}
	rec := f.attendance[0]
	if rec.StudentID != student.ID || rec.Percentage != 87.5 {
		t.Errorf("record = %+v", rec)
	}
	wantMonth := time.Date(2024, 3, 1, 0, 0, 0, 0, rec.Month.Location())
	if !rec.Month.Equal(wantMonth) {
		t.Errorf("month = %v, want %v", rec.Month, wantMonth)
	}

	course, ok := f.courses["CS101"]
	if !ok {
		t.Fatal("course not vivified")
	}
	if rec.CourseID != course.ID {
		t.Errorf("course reference = %d, want %d", rec.CourseID, course.ID)
	}
}

func TestImportAttendancePercentOutOfRange(t *testing.T) {
	f := newFakeStores()
	f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := "studentId,courseId,month,attendancePercent\nS001,CS101,2024-03-15,150"
	result, err := svc.Import(context.Background(), "attendance", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Row 1: Invalid attendance percentage: 150" {
		t.Errorf("errors = %v", result.Errors)
	}
	if len(f.attendance) != 0 {
		t.Error("out-of-range row must not reach the store")
	}
}

func TestImportAttendanceStudentNotFound(t *testing.T) {
	svc := newTestService(newFakeStores())

	csv := "studentId,courseId,month,attendancePercent\nGHOST,CS101,2024-03-15,90"
	result, err := svc.Import(context.Background(), "attendance", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Row 1: Student not found" {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestImportBacklogClearedCoercion(t *testing.T) {
	f := newFakeStores()
	f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := strings.Join([]string{
		"studentId,courseId,attempts,cleared",
		"S001,CS101,2,yes",
		"S001,CS102,1,nope",
	}, "\n")

	result, err := svc.Import(context.Background(), "backlogs", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 2 {
		t.Fatalf("result = %+v", result)
	}
	if !f.backlogs[0].Cleared {
		t.Error("yes should coerce to true")
	}
	if f.backlogs[1].Cleared {
		t.Error("unrecognized spelling should coerce to false")
	}
}

func TestImportFeesOptionalFields(t *testing.T) {
	f := newFakeStores()
	f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := "studentId,amount,dueDate,paidDate,status,dueMonths\nS001,,2024-06-01,,pending,2"
	result, err := svc.Import(context.Background(), "fees", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("result = %+v", result)
	}

	fee := f.fees[0]
	if fee.Amount != nil || fee.PaidDate != nil {
		t.Errorf("optional fields should be nil: %+v", fee)
	}
	if fee.Status != "pending" || fee.DueMonths != 2 {
		t.Errorf("fee = %+v", fee)
	}
}

func TestImportFellowshipInvalidDuration(t *testing.T) {
	f := newFakeStores()
	f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := "studentId,type,amount,duration,startDate\nS001,JRF,31000,0,2024-01-01"
	result, err := svc.Import(context.Background(), "fellowships", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Row 1: Invalid duration: 0" {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestImportProjectRecordsSupervisor(t *testing.T) {
	f := newFakeStores()
	f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := "studentId,title,description,startDate,endDate,status\nS001,Compiler,\"A toy compiler\",2024-01-10,,ongoing"
	result, err := svc.Import(context.Background(), "projects", csv, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("result = %+v", result)
	}
	if f.projects[0].SupervisorID != 5 {
		t.Errorf("supervisor = %d, want 5", f.projects[0].SupervisorID)
	}
	if f.projects[0].EndDate != nil {
		t.Error("empty endDate should be nil")
	}
}

func TestImportStoreFailureBecomesRowError(t *testing.T) {
	f := newFakeStores()
	f.failWith = fmt.Errorf("boom")
	svc := newTestService(f)

	csv := "studentId,name,email,dob,currentSemester\nS001,Alice,alice@example.edu,2004-05-12,3"
	result, err := svc.Import(context.Background(), "students", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Row 1: Database error - boom" {
		t.Errorf("errors = %v", result.Errors)
	}
	if result.Processed != 0 {
		t.Errorf("processed = %d, want 0", result.Processed)
	}
}

func TestImportErrorListIsCapped(t *testing.T) {
	svc := newTestService(newFakeStores())

	var b strings.Builder
	b.WriteString("studentId,courseId,month,attendancePercent")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "\nGHOST%d,CS101,2024-03-15,90", i)
	}

	result, err := svc.Import(context.Background(), "attendance", b.String(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 15 || result.Processed != 0 {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Errors) != DefaultMaxErrors {
		t.Errorf("errors = %d, want %d", len(result.Errors), DefaultMaxErrors)
	}
	if result.Errors[0] != "Row 1: Student not found" {
		t.Errorf("first error = %q", result.Errors[0])
	}
}

func TestImportPartialSuccess(t *testing.T) {
	f := newFakeStores()
	f.addStudent("S001", nil)
	svc := newTestService(f)

	csv := strings.Join([]string{
		"studentId,courseId,month,attendancePercent",
		"S001,CS101,2024-03-15,90",
		"GHOST,CS101,2024-03-15,80",
		"S001,CS102,2024-03-15,abc",
	}, "\n")

	result, err := svc.Import(context.Background(), "attendance", csv, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 1 || result.Total != 3 {
		t.Fatalf("result = %+v", result)
	}
	want := []string{
		"Row 2: Student not found",
		"Row 3: Invalid attendance percentage: abc",
	}
	if len(result.Errors) != len(want) {
		t.Fatalf("errors = %v", result.Errors)
	}
	for i := range want {
		if result.Errors[i] != want[i] {
			t.Errorf("error[%d] = %q, want %q", i, result.Errors[i], want[i])
		}
	}
}

func TestTemplate(t *testing.T) {
	svc := newTestService(newFakeStores())

	tpl, err := svc.Template("attendance")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.Header != "studentId,courseId,month,attendancePercent" {
		t.Errorf("header = %q", tpl.Header)
	}

	if _, err := svc.Template("nope"); !errors.Is(err, apperrors.ErrInvalidUploadType) {
		t.Errorf("expected ErrInvalidUploadType, got %v", err)
	}
}
