package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/oguzk/acadrecord/internal/pkg/csvparse"
	"github.com/oguzk/acadrecord/internal/pkg/helpers"
)

// rowError is a per-row validation or coercion failure. The dispatcher
// reports it verbatim as "Row {n}: {message}" and moves on; anything
// else coming back from a persist step is treated as a store failure.
type rowError struct {
	msg string
}

func (e *rowError) Error() string { return e.msg }

func rowErrorf(format string, args ...interface{}) error {
	return &rowError{msg: fmt.Sprintf(format, args...)}
}

// errStudentMissing is the referential failure for every upload type
// except students: the referenced student must already exist.
var errStudentMissing = &rowError{msg: "Student not found"}

// uploadDescriptor drives the generic per-row loop for one upload
// type: which fields must be present (checked in order, first missing
// wins), the full template header, and the persist step.
type uploadDescriptor struct {
	required []string
	header   []string
	persist  func(s *ImportService, ctx context.Context, row csvparse.Row, teacherID int64) error
}

var uploadTypes = map[string]uploadDescriptor{
	"students": {
		required: []string{"studentId", "name", "email", "dob", "currentSemester"},
		header: []string{"studentId", "name", "email", "phone", "dob", "department",
			"currentSemester", "batchId", "parentName", "parentPhone", "address"},
		persist: (*ImportService).importStudent,
	},
	"attendance": {
		required: []string{"studentId", "courseId", "month", "attendancePercent"},
		header:   []string{"studentId", "courseId", "month", "attendancePercent"},
		persist:  (*ImportService).importAttendance,
	},
	"testscores": {
		required: []string{"studentId", "courseId", "testDate", "score"},
		header:   []string{"studentId", "courseId", "testDate", "testType", "score", "maxScore"},
		persist:  (*ImportService).importTestScore,
	},
	"backlogs": {
		required: []string{"studentId", "courseId", "attempts", "cleared"},
		header:   []string{"studentId", "courseId", "attempts", "cleared"},
		persist:  (*ImportService).importBacklog,
	},
	"fees": {
		required: []string{"studentId", "dueDate", "status", "dueMonths"},
		header:   []string{"studentId", "amount", "dueDate", "paidDate", "status", "dueMonths"},
		persist:  (*ImportService).importFee,
	},
	"projects": {
		required: []string{"studentId", "title", "startDate"},
		header:   []string{"studentId", "title", "description", "startDate", "endDate", "status"},
		persist:  (*ImportService).importProject,
	},
	"phd": {
		required: []string{"studentId", "title", "researchArea", "startDate"},
		header:   []string{"studentId", "title", "researchArea", "startDate", "status"},
		persist:  (*ImportService).importPhD,
	},
	"fellowships": {
		required: []string{"studentId", "type", "amount", "duration", "startDate"},
		header:   []string{"studentId", "type", "amount", "duration", "startDate"},
		persist:  (*ImportService).importFellowship,
	},
}

// firstMissingField returns the first required field the row lacks, in
// descriptor order, or "" when all are present.
func firstMissingField(row csvparse.Row, required []string) string {
	for _, field := range required {
		if !row.Has(field) {
			return field
		}
	}
	return ""
}

// Batch codes look like CSE2024B: department letters, a four-digit
// admission year, a section letter.
var batchCodePattern = regexp.MustCompile(`^([A-Za-z]+)(\d{4})([A-Za-z])$`)

func parseBatchCode(code string) (department string, year int, section string, ok bool) {
	m := batchCodePattern.FindStringSubmatch(code)
	if m == nil {
		return "", 0, "", false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, "", false
	}
	return m[1], year, m[3], true
}

func parseDateField(row csvparse.Row, key string) (time.Time, error) {
	raw := row.Get(key)
	t, err := helpers.ParseDate(raw)
	if err != nil {
		return time.Time{}, rowErrorf("Invalid date: %s", raw)
	}
	return t, nil
}

func optionalDateField(row csvparse.Row, key string) (*time.Time, error) {
	if !row.Has(key) {
		return nil, nil
	}
	t, err := parseDateField(row, key)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseIntField(row csvparse.Row, key, label string) (int, error) {
	raw := row.Get(key)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, rowErrorf("Invalid %s: %s", label, raw)
	}
	return v, nil
}

func parseFloatField(row csvparse.Row, key, label string) (float64, error) {
	raw := row.Get(key)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, rowErrorf("Invalid %s: %s", label, raw)
	}
	return v, nil
}

func optionalFloatField(row csvparse.Row, key, label string) (*float64, error) {
	if !row.Has(key) {
		return nil, nil
	}
	v, err := parseFloatField(row, key, label)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalString(row csvparse.Row, key string) *string {
	if !row.Has(key) {
		return nil
	}
	v := row.Get(key)
	return &v
}

// parseBoolField treats true/yes/1 (any case) as true and everything
// else as false. Presence is validated separately; a bad spelling is
// last-write-wins data, not a rejected row.
func parseBoolField(row csvparse.Row, key string) bool {
	switch row.Get(key) {
	case "true", "TRUE", "True", "yes", "YES", "Yes", "1":
		return true
	}
	return false
}

// errors.As shim used by the dispatcher loop.
func asRowError(err error) (*rowError, bool) {
	var re *rowError
	ok := errors.As(err, &re)
	return re, ok
}
