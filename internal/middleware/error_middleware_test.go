package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"auth required", apperrors.ErrAuthRequired, http.StatusUnauthorized, "Authentication required"},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"missing file or type", apperrors.ErrMissingFileOrType, http.StatusBadRequest, "File and type are required"},
		{"no csv data", apperrors.ErrNoCSVData, http.StatusBadRequest, "No valid data found in CSV"},
		{"invalid upload type", apperrors.ErrInvalidUploadType, http.StatusBadRequest, "Invalid upload type"},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, "Student not found"},
		{"teacher not found", apperrors.ErrTeacherNotFound, http.StatusNotFound, "Teacher not found"},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error: connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if got := errorBody(t, w); got != tt.body {
				t.Errorf("body = %q, want %q", got, tt.body)
			}
		})
	}
}

func TestHandleAPIErrorWrapped(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.NewBadRequestError("File exceeds the upload size limit"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got != "File exceeds the upload size limit" {
		t.Errorf("body = %q", got)
	}
}

func TestContextHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if got := TeacherID(c); got != 0 {
		t.Errorf("TeacherID on empty context = %d, want 0", got)
	}
	if CurrentTeacher(c) != nil {
		t.Error("CurrentTeacher on empty context should be nil")
	}

	teacher := &models.Teacher{ID: 42, Email: "t@example.edu"}
	c.Set(ContextTeacherKey, teacher)
	c.Set(ContextTeacherIDKey, teacher.ID)

	if got := TeacherID(c); got != 42 {
		t.Errorf("TeacherID = %d, want 42", got)
	}
	if got := CurrentTeacher(c); got != teacher {
		t.Errorf("CurrentTeacher = %v", got)
	}
}
