package apperrors

import "errors"

// Request-level errors. These fail the whole request before any row of
// an upload is touched.
var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrInvalidUploadType = errors.New("invalid upload type")
	ErrMissingFileOrType = errors.New("file and type are required")
	ErrNoCSVData         = errors.New("no valid data found in CSV")
	ErrBadRequest        = errors.New("bad request")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// Resource errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrBatchNotFound    = errors.New("batch not found")
	ErrEmailExists      = errors.New("email already exists")
)

// CustomError carries a user-facing message alongside a sentinel.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewNotFoundError creates a resource not found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}
