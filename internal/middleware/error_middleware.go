package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/acadrecord/internal/app/models/dto"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Unknown errors
// surface as a 500 carrying the message, so a failed upload is
// diagnosable from the client side.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
	case errors.Is(err, apperrors.ErrMissingFileOrType):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("File and type are required"))
	case errors.Is(err, apperrors.ErrNoCSVData):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("No valid data found in CSV"))
	case errors.Is(err, apperrors.ErrInvalidUploadType):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid upload type"))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Student not found"))
	case errors.Is(err, apperrors.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Teacher not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error: "+err.Error()))
	}
}
