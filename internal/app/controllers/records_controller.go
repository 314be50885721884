package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/acadrecord/internal/app/services"
	"github.com/oguzk/acadrecord/internal/middleware"
	"github.com/oguzk/acadrecord/internal/pkg/helpers"
)

// RecordsController serves read access to uploaded records
type RecordsController struct {
	recordsService *services.RecordsService
}

// NewRecordsController creates a new RecordsController
func NewRecordsController(recordsService *services.RecordsService) *RecordsController {
	return &RecordsController{recordsService: recordsService}
}

// ListStudents lists the teacher's students
// @Summary List students
// @Tags students
// @Produce json
// @Param page query int false "1-based page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.PaginatedResponse
// @Router /students [get]
func (c *RecordsController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.recordsService.ListStudents(ctx.Request.Context(), middleware.TeacherID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetStudent retrieves one student by institutional identifier
// @Summary Get student
// @Tags students
// @Produce json
// @Param studentId path string true "Student identifier"
// @Success 200 {object} models.Student
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{studentId} [get]
func (c *RecordsController) GetStudent(ctx *gin.Context) {
	student, err := c.recordsService.GetStudent(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// StudentAttendance lists a student's attendance records
func (c *RecordsController) StudentAttendance(ctx *gin.Context) {
	records, err := c.recordsService.StudentAttendance(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// StudentScores lists a student's test scores
func (c *RecordsController) StudentScores(ctx *gin.Context) {
	scores, err := c.recordsService.StudentScores(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, scores)
}

// StudentBacklogs lists a student's backlog records
func (c *RecordsController) StudentBacklogs(ctx *gin.Context) {
	backlogs, err := c.recordsService.StudentBacklogs(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, backlogs)
}

// StudentFees lists a student's fee ledger
func (c *RecordsController) StudentFees(ctx *gin.Context) {
	fees, err := c.recordsService.StudentFees(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, fees)
}

// StudentProjects lists a student's projects
func (c *RecordsController) StudentProjects(ctx *gin.Context) {
	projects, err := c.recordsService.StudentProjects(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, projects)
}

// StudentPhD lists a student's PhD supervision records
func (c *RecordsController) StudentPhD(ctx *gin.Context) {
	supervisions, err := c.recordsService.StudentPhD(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, supervisions)
}

// StudentFellowships lists a student's fellowships
func (c *RecordsController) StudentFellowships(ctx *gin.Context) {
	fellowships, err := c.recordsService.StudentFellowships(ctx.Request.Context(),
		middleware.TeacherID(ctx), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, fellowships)
}

// ListBatches lists all admission batches
func (c *RecordsController) ListBatches(ctx *gin.Context) {
	batches, err := c.recordsService.ListBatches(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, batches)
}

// ListCourses lists all courses
func (c *RecordsController) ListCourses(ctx *gin.Context) {
	courses, err := c.recordsService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}
