package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/acadrecord/internal/app/services"
	"github.com/oguzk/acadrecord/internal/middleware"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
)

// ImportController handles CSV upload requests
type ImportController struct {
	importService  *services.ImportService
	maxUploadBytes int64
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService, maxUploadBytes int64) *ImportController {
	return &ImportController{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles a CSV upload
// @Summary Import a CSV of academic records
// @Description Parses the uploaded CSV and upserts one row at a time. Partial success is normal; the response reports processed vs total with up to ten row errors.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param type formData string true "Upload type" Enums(students,attendance,testscores,backlogs,fees,projects,phd,fellowships)
// @Success 200 {object} dto.ImportResult "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Missing file/type, unknown type or empty CSV"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /imports [post]
func (c *ImportController) Upload(ctx *gin.Context) {
	teacherID := middleware.TeacherID(ctx)

	fileHeader, err := ctx.FormFile("file")
	uploadType := ctx.PostForm("type")
	if err != nil || uploadType == "" {
		middleware.HandleAPIError(ctx, apperrors.ErrMissingFileOrType)
		return
	}

	if c.maxUploadBytes > 0 && fileHeader.Size > c.maxUploadBytes {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("File exceeds the upload size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrMissingFileOrType)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.importService.Import(ctx.Request.Context(), uploadType, string(content), teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Template returns the expected sheet layout for an upload type
// @Summary Get the CSV template for an upload type
// @Tags imports
// @Produce json
// @Param type query string true "Upload type"
// @Success 200 {object} dto.ImportTemplate
// @Failure 400 {object} dto.ErrorResponse "Invalid upload type"
// @Router /imports/template [get]
func (c *ImportController) Template(ctx *gin.Context) {
	template, err := c.importService.Template(ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, template)
}
