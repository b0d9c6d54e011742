package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	service      services.CourseService
	importExport services.ImportExportService
}

func NewCourseHandler(service services.CourseService, importExport services.ImportExportService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:  NewBaseHandler(logger),
		service:      service,
		importExport: importExport,
	}
}

// CreateCourse adds a course to a program
// @Summary Add a course to a program
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param request body services.CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 404 {object} ErrorResponse "Program not found"
// @Failure 409 {object} ErrorResponse "Code already exists"
// @Router /programs/{id}/courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	programID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	course, err := h.service.Create(c.Request.Context(), programID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// ImportCourses creates courses from an uploaded xlsx workbook
// @Summary Import courses from a spreadsheet
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Program ID"
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} ErrorResponse "Invalid spreadsheet"
// @Router /programs/{id}/courses/import [post]
func (h *CourseHandler) ImportCourses(c *gin.Context) {
	programID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Spreadsheet file is required",
			Details: err.Error(),
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded spreadsheet")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Could not read spreadsheet",
		})
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing courses", "program_id", programID, "file", header.Filename)

	result, err := h.importExport.ImportCourses(c.Request.Context(), programID, file, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCourse returns a course with its files, videos and lecturers
// @Summary Get course detail
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} services.CourseDetail
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /courses/{slug} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	detail, err := h.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateCourse edits a course. The slug does not change.
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param slug path string true "Course slug"
// @Param request body services.UpdateCourseRequest true "Course"
// @Success 200 {object} models.Course
// @Router /courses/{slug} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	course, err := h.service.Update(c.Request.Context(), slug, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Summary Delete a course
// @Tags courses
// @Param slug path string true "Course slug"
// @Success 204
// @Router /courses/{slug} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting course", "slug", slug)

	if err := h.service.Delete(c.Request.Context(), slug, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
