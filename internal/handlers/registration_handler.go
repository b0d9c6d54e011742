package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RegistrationHandler struct {
	BaseHandler
	service      services.RegistrationService
	importExport services.ImportExportService
}

func NewRegistrationHandler(service services.RegistrationService, importExport services.ImportExportService, logger utils.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler:  NewBaseHandler(logger),
		service:      service,
		importExport: importExport,
	}
}

// GetRegistration lists the courses the student may still register for this semester
// @Summary Course registration listing
// @Tags registration
// @Produce json
// @Success 200 {object} services.RegistrationListing
// @Failure 404 {object} ErrorResponse "Student profile not found"
// @Failure 409 {object} ErrorResponse "No current semester"
// @Router /course-registration [get]
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	listing, err := h.service.GetListing(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Register records the submitted courses. Courses already taken are reported as skipped.
// @Summary Register for courses
// @Tags registration
// @Accept json
// @Produce json
// @Param request body services.CourseIDsRequest true "Course IDs"
// @Success 200 {object} services.RegistrationResult
// @Router /course-registration [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req, ok := h.bindCourseIDs(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Registering courses", "user_id", userID, "count", len(req.CourseIDs))

	result, err := h.service.Register(c.Request.Context(), userID, req.CourseIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Drop removes the given courses from the student's registrations
// @Summary Drop courses
// @Tags registration
// @Accept json
// @Produce json
// @Param request body services.CourseIDsRequest true "Course IDs"
// @Success 200 {object} services.DropResult
// @Router /course-drop [post]
func (h *RegistrationHandler) Drop(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req, ok := h.bindCourseIDs(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Dropping courses", "user_id", userID, "count", len(req.CourseIDs))

	result, err := h.service.Drop(c.Request.Context(), userID, req.CourseIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportSlip downloads the registration slip as an xlsx workbook
// @Summary Download registration slip
// @Tags registration
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /course-registration/export [get]
func (h *RegistrationHandler) ExportSlip(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	// Buffer the workbook so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.importExport.ExportRegistrationSlip(c.Request.Context(), userID, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("registration-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
