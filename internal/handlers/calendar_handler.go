package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

type CalendarHandler struct {
	BaseHandler
	service services.CalendarService
}

func NewCalendarHandler(service services.CalendarService, logger utils.Logger) *CalendarHandler {
	return &CalendarHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// @Summary List semesters
// @Tags calendar
// @Produce json
// @Success 200 {array} models.Semester
// @Router /semesters [get]
func (h *CalendarHandler) ListSemesters(c *gin.Context) {
	semesters, err := h.service.ListSemesters(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, semesters)
}

// @Summary Current semester
// @Tags calendar
// @Produce json
// @Success 200 {object} models.Semester
// @Failure 409 {object} ErrorResponse "No current semester"
// @Router /semesters/current [get]
func (h *CalendarHandler) CurrentSemester(c *gin.Context) {
	semester, err := h.service.CurrentSemester(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, semester)
}

// CreateSession opens an academic session
// @Summary Create a session
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body services.CreateSessionRequest true "Session"
// @Success 201 {object} models.Session
// @Failure 409 {object} ErrorResponse "Session already exists"
// @Router /sessions [post]
func (h *CalendarHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// CreateSemester opens a semester, attached to the current session when none is given
// @Summary Create a semester
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body services.CreateSemesterRequest true "Semester"
// @Success 201 {object} models.Semester
// @Router /semesters [post]
func (h *CalendarHandler) CreateSemester(c *gin.Context) {
	var req services.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	semester, err := h.service.CreateSemester(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, semester)
}

// @Summary Mark a semester as current
// @Tags calendar
// @Produce json
// @Param id path int true "Semester ID"
// @Success 200 {object} models.Semester
// @Router /semesters/{id}/current [post]
func (h *CalendarHandler) SetCurrentSemester(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Setting current semester", "semester_id", id)

	semester, err := h.service.SetCurrentSemester(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, semester)
}
