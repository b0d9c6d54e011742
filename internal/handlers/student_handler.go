package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetMyProfile returns the caller's student profile
// @Summary Current student profile
// @Tags students
// @Produce json
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse "Student profile not found"
// @Router /students/me [get]
func (h *StudentHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	student, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// SaveProfile places a student account in a department and level
// @Summary Create or update a student profile
// @Tags students
// @Accept json
// @Produce json
// @Param request body services.StudentProfileRequest true "Profile"
// @Success 200 {object} models.Student
// @Failure 422 {object} ErrorResponse "User is not a student"
// @Router /students [post]
func (h *StudentHandler) SaveProfile(c *gin.Context) {
	var req services.StudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Saving student profile", "student_user_id", req.UserID)

	student, err := h.service.UpsertProfile(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}
