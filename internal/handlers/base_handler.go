package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

type ErrorResponse = models.ErrorResponse

type SuccessResponse = models.SuccessResponse

// BaseHandler carries the logger shared by every handler
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs through the request scoped logger so lines carry the request id
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// ===== HELPER METHODS =====

// requireUserID writes a 401 when the auth middleware did not set a user
func (h *BaseHandler) requireUserID(c *gin.Context) (string, bool) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return "", false
	}
	return userID, true
}

func (h *BaseHandler) parseIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID must be a valid number",
		})
		return 0, false
	}
	return uint(id), true
}

func (h *BaseHandler) parseSlugParam(c *gin.Context, param string) (string, bool) {
	value := strings.TrimSpace(c.Param(param))
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "slug cannot be empty",
		})
		return "", false
	}
	return value, true
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// bindCourseIDs accepts course_ids as a JSON body or as repeated form values
func (h *BaseHandler) bindCourseIDs(c *gin.Context) (*services.CourseIDsRequest, bool) {
	var req services.CourseIDsRequest
	var err error
	if c.ContentType() == gin.MIMEJSON {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBind(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return nil, false
	}
	return &req, true
}

// ===== ERROR HANDLING =====

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrProgramNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrAllocationNotFound),
		errors.Is(err, services.ErrLecturerNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrSemesterNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUploadNotFound),
		errors.Is(err, services.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrDuplicateProgramTitle),
		errors.Is(err, services.ErrDuplicateCourseCode),
		errors.Is(err, services.ErrDuplicateSession):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNoCurrentSemester):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "No semester is currently open for registration",
		})
	case errors.Is(err, services.ErrInvalidUpload):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   err.Error(),
			Message: "Invalid upload",
		})
	case errors.Is(err, services.ErrInvalidSpreadsheet):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid spreadsheet",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrMediaHost):
		h.LogError(c, err, "Media host request failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   err.Error(),
			Message: "Media host unavailable",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
