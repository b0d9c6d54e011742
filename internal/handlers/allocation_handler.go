package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

type AllocationHandler struct {
	BaseHandler
	service services.AllocationService
}

func NewAllocationHandler(service services.AllocationService, logger utils.Logger) *AllocationHandler {
	return &AllocationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListAllocations lists course allocations
// @Summary List allocations
// @Tags allocations
// @Produce json
// @Param lecturer_id query string false "Lecturer"
// @Param session_id query int false "Session"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} services.AllocationListResponse
// @Router /allocations [get]
func (h *AllocationHandler) ListAllocations(c *gin.Context) {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	filters := repositories.AllocationFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}
	if lecturerID := c.Query("lecturer_id"); lecturerID != "" {
		filters.LecturerID = &lecturerID
	}
	if sessionStr := c.Query("session_id"); sessionStr != "" {
		sessionID, err := strconv.ParseUint(sessionStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid session_id",
				Details: err.Error(),
			})
			return
		}
		id := uint(sessionID)
		filters.SessionID = &id
	}

	response, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateAllocation adds courses to a lecturer's allocation, creating it on first use
// @Summary Allocate courses to a lecturer
// @Tags allocations
// @Accept json
// @Produce json
// @Param request body services.AllocationRequest true "Allocation"
// @Success 200 {object} models.CourseAllocation
// @Failure 404 {object} ErrorResponse "Lecturer or course not found"
// @Router /allocations [post]
func (h *AllocationHandler) CreateAllocation(c *gin.Context) {
	var req services.AllocationRequest
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

	allocation, err := h.service.Allocate(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, allocation)
}

// @Summary Get an allocation
// @Tags allocations
// @Produce json
// @Param id path int true "Allocation ID"
// @Success 200 {object} models.CourseAllocation
// @Router /allocations/{id} [get]
func (h *AllocationHandler) GetAllocation(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	allocation, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, allocation)
}

// UpdateAllocation replaces the allocation's courses
// @Summary Replace allocated courses
// @Tags allocations
// @Accept json
// @Produce json
// @Param id path int true "Allocation ID"
// @Param request body services.CourseIDsRequest true "Course IDs"
// @Success 200 {object} models.CourseAllocation
// @Router /allocations/{id} [put]
func (h *AllocationHandler) UpdateAllocation(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	req, ok := h.bindCourseIDs(c)
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	allocation, err := h.service.Update(c.Request.Context(), id, req.CourseIDs, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, allocation)
}

// @Summary Delete an allocation
// @Tags allocations
// @Param id path int true "Allocation ID"
// @Success 204
// @Router /allocations/{id} [delete]
func (h *AllocationHandler) DeleteAllocation(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MyCourses returns the caller's allocated or registered courses depending on role
// @Summary Courses of the current user
// @Tags allocations
// @Produce json
// @Success 200 {object} services.UserCourseList
// @Router /my-courses [get]
func (h *AllocationHandler) MyCourses(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	courses, err := h.service.UserCourses(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}
