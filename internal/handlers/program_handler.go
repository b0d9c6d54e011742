package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

type ProgramHandler struct {
	BaseHandler
	service services.ProgramService
}

func NewProgramHandler(service services.ProgramService, logger utils.Logger) *ProgramHandler {
	return &ProgramHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListPrograms lists programs
// @Summary List programs
// @Tags programs
// @Produce json
// @Param title query string false "Title contains"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} services.ProgramListResponse
// @Router /programs [get]
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", services.ProgramPageSize)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = services.ProgramPageSize
	}

	filters := repositories.ProgramFilters{
		Title:     c.Query("title"),
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "title"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}

	response, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateProgram creates a program
// @Summary Create a program
// @Tags programs
// @Accept json
// @Produce json
// @Param request body services.CreateProgramRequest true "Program"
// @Success 201 {object} models.Program
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Title already exists"
// @Router /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req services.CreateProgramRequest
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

	program, err := h.service.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, program)
}

// GetProgram returns a program with a page of its courses and their credit sum
// @Summary Get program detail
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Param page query int false "Course page" default(1)
// @Success 200 {object} services.ProgramDetail
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /programs/{id} [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id, h.parseIntQuery(c, "page", 1))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateProgram edits a program
// @Summary Update a program
// @Tags programs
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Param request body services.UpdateProgramRequest true "Program"
// @Success 200 {object} models.Program
// @Router /programs/{id} [put]
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProgramRequest
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

	h.LogRequest(c, "Updating program", "program_id", id)

	program, err := h.service.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, program)
}

// DeleteProgram removes a program and its courses
// @Summary Delete a program
// @Tags programs
// @Param id path int true "Program ID"
// @Success 204
// @Router /programs/{id} [delete]
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting program", "program_id", id)

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
