package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

type UploadHandler struct {
	BaseHandler
	service services.UploadService
}

func NewUploadHandler(service services.UploadService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== FILES =====

// UploadFile attaches a document to a course
// @Summary Upload a course file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Course slug"
// @Param title formData string true "Title"
// @Param summary formData string false "Summary"
// @Param file formData file true "Document"
// @Success 201 {object} models.Upload
// @Failure 400 {object} ErrorResponse "Invalid upload"
// @Failure 502 {object} ErrorResponse "Media host unavailable"
// @Router /courses/{slug}/files [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req, ok := h.bindUploadForm(c)
	if !ok {
		return
	}

	file, closeFile, ok := h.formFile(c, true)
	if !ok {
		return
	}
	defer closeFile()

	upload, err := h.service.UploadFile(c.Request.Context(), slug, req, file, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, upload)
}

// UpdateFile edits a course file and optionally replaces its content
// @Summary Update a course file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Course slug"
// @Param file_id path int true "File ID"
// @Success 200 {object} models.Upload
// @Router /courses/{slug}/files/{file_id} [put]
func (h *UploadHandler) UpdateFile(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "file_id")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req, ok := h.bindUploadForm(c)
	if !ok {
		return
	}

	file, closeFile, ok := h.formFile(c, false)
	if !ok {
		return
	}
	defer closeFile()

	upload, err := h.service.UpdateFile(c.Request.Context(), slug, id, req, file, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

// @Summary Delete a course file
// @Tags uploads
// @Param slug path string true "Course slug"
// @Param file_id path int true "File ID"
// @Success 204
// @Failure 502 {object} ErrorResponse "Media host unavailable"
// @Router /courses/{slug}/files/{file_id} [delete]
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "file_id")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteFile(c.Request.Context(), slug, id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== VIDEOS =====

// UploadVideo attaches a video to a course
// @Summary Upload a course video
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "Course slug"
// @Param title formData string true "Title"
// @Param file formData file true "Video"
// @Success 201 {object} models.UploadVideo
// @Router /courses/{slug}/videos [post]
func (h *UploadHandler) UploadVideo(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req, ok := h.bindUploadForm(c)
	if !ok {
		return
	}

	file, closeFile, ok := h.formFile(c, true)
	if !ok {
		return
	}
	defer closeFile()

	video, err := h.service.UploadVideo(c.Request.Context(), slug, req, file, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// @Summary Get a course video
// @Tags uploads
// @Produce json
// @Param slug path string true "Course slug"
// @Param video_slug path string true "Video slug"
// @Success 200 {object} models.UploadVideo
// @Router /courses/{slug}/videos/{video_slug} [get]
func (h *UploadHandler) GetVideo(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	videoSlug, ok := h.parseSlugParam(c, "video_slug")
	if !ok {
		return
	}

	video, err := h.service.GetVideo(c.Request.Context(), slug, videoSlug)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// UpdateVideo edits a video's title or summary
// @Summary Update a course video
// @Tags uploads
// @Accept json
// @Produce json
// @Param slug path string true "Course slug"
// @Param video_slug path string true "Video slug"
// @Param request body services.UploadRequest true "Video fields"
// @Success 200 {object} models.UploadVideo
// @Router /courses/{slug}/videos/{video_slug} [put]
func (h *UploadHandler) UpdateVideo(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	videoSlug, ok := h.parseSlugParam(c, "video_slug")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req, ok := h.bindUploadForm(c)
	if !ok {
		return
	}

	video, err := h.service.UpdateVideo(c.Request.Context(), slug, videoSlug, req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// @Summary Delete a course video
// @Tags uploads
// @Param slug path string true "Course slug"
// @Param video_slug path string true "Video slug"
// @Success 204
// @Router /courses/{slug}/videos/{video_slug} [delete]
func (h *UploadHandler) DeleteVideo(c *gin.Context) {
	slug, ok := h.parseSlugParam(c, "slug")
	if !ok {
		return
	}

	videoSlug, ok := h.parseSlugParam(c, "video_slug")
	if !ok {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVideo(c.Request.Context(), slug, videoSlug, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== HELPER METHODS =====

// bindUploadForm reads title and summary from a multipart form or a JSON body
func (h *UploadHandler) bindUploadForm(c *gin.Context) (*services.UploadRequest, bool) {
	var req services.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeBindError(c, err)
		return nil, false
	}
	return &req, true
}

// formFile opens the "file" part. A missing part is an error only when required.
func (h *UploadHandler) formFile(c *gin.Context, required bool) (*services.FileInput, func(), bool) {
	noop := func() {}

	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) && !required {
			return nil, noop, true
		}
		h.writeBindError(c, err)
		return nil, noop, false
	}

	file, err := header.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded file", "file", header.Filename)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   err.Error(),
			Message: "Invalid upload",
		})
		return nil, noop, false
	}

	return newFileInput(header, file), func() { _ = file.Close() }, true
}

func (h *UploadHandler) writeBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "file too large",
			Message: "Invalid upload",
		})
		return
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   err.Error(),
		Message: "Invalid upload",
	})
}

func newFileInput(header *multipart.FileHeader, file multipart.File) *services.FileInput {
	return &services.FileInput{
		Name:   header.Filename,
		Size:   header.Size,
		Reader: file,
	}
}
