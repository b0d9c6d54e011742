package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/services"
)

// fakeUploadService records what the handler passed through
type fakeUploadService struct {
	gotSlug    string
	gotID      uint
	gotTitle   string
	gotFile    *services.FileInput
	gotContent []byte
	err        error
}

func (s *fakeUploadService) record(slug string, req *services.UploadRequest, file *services.FileInput) error {
	s.gotSlug, s.gotFile = slug, file
	if req != nil {
		s.gotTitle = req.Title
	}
	if file != nil {
		data, err := io.ReadAll(file.Reader)
		if err != nil {
			return err
		}
		s.gotContent = data
	}
	return s.err
}

func (s *fakeUploadService) UploadFile(ctx context.Context, courseSlug string, req *services.UploadRequest, file *services.FileInput, userID string) (*models.Upload, error) {
	if err := s.record(courseSlug, req, file); err != nil {
		return nil, err
	}
	return &models.Upload{ID: 1, Title: req.Title, FileName: file.Name}, nil
}

func (s *fakeUploadService) UpdateFile(ctx context.Context, courseSlug string, id uint, req *services.UploadRequest, file *services.FileInput, userID string) (*models.Upload, error) {
	s.gotID = id
	if err := s.record(courseSlug, req, file); err != nil {
		return nil, err
	}
	return &models.Upload{ID: id, Title: req.Title}, nil
}

func (s *fakeUploadService) DeleteFile(ctx context.Context, courseSlug string, id uint, userID string) error {
	s.gotSlug, s.gotID = courseSlug, id
	return s.err
}

func (s *fakeUploadService) UploadVideo(ctx context.Context, courseSlug string, req *services.UploadRequest, file *services.FileInput, userID string) (*models.UploadVideo, error) {
	if err := s.record(courseSlug, req, file); err != nil {
		return nil, err
	}
	return &models.UploadVideo{ID: 2, Title: req.Title}, nil
}

func (s *fakeUploadService) GetVideo(ctx context.Context, courseSlug, videoSlug string) (*models.UploadVideo, error) {
	return &models.UploadVideo{Slug: videoSlug}, s.err
}

func (s *fakeUploadService) UpdateVideo(ctx context.Context, courseSlug, videoSlug string, req *services.UploadRequest, userID string) (*models.UploadVideo, error) {
	if err := s.record(courseSlug, req, nil); err != nil {
		return nil, err
	}
	return &models.UploadVideo{Slug: videoSlug, Title: req.Title}, nil
}

func (s *fakeUploadService) DeleteVideo(ctx context.Context, courseSlug, videoSlug string, userID string) error {
	s.gotSlug = courseSlug
	return s.err
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return body, writer.FormDataContentType()
}

func newUploadRouter(service *fakeUploadService, maxBytes int64) *gin.Engine {
	h := NewUploadHandler(service, testLogger())

	router := gin.New()
	router.Use(asUser("lec-1"))
	bodyLimit := BodyLimitMiddleware(maxBytes)
	router.POST("/courses/:slug/files", bodyLimit, h.UploadFile)
	router.PUT("/courses/:slug/files/:file_id", bodyLimit, h.UpdateFile)
	router.DELETE("/courses/:slug/files/:file_id", h.DeleteFile)
	router.PUT("/courses/:slug/videos/:video_slug", h.UpdateVideo)
	return router
}

func TestUploadHandler_UploadFile(t *testing.T) {
	service := &fakeUploadService{}
	router := newUploadRouter(service, 1<<20)

	body, contentType := multipartBody(t, map[string]string{"title": "Week 1"}, "notes.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/courses/csc101/files", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	if service.gotSlug != "csc101" || service.gotTitle != "Week 1" {
		t.Errorf("slug = %q, title = %q", service.gotSlug, service.gotTitle)
	}
	if service.gotFile.Name != "notes.pdf" || string(service.gotContent) != "%PDF-1.4" {
		t.Errorf("file = %q with %q", service.gotFile.Name, service.gotContent)
	}
	if service.gotFile.Size != int64(len("%PDF-1.4")) {
		t.Errorf("Size = %d", service.gotFile.Size)
	}
}

func TestUploadHandler_UploadFileErrors(t *testing.T) {
	tests := []struct {
		name       string
		fileName   string
		content    []byte
		maxBytes   int64
		serviceErr error
		wantStatus int
	}{
		{name: "missing file", wantStatus: http.StatusBadRequest, maxBytes: 1 << 20},
		{name: "rejected by service", fileName: "run.exe", content: []byte("MZ"), maxBytes: 1 << 20, serviceErr: services.ErrInvalidUpload, wantStatus: http.StatusBadRequest},
		{name: "media host down", fileName: "notes.pdf", content: []byte("%PDF"), maxBytes: 1 << 20, serviceErr: services.ErrMediaHost, wantStatus: http.StatusBadGateway},
		{name: "unknown course", fileName: "notes.pdf", content: []byte("%PDF"), maxBytes: 1 << 20, serviceErr: services.ErrCourseNotFound, wantStatus: http.StatusNotFound},
		{name: "body over limit", fileName: "big.pdf", content: bytes.Repeat([]byte("a"), 3<<20), maxBytes: 1024, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeUploadService{err: tt.serviceErr}
			router := newUploadRouter(service, tt.maxBytes)

			body, contentType := multipartBody(t, map[string]string{"title": "Notes"}, tt.fileName, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/courses/csc101/files", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUploadHandler_UpdateFileWithoutNewFile(t *testing.T) {
	service := &fakeUploadService{}
	router := newUploadRouter(service, 1<<20)

	body, contentType := multipartBody(t, map[string]string{"title": "Renamed"}, "", nil)
	req := httptest.NewRequest(http.MethodPut, "/courses/csc101/files/9", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if service.gotID != 9 || service.gotFile != nil || service.gotTitle != "Renamed" {
		t.Errorf("id = %d, file = %v, title = %q", service.gotID, service.gotFile, service.gotTitle)
	}
}

func TestUploadHandler_DeleteFile(t *testing.T) {
	tests := []struct {
		path       string
		serviceErr error
		wantStatus int
	}{
		{path: "/courses/csc101/files/3", wantStatus: http.StatusNoContent},
		{path: "/courses/csc101/files/abc", wantStatus: http.StatusBadRequest},
		{path: "/courses/csc101/files/3", serviceErr: services.ErrUploadNotFound, wantStatus: http.StatusNotFound},
		{path: "/courses/csc101/files/3", serviceErr: services.ErrMediaHost, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		service := &fakeUploadService{err: tt.serviceErr}
		router := newUploadRouter(service, 1<<20)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.path, nil))
		if w.Code != tt.wantStatus {
			t.Errorf("DELETE %s with %v: status = %d, want %d", tt.path, tt.serviceErr, w.Code, tt.wantStatus)
		}
	}
}

func TestUploadHandler_UpdateVideoJSON(t *testing.T) {
	service := &fakeUploadService{}
	router := newUploadRouter(service, 1<<20)

	req := httptest.NewRequest(http.MethodPut, "/courses/csc101/videos/lecture-1-ab12", bytes.NewBufferString(`{"title":"Lecture One"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if service.gotTitle != "Lecture One" {
		t.Errorf("title = %q", service.gotTitle)
	}
}
