package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         validator.ValidationErrors{{Field: "title", Message: "is required"}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
		},
		{
			name:        "business rule",
			err:         services.NewBusinessRuleError("student_role", "only students", nil),
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "only students",
		},
		{
			name:        "wrapped not found",
			err:         fmt.Errorf("%w: [7]", services.ErrCourseNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "course not found: [7]",
		},
		{
			name:        "lecturer not found",
			err:         services.ErrLecturerNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "lecturer not found",
		},
		{
			name:        "duplicate",
			err:         services.ErrDuplicateCourseCode,
			wantStatus:  http.StatusConflict,
			wantMessage: services.ErrDuplicateCourseCode.Error(),
		},
		{
			name:        "no current semester",
			err:         services.ErrNoCurrentSemester,
			wantStatus:  http.StatusConflict,
			wantMessage: "No semester is currently open for registration",
		},
		{
			name:        "invalid upload",
			err:         fmt.Errorf("bad file: %w", services.ErrInvalidUpload),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid upload",
		},
		{
			name:        "invalid spreadsheet",
			err:         fmt.Errorf("%w: missing code column", services.ErrInvalidSpreadsheet),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid spreadsheet",
		},
		{
			name:        "media host",
			err:         fmt.Errorf("failed to upload to media host: %w", services.ErrMediaHost),
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Media host unavailable",
		},
		{
			name:        "unexpected",
			err:         errors.New("connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBaseHandler(testLogger())
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleServiceError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		value  string
		want   uint
		wantOK bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			h := NewBaseHandler(testLogger())
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			got, ok := h.parseIDParam(c, "id")
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseIDParam(%q) = %d, %v, want %d, %v", tt.value, got, ok, tt.want, tt.wantOK)
			}
			if !ok && w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestRequireUserID(t *testing.T) {
	h := NewBaseHandler(testLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if _, ok := h.requireUserID(c); ok {
		t.Fatal("requireUserID() without user should fail")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", "stu-1")
	if id, ok := h.requireUserID(c); !ok || id != "stu-1" {
		t.Errorf("requireUserID() = %q, %v", id, ok)
	}
}
