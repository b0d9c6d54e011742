package services

import (
	"errors"
	"fmt"

	"github.com/edigitalnetwork/course-service/internal/media"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

// ===== SENTINEL ERRORS =====

var (
	// Catalog
	ErrProgramNotFound       = errors.New("program not found")
	ErrDuplicateProgramTitle = errors.New("program with this title already exists")
	ErrCourseNotFound        = errors.New("course not found")
	ErrDuplicateCourseCode   = errors.New("course with this code already exists")

	// Allocation
	ErrAllocationNotFound = errors.New("allocation not found")
	ErrLecturerNotFound   = errors.New("lecturer not found")

	// Registration
	ErrStudentNotFound   = errors.New("student profile not found")
	ErrNoCurrentSemester = errors.New("no current semester")

	// Calendar
	ErrSessionNotFound  = errors.New("session not found")
	ErrSemesterNotFound = errors.New("semester not found")
	ErrDuplicateSession = errors.New("session with this title already exists")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidSpreadsheet = errors.New("invalid spreadsheet")

	// Uploads
	ErrUploadNotFound = errors.New("file not found")
	ErrVideoNotFound  = errors.New("video not found")
	ErrInvalidUpload  = errors.New("invalid upload")
	ErrMediaHost      = media.ErrMediaHost
)

// ValidationErrors is re-exported so handlers only depend on services
type ValidationErrors = validator.ValidationErrors

// BusinessRuleError reports a request that is well formed but breaks a domain rule
type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Rule, e.Message)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

// uploadError wraps a file rejection so it matches ErrInvalidUpload and keeps the cause
type uploadError struct {
	cause error
}

func (e *uploadError) Error() string { return e.cause.Error() }

func (e *uploadError) Is(target error) bool { return target == ErrInvalidUpload }

func (e *uploadError) Unwrap() error { return e.cause }
