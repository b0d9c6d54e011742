package validator

import (
	"time"

	"github.com/edigitalnetwork/course-service/internal/models"
)

// ProgramRequest represents the request structure for creating and editing programs
type ProgramRequest struct {
	Title   string  `json:"title" validate:"required,catalog_title"`
	Summary *string `json:"summary" validate:"omitempty,max=2000"`
}

// CourseRequest represents the request structure for adding and editing courses
type CourseRequest struct {
	Title      string             `json:"title" validate:"required,catalog_title"`
	Code       string             `json:"code" validate:"required,course_code"`
	Credit     int                `json:"credit" validate:"gte=0,lte=30"`
	Summary    *string            `json:"summary" validate:"omitempty,max=2000"`
	Level      string             `json:"level" validate:"required,max=25"`
	Year       int                `json:"year" validate:"required,gte=1,lte=7"`
	Semester   models.SemesterTag `json:"semester" validate:"required,semester"`
	IsElective bool               `json:"is_elective"`
}

// CourseIDsRequest carries the course_ids list of registration, drop and allocation forms
type CourseIDsRequest struct {
	CourseIDs []uint `json:"course_ids" form:"course_ids" validate:"required,min=1,max=100,dive,gt=0"`
}

// AllocationRequest represents assigning courses to a lecturer
type AllocationRequest struct {
	LecturerID string `json:"lecturer_id" validate:"required,max=255"`
	CourseIDs  []uint `json:"course_ids" validate:"required,min=1,max=100,dive,gt=0"`
	SessionID  *uint  `json:"session_id"`
}

// UploadRequest represents the form fields of a file or video upload
type UploadRequest struct {
	Title   string  `json:"title" form:"title" validate:"required,min=1,max=100"`
	Summary *string `json:"summary" form:"summary" validate:"omitempty,max=2000"`
}

// StudentProfileRequest represents creating or updating a student profile
type StudentProfileRequest struct {
	UserID       string `json:"user_id" validate:"required,max=255"`
	FullName     string `json:"full_name" validate:"omitempty,max=100"`
	Email        string `json:"email" validate:"omitempty,email"`
	Level        string `json:"level" validate:"required,max=25"`
	DepartmentID uint   `json:"department_id" validate:"required"`
}

// SessionRequest represents creating an academic session
type SessionRequest struct {
	Title     string `json:"title" validate:"required,session_title"`
	IsCurrent bool   `json:"is_current"`
}

// SemesterRequest represents creating a semester
type SemesterRequest struct {
	Semester           models.SemesterTag `json:"semester" validate:"required,semester"`
	SessionID          *uint              `json:"session_id"`
	IsCurrent          bool               `json:"is_current"`
	NextSemesterBegins *time.Time         `json:"next_semester_begins"`
}
