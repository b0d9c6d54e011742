package services

import (
	"context"
	"io"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateProgramRequest = validator.ProgramRequest
type UpdateProgramRequest = validator.ProgramRequest
type CreateCourseRequest = validator.CourseRequest
type UpdateCourseRequest = validator.CourseRequest
type CourseIDsRequest = validator.CourseIDsRequest
type AllocationRequest = validator.AllocationRequest
type UploadRequest = validator.UploadRequest
type StudentProfileRequest = validator.StudentProfileRequest
type CreateSessionRequest = validator.SessionRequest
type CreateSemesterRequest = validator.SemesterRequest

// ProgramPageSize is the number of courses shown per page on a program detail
const ProgramPageSize = 10

type ProgramListResponse struct {
	Programs []*models.Program `json:"programs"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

type ProgramDetail struct {
	Program    *models.Program `json:"program"`
	Courses    []*models.Course `json:"courses"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	TotalCount int64            `json:"total_count"`
	CreditSum  int              `json:"credit_sum"`
}

type CourseDetail struct {
	Course    *models.Course        `json:"course"`
	Files     []*models.Upload      `json:"files"`
	Videos    []*models.UploadVideo `json:"videos"`
	Lecturers []*models.User        `json:"lecturers"`
}

type AllocationListResponse struct {
	Allocations []*models.CourseAllocation `json:"allocations"`
	Total       int64                      `json:"total"`
	Page        int                        `json:"page"`
	Size        int                        `json:"size"`
}

// UserCourseList is what GET /my-courses returns for the caller's role
type UserCourseList struct {
	Role    models.UserRole        `json:"role"`
	Taken   []models.CourseSummary `json:"taken_courses,omitempty"`
	Courses []models.CourseSummary `json:"courses"`
}

// RegistrationListing is the state of a student's registration form for the current semester
type RegistrationListing struct {
	CurrentSemester string                 `json:"current_semester"`
	CurrentSession  string                 `json:"current_session,omitempty"`
	Student         *models.Student        `json:"student"`
	Courses         []models.CourseSummary `json:"courses"`
	Registered      []models.CourseSummary `json:"registered_courses"`

	TotalFirstSemesterCredit  int  `json:"total_first_semester_credit"`
	TotalSecondSemesterCredit int  `json:"total_sec_semester_credit"`
	TotalRegisteredCredit     int  `json:"total_registered_credit"`
	NoCourseIsRegistered      bool `json:"no_course_is_registered"`
	AllCoursesAreRegistered   bool `json:"all_courses_are_registered"`
}

type RegistrationResult struct {
	Registered []uint `json:"registered"`
	Skipped    []uint `json:"skipped"`
}

type DropResult struct {
	Removed int64 `json:"removed"`
}

// FileInput is an uploaded file as received from a multipart form
type FileInput struct {
	Name   string
	Size   int64
	Reader io.ReadSeeker
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Created []models.CourseSummary `json:"created"`
	Errors  []ImportRowError       `json:"errors"`
}

// ===== SERVICE INTERFACES =====

type ProgramService interface {
	List(ctx context.Context, filters repositories.ProgramFilters) (*ProgramListResponse, error)
	Create(ctx context.Context, req *CreateProgramRequest, userID string) (*models.Program, error)
	GetDetail(ctx context.Context, id uint, page int) (*ProgramDetail, error)
	Update(ctx context.Context, id uint, req *UpdateProgramRequest, userID string) (*models.Program, error)
	Delete(ctx context.Context, id uint, userID string) error
}

type CourseService interface {
	Create(ctx context.Context, programID uint, req *CreateCourseRequest, userID string) (*models.Course, error)
	GetBySlug(ctx context.Context, slug string) (*CourseDetail, error)
	Update(ctx context.Context, slug string, req *UpdateCourseRequest, userID string) (*models.Course, error)
	Delete(ctx context.Context, slug string, userID string) error
}

type AllocationService interface {
	// Allocate unions the courses into the lecturer's allocation
	Allocate(ctx context.Context, req *AllocationRequest, userID string) (*models.CourseAllocation, error)
	List(ctx context.Context, filters repositories.AllocationFilters) (*AllocationListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.CourseAllocation, error)

	// Update replaces the allocation's course set
	Update(ctx context.Context, id uint, courseIDs []uint, userID string) (*models.CourseAllocation, error)
	Delete(ctx context.Context, id uint, userID string) error

	UserCourses(ctx context.Context, userID string) (*UserCourseList, error)
}

type RegistrationService interface {
	GetListing(ctx context.Context, userID string) (*RegistrationListing, error)
	Register(ctx context.Context, userID string, courseIDs []uint) (*RegistrationResult, error)
	Drop(ctx context.Context, userID string, courseIDs []uint) (*DropResult, error)
}

type UploadService interface {
	UploadFile(ctx context.Context, courseSlug string, req *UploadRequest, file *FileInput, userID string) (*models.Upload, error)
	UpdateFile(ctx context.Context, courseSlug string, id uint, req *UploadRequest, file *FileInput, userID string) (*models.Upload, error)
	DeleteFile(ctx context.Context, courseSlug string, id uint, userID string) error

	UploadVideo(ctx context.Context, courseSlug string, req *UploadRequest, file *FileInput, userID string) (*models.UploadVideo, error)
	GetVideo(ctx context.Context, courseSlug, videoSlug string) (*models.UploadVideo, error)
	UpdateVideo(ctx context.Context, courseSlug, videoSlug string, req *UploadRequest, userID string) (*models.UploadVideo, error)
	DeleteVideo(ctx context.Context, courseSlug, videoSlug string, userID string) error
}

type CalendarService interface {
	CurrentSemester(ctx context.Context) (*models.Semester, error)
	ListSemesters(ctx context.Context) ([]*models.Semester, error)
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*models.Session, error)
	CreateSemester(ctx context.Context, req *CreateSemesterRequest) (*models.Semester, error)
	SetCurrentSemester(ctx context.Context, id uint) (*models.Semester, error)
}

type StudentService interface {
	GetProfile(ctx context.Context, userID string) (*models.Student, error)
	UpsertProfile(ctx context.Context, req *StudentProfileRequest) (*models.Student, error)
}

type ImportExportService interface {
	// ImportCourses reads courses from the first sheet of an xlsx workbook
	ImportCourses(ctx context.Context, programID uint, r io.Reader, userID string) (*ImportResult, error)

	// ExportRegistrationSlip writes the student's registered courses as an xlsx workbook
	ExportRegistrationSlip(ctx context.Context, userID string, w io.Writer) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Program() ProgramService
	Course() CourseService
	Allocation() AllocationService
	Registration() RegistrationService
	Upload() UploadService
	Calendar() CalendarService
	Student() StudentService

	// Additional service getters
	ImportExport() ImportExportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
