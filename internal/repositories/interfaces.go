package repositories

import (
	"github.com/edigitalnetwork/course-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ProgramFilters struct {
	Title     string `json:"title"` // case-insensitive contains
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "title", "created_at"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type CourseFilters struct {
	ProgramID  *uint               `json:"program_id"`
	Level      *string             `json:"level"`
	Semester   *models.SemesterTag `json:"semester"`
	ExcludeIDs []uint              `json:"exclude_ids"`
	Query      string              `json:"query"` // title or code contains
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
	SortBy     string              `json:"sort_by"` // "year", "code", "title", "credit", "created_at"
	SortOrder  string              `json:"sort_order"`
}

type AllocationFilters struct {
	LecturerID *string `json:"lecturer_id"`
	SessionID  *uint   `json:"session_id"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
}

// UserFilters defines filters for user queries
type UserFilters struct {
	Role   *models.UserRole // Restrict to one role
	Query  string           // Search query for name or email
	Limit  int              // Page size
	Offset int              // Offset for pagination
}
