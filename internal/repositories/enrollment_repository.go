package repositories

import (
	"context"

	"github.com/edigitalnetwork/course-service/internal/models"
)

// AllocationRepository stores the lecturer to courses mapping
type AllocationRepository interface {
	// Upsert returns the lecturer's allocation, creating it when absent
	Upsert(ctx context.Context, lecturerID string, sessionID *uint) (*models.CourseAllocation, error)

	GetByID(ctx context.Context, id uint) (*models.CourseAllocation, error)
	GetByLecturer(ctx context.Context, lecturerID string) (*models.CourseAllocation, error)
	List(ctx context.Context, filters AllocationFilters) ([]*models.CourseAllocation, int64, error)
	Delete(ctx context.Context, id uint) error

	// AddCourses unions courses into the allocation; existing links are kept
	AddCourses(ctx context.Context, allocationID uint, courses []*models.Course) error

	// ReplaceCourses makes the allocation's course set exactly courses
	ReplaceCourses(ctx context.Context, allocationID uint, courses []*models.Course) error

	// LecturersForCourse returns every lecturer whose allocation contains the course
	LecturersForCourse(ctx context.Context, courseID uint) ([]*models.User, error)
}

// RegistrationRepository stores TakenCourse rows
type RegistrationRepository interface {
	// Create inserts one row per course id and returns the ids that were newly inserted.
	// Courses the student already holds are left untouched.
	Create(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error)

	// Delete removes the student's rows for the given courses and returns the course ids
	// whose rows were actually removed
	Delete(ctx context.Context, studentID uint, courseIDs []uint) ([]uint, error)

	// ListByStudent returns the student's registrations with Course preloaded
	ListByStudent(ctx context.Context, studentID uint) ([]*models.TakenCourse, error)

	CourseIDsByStudent(ctx context.Context, studentID uint) ([]uint, error)
}
