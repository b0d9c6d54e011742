package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

type allocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) repositories.AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) Upsert(ctx context.Context, lecturerID string, sessionID *uint) (*models.CourseAllocation, error) {
	var allocation models.CourseAllocation

	if err := r.db.WithContext(ctx).
		Where(models.CourseAllocation{LecturerID: lecturerID}).
		Attrs(models.CourseAllocation{SessionID: sessionID}).
		FirstOrCreate(&allocation).Error; err != nil {
		return nil, handleDBError(err, "upsert course allocation")
	}

	if sessionID != nil && (allocation.SessionID == nil || *allocation.SessionID != *sessionID) {
		if err := r.db.WithContext(ctx).Model(&allocation).Update("session_id", *sessionID).Error; err != nil {
			return nil, handleDBError(err, "update allocation session")
		}
		allocation.SessionID = sessionID
	}

	return &allocation, nil
}

func (r *allocationRepository) GetByID(ctx context.Context, id uint) (*models.CourseAllocation, error) {
	var allocation models.CourseAllocation
	if err := r.preloaded(ctx).First(&allocation, id).Error; err != nil {
		return nil, handleDBError(err, "get course allocation by id")
	}
	return &allocation, nil
}

func (r *allocationRepository) GetByLecturer(ctx context.Context, lecturerID string) (*models.CourseAllocation, error) {
	var allocation models.CourseAllocation
	if err := r.preloaded(ctx).Where("lecturer_id = ?", lecturerID).First(&allocation).Error; err != nil {
		return nil, handleDBError(err, "get course allocation by lecturer")
	}
	return &allocation, nil
}

func (r *allocationRepository) List(ctx context.Context, filters repositories.AllocationFilters) ([]*models.CourseAllocation, int64, error) {
	var allocations []*models.CourseAllocation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CourseAllocation{})
	if filters.LecturerID != nil {
		query = query.Where("lecturer_id = ?", *filters.LecturerID)
	}
	if filters.SessionID != nil {
		query = query.Where("session_id = ?", *filters.SessionID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count course allocations")
	}

	query = applyPaginationAndSorting(query, map[string]string{"created_at": "created_at"}, "created_at",
		filters.Limit, filters.Offset, "created_at", "asc")

	if err := query.
		Preload("Lecturer").
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("courses.code ASC")
		}).
		Preload("Session").
		Find(&allocations).Error; err != nil {
		return nil, 0, handleDBError(err, "list course allocations")
	}

	return allocations, total, nil
}

func (r *allocationRepository) Delete(ctx context.Context, id uint) error {
	allocation := models.CourseAllocation{ID: id}
	if err := r.db.WithContext(ctx).Model(&allocation).Association("Courses").Clear(); err != nil {
		return handleDBError(err, "clear allocation courses")
	}

	result := r.db.WithContext(ctx).Delete(&models.CourseAllocation{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete course allocation")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete course allocation")
	}
	return nil
}

// ===== ALLOCATION-COURSE RELATIONSHIP OPERATIONS =====

func (r *allocationRepository) AddCourses(ctx context.Context, allocationID uint, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	allocation := models.CourseAllocation{ID: allocationID}
	if err := r.db.WithContext(ctx).Model(&allocation).Association("Courses").Append(courses); err != nil {
		return handleDBError(err, "add courses to allocation")
	}
	return nil
}

func (r *allocationRepository) ReplaceCourses(ctx context.Context, allocationID uint, courses []*models.Course) error {
	allocation := models.CourseAllocation{ID: allocationID}
	if err := r.db.WithContext(ctx).Model(&allocation).Association("Courses").Replace(courses); err != nil {
		return handleDBError(err, "replace allocation courses")
	}
	return nil
}

func (r *allocationRepository) LecturersForCourse(ctx context.Context, courseID uint) ([]*models.User, error) {
	var lecturers []*models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("INNER JOIN course_allocations ca ON ca.lecturer_id = users.id").
		Joins("INNER JOIN course_allocation_courses cac ON cac.course_allocation_id = ca.id").
		Where("cac.course_id = ?", courseID).
		Order("users.full_name ASC").
		Find(&lecturers).Error; err != nil {
		return nil, handleDBError(err, "get lecturers for course")
	}
	return lecturers, nil
}

// ===== HELPER METHODS =====

func (r *allocationRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lecturer").
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("courses.code ASC")
		}).
		Preload("Session")
}
