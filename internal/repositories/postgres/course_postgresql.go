package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edigitalnetwork/course-service/internal/cache"
	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

var courseSortColumns = map[string]string{
	"year":       "year",
	"code":       "code",
	"title":      "title",
	"credit":     "credit",
	"created_at": "created_at",
	"id":         "id",
}

// ===== BASIC CRUD OPERATIONS =====

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Omit("Program", "Allocations").Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	cache.InvalidateProgramCache(ctx, c.cacheManager, course.ProgramID)
	return nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course by id")
	}
	return &course, nil
}

// GetBySlug retrieves a course with its program, cached by slug
func (c *CoursePostgreSQL) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cache.CourseSlugKey(slug), &course, func() (interface{}, error) {
		var dbCourse models.Course
		if err := c.db.WithContext(ctx).
			Preload("Program").
			Where("slug = ?", slug).
			First(&dbCourse).Error; err != nil {
			return nil, handleDBError(err, "get course by slug")
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (c *CoursePostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.Course, error) {
	var courses []*models.Course
	if len(ids) == 0 {
		return courses, nil
	}
	if err := c.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&courses).Error; err != nil {
		return nil, handleDBError(err, "get courses by ids")
	}
	return courses, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	var previous models.Course
	if err := c.db.WithContext(ctx).Select("id, slug, program_id").First(&previous, course.ID).Error; err != nil {
		return handleDBError(err, "get course before update")
	}

	if err := c.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"slug":        course.Slug,
		"title":       course.Title,
		"code":        course.Code,
		"credit":      course.Credit,
		"summary":     course.Summary,
		"level":       course.Level,
		"year":        course.Year,
		"semester":    course.Semester,
		"is_elective": course.IsElective,
	}).Error; err != nil {
		return handleDBError(err, "update course")
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, previous.Slug, previous.ProgramID)
	if previous.Slug != course.Slug {
		cache.SafeDelete(ctx, c.cacheManager.Course, cache.CourseSlugKey(course.Slug))
	}
	return nil
}

// Delete clears the allocation links before removing the row. TakenCourse, Upload and
// UploadVideo rows are removed by their ON DELETE CASCADE foreign keys. Callers run it
// inside WithTransaction so the links survive a failed delete.
func (c *CoursePostgreSQL) Delete(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Model(course).Association("Allocations").Clear(); err != nil {
		return handleDBError(err, "clear course allocations")
	}

	result := c.db.WithContext(ctx).Delete(&models.Course{}, course.ID)
	if result.Error != nil {
		return handleDBError(result.Error, "delete course")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete course")
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, course.Slug, course.ProgramID)
	return nil
}

// ===== QUERY OPERATIONS =====

func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	query := c.applyFilters(c.db.WithContext(ctx).Model(&models.Course{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count courses")
	}

	query = applyPaginationAndSorting(query, courseSortColumns, "year", filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	// Stable order inside one year
	query = query.Order("id ASC")

	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, handleDBError(err, "list courses")
	}

	return courses, total, nil
}

func (c *CoursePostgreSQL) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Course{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check course slug")
	}
	return count > 0, nil
}

func (c *CoursePostgreSQL) ExistsByCode(ctx context.Context, code string, excludeID *uint) (bool, error) {
	var count int64
	query := c.db.WithContext(ctx).Model(&models.Course{}).Where("UPPER(code) = UPPER(?)", code)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, handleDBError(err, "check course code")
	}
	return count > 0, nil
}

// ===== HELPER METHODS =====

func (c *CoursePostgreSQL) applyFilters(query *gorm.DB, filters repositories.CourseFilters) *gorm.DB {
	if filters.ProgramID != nil {
		query = query.Where("program_id = ?", *filters.ProgramID)
	}
	if filters.Level != nil {
		query = query.Where("level = ?", *filters.Level)
	}
	if filters.Semester != nil {
		query = query.Where("semester = ?", *filters.Semester)
	}
	if len(filters.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filters.ExcludeIDs)
	}
	if filters.Query != "" {
		pattern := containsPattern(filters.Query)
		query = query.Where("title ILIKE ? OR code ILIKE ?", pattern, pattern)
	}
	return query
}
