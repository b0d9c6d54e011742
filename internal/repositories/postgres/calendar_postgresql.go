package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edigitalnetwork/course-service/internal/cache"
	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

type CalendarPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCalendarPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CalendarRepository {
	return &CalendarPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// ===== SEMESTERS =====

// GetCurrentSemester is read on every registration page, so it is cached briefly
func (c *CalendarPostgreSQL) GetCurrentSemester(ctx context.Context) (*models.Semester, error) {
	var semester models.Semester

	err := c.cacheManager.Calendar.CacheOrExecute(ctx, cache.CurrentSemesterKey, &semester, func() (interface{}, error) {
		var dbSemester models.Semester
		if err := c.db.WithContext(ctx).
			Preload("Session").
			Where("is_current = ?", true).
			Order("updated_at DESC").
			First(&dbSemester).Error; err != nil {
			return nil, handleDBError(err, "get current semester")
		}
		return &dbSemester, nil
	})
	if err != nil {
		return nil, err
	}

	return &semester, nil
}

func (c *CalendarPostgreSQL) GetSemesterByID(ctx context.Context, id uint) (*models.Semester, error) {
	var semester models.Semester
	if err := c.db.WithContext(ctx).Preload("Session").First(&semester, id).Error; err != nil {
		return nil, handleDBError(err, "get semester by id")
	}
	return &semester, nil
}

func (c *CalendarPostgreSQL) ListSemesters(ctx context.Context) ([]*models.Semester, error) {
	var semesters []*models.Semester
	if err := c.db.WithContext(ctx).
		Preload("Session").
		Order("created_at DESC").
		Find(&semesters).Error; err != nil {
		return nil, handleDBError(err, "list semesters")
	}
	return semesters, nil
}

func (c *CalendarPostgreSQL) CreateSemester(ctx context.Context, semester *models.Semester) error {
	if err := c.db.WithContext(ctx).Omit("Session").Create(semester).Error; err != nil {
		return handleDBError(err, "create semester")
	}
	cache.InvalidateCalendarCache(ctx, c.cacheManager)
	return nil
}

// SetCurrentSemester should run inside a transaction so the clear and the set land together
func (c *CalendarPostgreSQL) SetCurrentSemester(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).
		Model(&models.Semester{}).
		Where("id <> ? AND is_current = ?", id, true).
		Update("is_current", false).Error; err != nil {
		return handleDBError(err, "clear current semester")
	}

	result := c.db.WithContext(ctx).Model(&models.Semester{}).Where("id = ?", id).Update("is_current", true)
	if result.Error != nil {
		return handleDBError(result.Error, "set current semester")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "set current semester")
	}

	cache.InvalidateCalendarCache(ctx, c.cacheManager)
	return nil
}

// ===== SESSIONS =====

func (c *CalendarPostgreSQL) GetCurrentSession(ctx context.Context) (*models.Session, error) {
	var session models.Session
	if err := c.db.WithContext(ctx).Where("is_current = ?", true).Order("updated_at DESC").First(&session).Error; err != nil {
		return nil, handleDBError(err, "get current session")
	}
	return &session, nil
}

func (c *CalendarPostgreSQL) GetSessionByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := c.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, handleDBError(err, "get session by id")
	}
	return &session, nil
}

func (c *CalendarPostgreSQL) CreateSession(ctx context.Context, session *models.Session) error {
	if err := c.db.WithContext(ctx).Create(session).Error; err != nil {
		return handleDBError(err, "create session")
	}
	return nil
}

func (c *CalendarPostgreSQL) SetCurrentSession(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id <> ? AND is_current = ?", id, true).
		Update("is_current", false).Error; err != nil {
		return handleDBError(err, "clear current session")
	}

	result := c.db.WithContext(ctx).Model(&models.Session{}).Where("id = ?", id).Update("is_current", true)
	if result.Error != nil {
		return handleDBError(result.Error, "set current session")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "set current session")
	}

	cache.InvalidateCalendarCache(ctx, c.cacheManager)
	return nil
}
