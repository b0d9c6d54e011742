package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edigitalnetwork/course-service/internal/cache"
	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

type ProgramPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewProgramPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ProgramRepository {
	return &ProgramPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (p *ProgramPostgreSQL) Create(ctx context.Context, program *models.Program) error {
	if err := p.db.WithContext(ctx).Create(program).Error; err != nil {
		return handleDBError(err, "create program")
	}
	return nil
}

// GetByID retrieves a program by ID with caching
func (p *ProgramPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	var program models.Program

	err := p.cacheManager.Program.CacheOrExecute(ctx, cache.ProgramKey(id), &program, func() (interface{}, error) {
		var dbProgram models.Program
		if err := p.db.WithContext(ctx).First(&dbProgram, id).Error; err != nil {
			return nil, handleDBError(err, "get program by id")
		}
		return &dbProgram, nil
	})
	if err != nil {
		return nil, err
	}

	return &program, nil
}

func (p *ProgramPostgreSQL) Update(ctx context.Context, program *models.Program) error {
	result := p.db.WithContext(ctx).Model(&models.Program{}).Where("id = ?", program.ID).Updates(map[string]interface{}{
		"title":   program.Title,
		"summary": program.Summary,
	})
	if result.Error != nil {
		return handleDBError(result.Error, "update program")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update program")
	}

	cache.InvalidateProgramCache(ctx, p.cacheManager, program.ID)
	return nil
}

// Delete removes the program; its courses go with it through the foreign key cascade
func (p *ProgramPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := p.db.WithContext(ctx).Delete(&models.Program{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete program")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete program")
	}

	cache.InvalidateProgramCourses(ctx, p.cacheManager, id)
	return nil
}

// ===== QUERY OPERATIONS =====

func (p *ProgramPostgreSQL) List(ctx context.Context, filters repositories.ProgramFilters) ([]*models.Program, int64, error) {
	var programs []*models.Program
	var total int64

	query := p.db.WithContext(ctx).Model(&models.Program{})
	if filters.Title != "" {
		query = query.Where("programs.title ILIKE ?", containsPattern(filters.Title))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count programs")
	}

	query = query.
		Select("programs.*, COUNT(courses.id) AS course_count").
		Joins("LEFT JOIN courses ON courses.program_id = programs.id").
		Group("programs.id")

	query = applyPaginationAndSorting(query, map[string]string{
		"title":      "programs.title",
		"created_at": "programs.created_at",
		"id":         "programs.id",
	}, "programs.title", filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)

	if err := query.Find(&programs).Error; err != nil {
		return nil, 0, handleDBError(err, "list programs")
	}

	return programs, total, nil
}

func (p *ProgramPostgreSQL) ExistsByTitle(ctx context.Context, title string, excludeID *uint) (bool, error) {
	var count int64
	query := p.db.WithContext(ctx).Model(&models.Program{}).Where("LOWER(title) = LOWER(?)", title)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, handleDBError(err, "check program title")
	}
	return count > 0, nil
}

func (p *ProgramPostgreSQL) CreditSum(ctx context.Context, programID uint) (int, error) {
	var total int
	err := p.cacheManager.Program.CacheOrExecute(ctx, cache.ProgramCreditKey(programID), &total, func() (interface{}, error) {
		var sum int
		if err := p.db.WithContext(ctx).
			Model(&models.Course{}).
			Where("program_id = ?", programID).
			Select("COALESCE(SUM(credit), 0)").
			Scan(&sum).Error; err != nil {
			return nil, handleDBError(err, "sum program credit")
		}
		return sum, nil
	})
	return total, err
}
