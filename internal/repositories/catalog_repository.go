package repositories

import (
	"context"

	"github.com/edigitalnetwork/course-service/internal/models"
)

// ProgramRepository stores programs. A program is also a student's department.
type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id uint) (*models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id uint) error

	// List returns programs with CourseCount filled
	List(ctx context.Context, filters ProgramFilters) ([]*models.Program, int64, error)

	ExistsByTitle(ctx context.Context, title string, excludeID *uint) (bool, error)

	// CreditSum sums the credit of every course in the program
	CreditSum(ctx context.Context, programID uint) (int, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error

	// Delete removes the course together with its allocation links, registrations and uploads
	Delete(ctx context.Context, course *models.Course) error

	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)

	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByCode(ctx context.Context, code string, excludeID *uint) (bool, error)
}
