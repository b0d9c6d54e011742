package repositories

import (
	"context"

	"github.com/edigitalnetwork/course-service/internal/models"
)

type CalendarRepository interface {
	// GetCurrentSemester returns the semester flagged current with its Session preloaded
	GetCurrentSemester(ctx context.Context) (*models.Semester, error)
	GetSemesterByID(ctx context.Context, id uint) (*models.Semester, error)
	ListSemesters(ctx context.Context) ([]*models.Semester, error)
	CreateSemester(ctx context.Context, semester *models.Semester) error

	// SetCurrentSemester flags one semester current and clears every other
	SetCurrentSemester(ctx context.Context, id uint) error

	GetCurrentSession(ctx context.Context) (*models.Session, error)
	GetSessionByID(ctx context.Context, id uint) (*models.Session, error)
	CreateSession(ctx context.Context, session *models.Session) error

	// SetCurrentSession flags one session current and clears every other
	SetCurrentSession(ctx context.Context, id uint) error
}
