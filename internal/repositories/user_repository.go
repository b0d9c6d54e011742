package repositories

import (
	"context"

	"github.com/edigitalnetwork/course-service/internal/models"
)

// UserRepository stores the local copy of identity provider accounts
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Upsert creates the user or refreshes name, email, avatar and role
	Upsert(ctx context.Context, user *models.User) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
}

// StudentRepository stores academic profiles
type StudentRepository interface {
	// GetByUserID returns the profile with User and Department preloaded
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)

	// Upsert creates the profile or updates level and department
	Upsert(ctx context.Context, student *models.Student) error
}
