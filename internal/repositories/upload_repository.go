package repositories

import (
	"context"

	"github.com/edigitalnetwork/course-service/internal/models"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *models.Upload) error
	GetByID(ctx context.Context, courseID, id uint) (*models.Upload, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Upload, error)
	Update(ctx context.Context, upload *models.Upload) error
	Delete(ctx context.Context, id uint) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *models.UploadVideo) error
	GetBySlug(ctx context.Context, courseID uint, slug string) (*models.UploadVideo, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.UploadVideo, error)
	Update(ctx context.Context, video *models.UploadVideo) error
	Delete(ctx context.Context, id uint) error
}
