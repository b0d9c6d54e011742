package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
)

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) repositories.UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, upload *models.Upload) error {
	if err := r.db.WithContext(ctx).Omit("Course").Create(upload).Error; err != nil {
		return handleDBError(err, "create upload")
	}
	return nil
}

func (r *uploadRepository) GetByID(ctx context.Context, courseID, id uint) (*models.Upload, error) {
	var upload models.Upload
	if err := r.db.WithContext(ctx).Where("id = ? AND course_id = ?", id, courseID).First(&upload).Error; err != nil {
		return nil, handleDBError(err, "get upload by id")
	}
	return &upload, nil
}

func (r *uploadRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.Upload, error) {
	var uploads []*models.Upload
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at DESC").Find(&uploads).Error; err != nil {
		return nil, handleDBError(err, "list course uploads")
	}
	return uploads, nil
}

func (r *uploadRepository) Update(ctx context.Context, upload *models.Upload) error {
	if err := r.db.WithContext(ctx).Omit("Course").Save(upload).Error; err != nil {
		return handleDBError(err, "update upload")
	}
	return nil
}

func (r *uploadRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Upload{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete upload")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete upload")
	}
	return nil
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) repositories.VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.UploadVideo) error {
	if err := r.db.WithContext(ctx).Omit("Course").Create(video).Error; err != nil {
		return handleDBError(err, "create video")
	}
	return nil
}

func (r *videoRepository) GetBySlug(ctx context.Context, courseID uint, slug string) (*models.UploadVideo, error) {
	var video models.UploadVideo
	if err := r.db.WithContext(ctx).Where("slug = ? AND course_id = ?", slug, courseID).First(&video).Error; err != nil {
		return nil, handleDBError(err, "get video by slug")
	}
	return &video, nil
}

func (r *videoRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.UploadVideo, error) {
	var videos []*models.UploadVideo
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, handleDBError(err, "list course videos")
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.UploadVideo) error {
	if err := r.db.WithContext(ctx).Omit("Course").Save(video).Error; err != nil {
		return handleDBError(err, "update video")
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.UploadVideo{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete video")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete video")
	}
	return nil
}
