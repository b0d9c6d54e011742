package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"

	"github.com/edigitalnetwork/course-service/internal/events"
	"github.com/edigitalnetwork/course-service/internal/media"
	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

// UploadLimits configures where course materials go and how large they may be
type UploadLimits struct {
	Folder   string
	MaxBytes int64
}

type uploadService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	store     media.Store
	publisher events.EventPublisher
	limits    UploadLimits
}

func NewUploadService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, store media.Store, publisher events.EventPublisher, limits UploadLimits) UploadService {
	return &uploadService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		store:     store,
		publisher: publisher,
		limits:    limits,
	}
}

// ===== FILES =====

func (s *uploadService) UploadFile(ctx context.Context, courseSlug string, req *UploadRequest, file *FileInput, userID string) (*models.Upload, error) {
	s.logger.Info("Uploading course file", "course", courseSlug, "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	asset, contentType, err := s.push(ctx, course, file, media.KindFile, filePublicID(file))
	if err != nil {
		return nil, err
	}

	upload := &models.Upload{
		Title:       strings.TrimSpace(req.Title),
		CourseID:    course.ID,
		FileName:    file.Name,
		FileURL:     asset.SecureURL,
		PublicID:    asset.PublicID,
		ContentType: contentType,
		Size:        asset.Bytes,
		Metadata:    assetMetadata(asset, file.Name),
	}
	if err := s.repo.Upload().Create(ctx, upload); err != nil {
		s.discard(ctx, asset)
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}

	s.logger.Info("Course file uploaded successfully", "upload_id", upload.ID, "public_id", upload.PublicID)
	s.publish(ctx, events.UploadCreated, "file", upload.ID, course, upload.Title, upload.FileURL)

	return upload, nil
}

// UpdateFile renames a file and, when a new file is sent, replaces the stored asset
func (s *uploadService) UpdateFile(ctx context.Context, courseSlug string, id uint, req *UploadRequest, file *FileInput, userID string) (*models.Upload, error) {
	s.logger.Info("Editing course file", "course", courseSlug, "upload_id", id, "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	upload, err := s.getUpload(ctx, course.ID, id)
	if err != nil {
		return nil, err
	}

	upload.Title = strings.TrimSpace(req.Title)

	var previous, replacement *media.Asset
	if file != nil {
		asset, contentType, err := s.push(ctx, course, file, media.KindFile, filePublicID(file))
		if err != nil {
			return nil, err
		}
		previous = &media.Asset{PublicID: upload.PublicID, Kind: media.KindFile}
		replacement = asset

		upload.FileName = file.Name
		upload.FileURL = asset.SecureURL
		upload.PublicID = asset.PublicID
		upload.ContentType = contentType
		upload.Size = asset.Bytes
		upload.Metadata = assetMetadata(asset, file.Name)
	}

	if err := s.repo.Upload().Update(ctx, upload); err != nil {
		if replacement != nil {
			s.discard(ctx, replacement)
		}
		return nil, fmt.Errorf("failed to update upload: %w", err)
	}

	if previous != nil && previous.PublicID != "" {
		s.discard(ctx, previous)
	}

	return upload, nil
}

// DeleteFile removes the remote asset and then the record
func (s *uploadService) DeleteFile(ctx context.Context, courseSlug string, id uint, userID string) error {
	s.logger.Info("Deleting course file", "course", courseSlug, "upload_id", id, "user_id", userID)

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return err
	}

	upload, err := s.getUpload(ctx, course.ID, id)
	if err != nil {
		return err
	}

	if upload.PublicID != "" {
		if err := s.store.Delete(ctx, upload.PublicID, media.KindFile); err != nil {
			return fmt.Errorf("failed to delete remote file: %w", err)
		}
	}

	if err := s.repo.Upload().Delete(ctx, upload.ID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUploadNotFound
		}
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	s.publish(ctx, events.UploadDeleted, "file", upload.ID, course, upload.Title, "")
	return nil
}

// ===== VIDEOS =====

func (s *uploadService) UploadVideo(ctx context.Context, courseSlug string, req *UploadRequest, file *FileInput, userID string) (*models.UploadVideo, error) {
	s.logger.Info("Uploading course video", "course", courseSlug, "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	videoSlug := VideoSlug(title)

	asset, contentType, err := s.push(ctx, course, file, media.KindVideo, videoSlug)
	if err != nil {
		return nil, err
	}

	video := &models.UploadVideo{
		Title:       title,
		Slug:        videoSlug,
		Summary:     req.Summary,
		CourseID:    course.ID,
		VideoURL:    asset.SecureURL,
		PublicID:    asset.PublicID,
		ContentType: contentType,
		Size:        asset.Bytes,
		Metadata:    assetMetadata(asset, file.Name),
	}
	if err := s.repo.Video().Create(ctx, video); err != nil {
		s.discard(ctx, asset)
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	s.logger.Info("Course video uploaded successfully", "video_id", video.ID, "slug", video.Slug)
	s.publish(ctx, events.UploadCreated, "video", video.ID, course, video.Title, video.VideoURL)

	return video, nil
}

func (s *uploadService) GetVideo(ctx context.Context, courseSlug, videoSlug string) (*models.UploadVideo, error) {
	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	return s.getVideo(ctx, course.ID, videoSlug)
}

func (s *uploadService) UpdateVideo(ctx context.Context, courseSlug, videoSlug string, req *UploadRequest, userID string) (*models.UploadVideo, error) {
	s.logger.Info("Editing course video", "course", courseSlug, "video", videoSlug, "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	video, err := s.getVideo(ctx, course.ID, videoSlug)
	if err != nil {
		return nil, err
	}

	video.Title = strings.TrimSpace(req.Title)
	video.Summary = req.Summary
	if err := s.repo.Video().Update(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return video, nil
}

// DeleteVideo removes only the record. The asset stays on the media host.
func (s *uploadService) DeleteVideo(ctx context.Context, courseSlug, videoSlug string, userID string) error {
	s.logger.Info("Deleting course video", "course", courseSlug, "video", videoSlug, "user_id", userID)

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return err
	}

	video, err := s.getVideo(ctx, course.ID, videoSlug)
	if err != nil {
		return err
	}

	if err := s.repo.Video().Delete(ctx, video.ID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("failed to delete video: %w", err)
	}

	s.publish(ctx, events.UploadDeleted, "video", video.ID, course, video.Title, "")
	return nil
}

// ===== HELPER METHODS =====

// push validates the file against the kind's rules and sends it to the course folder
func (s *uploadService) push(ctx context.Context, course *models.Course, file *FileInput, kind media.Kind, publicID string) (*media.Asset, string, error) {
	if file == nil || file.Reader == nil {
		return nil, "", &uploadError{cause: fmt.Errorf("file is required")}
	}

	if err := media.ValidateFile(file.Name, file.Size, kind, s.limits.MaxBytes); err != nil {
		return nil, "", &uploadError{cause: err}
	}

	contentType, err := media.DetectContentType(file.Reader)
	if err != nil {
		return nil, "", &uploadError{cause: err}
	}

	asset, err := s.store.Upload(ctx, file.Reader, media.UploadParams{
		Folder:   media.CourseFolder(s.limits.Folder, course.Slug),
		PublicID: publicID,
		Kind:     kind,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to upload to media host: %w", err)
	}

	return asset, contentType, nil
}

// discard deletes an asset whose record could not be kept
func (s *uploadService) discard(ctx context.Context, asset *media.Asset) {
	if err := s.store.Delete(ctx, asset.PublicID, asset.Kind); err != nil {
		s.logger.Warn("Failed to delete orphaned asset", "public_id", asset.PublicID, "error", err)
	}
}

func (s *uploadService) publish(ctx context.Context, eventType, kind string, id uint, course *models.Course, title, url string) {
	publishEvent(ctx, s.logger, s.publisher, eventType, events.UploadEvent{
		Kind:       kind,
		UploadID:   id,
		CourseID:   course.ID,
		CourseSlug: course.Slug,
		Title:      title,
		URL:        url,
	})
}

func (s *uploadService) getCourse(ctx context.Context, courseSlug string) (*models.Course, error) {
	course, err := s.repo.Course().GetBySlug(ctx, courseSlug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *uploadService) getUpload(ctx context.Context, courseID, id uint) (*models.Upload, error) {
	upload, err := s.repo.Upload().GetByID(ctx, courseID, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return upload, nil
}

func (s *uploadService) getVideo(ctx context.Context, courseID uint, videoSlug string) (*models.UploadVideo, error) {
	video, err := s.repo.Video().GetBySlug(ctx, courseID, videoSlug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

// VideoSlug is the slugified title with a short random suffix
func VideoSlug(title string) string {
	base := slug.Make(title)
	if base == "" {
		base = "video"
	}
	return base + "-" + shortID()
}

// filePublicID keeps the extension so raw assets download with their original type
func filePublicID(file *FileInput) string {
	if file == nil {
		return ""
	}
	ext := media.Extension(file.Name)
	base := slug.Make(strings.TrimSuffix(filepath.Base(file.Name), filepath.Ext(file.Name)))
	if base == "" {
		base = "file"
	}
	if ext == "" {
		return base + "-" + shortID()
	}
	return base + "-" + shortID() + "." + ext
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func assetMetadata(asset *media.Asset, originalName string) datatypes.JSON {
	data, err := json.Marshal(map[string]interface{}{
		"original_name": originalName,
		"format":        asset.Format,
		"bytes":         asset.Bytes,
		"resource_type": asset.Kind,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
