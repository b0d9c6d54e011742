package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gosimple/slug"

	"github.com/edigitalnetwork/course-service/internal/media"
	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

// maxSlugAttempts bounds the numbered suffixes tried when a slug is taken
const maxSlugAttempts = 50

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	store     media.Store
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, store media.Store) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		store:     store,
	}
}

func (s *courseService) Create(ctx context.Context, programID uint, req *CreateCourseRequest, userID string) (*models.Course, error) {
	s.logger.Info("Creating course", "user_id", userID, "program_id", programID, "code", req.Code)

	normalizeCourseRequest(req)
	if errors := s.validator.GetBusinessValidator().ValidateCourseCreate(req); len(errors) > 0 {
		return nil, errors
	}

	if _, err := s.repo.Program().GetByID(ctx, programID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	exists, err := s.repo.Course().ExistsByCode(ctx, req.Code, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check course code: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCourseCode
	}

	courseSlug, err := s.uniqueSlug(ctx, req.Title, req.Code)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Slug:       courseSlug,
		ProgramID:  programID,
		Title:      req.Title,
		Code:       req.Code,
		Credit:     req.Credit,
		Summary:    req.Summary,
		Level:      req.Level,
		Year:       req.Year,
		Semester:   req.Semester,
		IsElective: req.IsElective,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateCourseCode
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created successfully", "course_id", course.ID, "slug", course.Slug)
	return course, nil
}

func (s *courseService) GetBySlug(ctx context.Context, courseSlug string) (*CourseDetail, error) {
	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	files, err := s.repo.Upload().ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course files: %w", err)
	}

	videos, err := s.repo.Video().ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course videos: %w", err)
	}

	lecturers, err := s.repo.Allocation().LecturersForCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course lecturers: %w", err)
	}

	return &CourseDetail{
		Course:    course,
		Files:     files,
		Videos:    videos,
		Lecturers: lecturers,
	}, nil
}

// Update edits a course in place. The slug is kept so existing links stay valid.
func (s *courseService) Update(ctx context.Context, courseSlug string, req *UpdateCourseRequest, userID string) (*models.Course, error) {
	s.logger.Info("Updating course", "slug", courseSlug, "user_id", userID)

	normalizeCourseRequest(req)
	if errors := s.validator.GetBusinessValidator().ValidateCourseCreate(req); len(errors) > 0 {
		return nil, errors
	}

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(course.Code, req.Code) {
		exists, err := s.repo.Course().ExistsByCode(ctx, req.Code, &course.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check course code: %w", err)
		}
		if exists {
			return nil, ErrDuplicateCourseCode
		}
	}

	course.Title = req.Title
	course.Code = req.Code
	course.Credit = req.Credit
	course.Summary = req.Summary
	course.Level = req.Level
	course.Year = req.Year
	course.Semester = req.Semester
	course.IsElective = req.IsElective

	if err := s.repo.Course().Update(ctx, course); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateCourseCode
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return course, nil
}

func (s *courseService) Delete(ctx context.Context, courseSlug string, userID string) error {
	s.logger.Info("Deleting course", "slug", courseSlug, "user_id", userID)

	course, err := s.getCourse(ctx, courseSlug)
	if err != nil {
		return err
	}

	files, err := s.repo.Upload().ListByCourse(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("failed to list course files: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Course().Delete(ctx, course)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	// File rows went with the course; their raw assets are removed once the delete committed
	for _, file := range files {
		if file.PublicID == "" {
			continue
		}
		if err := s.store.Delete(ctx, file.PublicID, media.KindFile); err != nil {
			s.logger.Warn("Failed to delete course file asset", "public_id", file.PublicID, "error", err)
		}
	}

	s.logger.Info("Course deleted successfully", "course_id", course.ID, "files", len(files))
	return nil
}

func (s *courseService) getCourse(ctx context.Context, courseSlug string) (*models.Course, error) {
	course, err := s.repo.Course().GetBySlug(ctx, courseSlug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// uniqueSlug builds "<title>-<code>" and appends -2, -3... until no course holds it
func (s *courseService) uniqueSlug(ctx context.Context, title, code string) (string, error) {
	base := CourseSlug(title, code)
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := s.repo.Course().ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check course slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}

// CourseSlug is the url-safe identity of a course derived from its title and code
func CourseSlug(title, code string) string {
	return slug.Make(strings.TrimSpace(title) + " " + strings.TrimSpace(code))
}

func normalizeCourseRequest(req *CreateCourseRequest) {
	req.Title = strings.TrimSpace(req.Title)
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Level = strings.TrimSpace(req.Level)
}
