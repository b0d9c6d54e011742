package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edigitalnetwork/course-service/internal/events"
	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

type allocationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAllocationService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AllocationService {
	return &allocationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *allocationService) Allocate(ctx context.Context, req *AllocationRequest, userID string) (*models.CourseAllocation, error) {
	s.logger.Info("Allocating courses", "user_id", userID, "lecturer_id", req.LecturerID, "courses", len(req.CourseIDs))

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	lecturer, err := s.repo.User().GetByID(ctx, req.LecturerID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLecturerNotFound
		}
		return nil, fmt.Errorf("failed to get lecturer: %w", err)
	}
	if errors := s.validator.GetBusinessValidator().ValidateAllocationTarget(lecturer); len(errors) > 0 {
		return nil, errors
	}

	courses, err := resolveCourses(ctx, s.repo.Course(), req.CourseIDs)
	if err != nil {
		return nil, err
	}

	if req.SessionID != nil {
		if _, err := s.repo.Calendar().GetSessionByID(ctx, *req.SessionID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
	}

	var allocationID uint
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		allocation, err := tx.Allocation().Upsert(ctx, lecturer.ID, req.SessionID)
		if err != nil {
			return fmt.Errorf("failed to upsert allocation: %w", err)
		}
		allocationID = allocation.ID

		if err := tx.Allocation().AddCourses(ctx, allocation.ID, courses); err != nil {
			return fmt.Errorf("failed to add allocation courses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	allocation, err := s.GetByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Courses allocated successfully", "allocation_id", allocation.ID, "total_courses", len(allocation.Courses))
	publishEvent(ctx, s.logger, s.publisher, events.CourseAllocated, events.AllocationEvent{
		AllocationID: allocation.ID,
		LecturerID:   allocation.LecturerID,
		CourseIDs:    courseIDsOf(courses),
	})

	return allocation, nil
}

func (s *allocationService) List(ctx context.Context, filters repositories.AllocationFilters) (*AllocationListResponse, error) {
	allocations, total, err := s.repo.Allocation().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	return &AllocationListResponse{
		Allocations: allocations,
		Total:       total,
		Page:        pageOf(filters.Offset, filters.Limit),
		Size:        len(allocations),
	}, nil
}

func (s *allocationService) GetByID(ctx context.Context, id uint) (*models.CourseAllocation, error) {
	allocation, err := s.repo.Allocation().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return allocation, nil
}

func (s *allocationService) Update(ctx context.Context, id uint, courseIDs []uint, userID string) (*models.CourseAllocation, error) {
	s.logger.Info("Editing allocation", "allocation_id", id, "user_id", userID)

	if err := s.validator.Validate(&CourseIDsRequest{CourseIDs: courseIDs}); err != nil {
		return nil, err
	}

	allocation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	courses, err := resolveCourses(ctx, s.repo.Course(), courseIDs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Allocation().ReplaceCourses(ctx, allocation.ID, courses); err != nil {
		return nil, fmt.Errorf("failed to replace allocation courses: %w", err)
	}

	updated, err := s.GetByID(ctx, allocation.ID)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.logger, s.publisher, events.CourseAllocated, events.AllocationEvent{
		AllocationID: updated.ID,
		LecturerID:   updated.LecturerID,
		CourseIDs:    courseIDsOf(courses),
		Replaced:     true,
	})

	return updated, nil
}

func (s *allocationService) Delete(ctx context.Context, id uint, userID string) error {
	s.logger.Info("Deallocating courses", "allocation_id", id, "user_id", userID)

	if err := s.repo.Allocation().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAllocationNotFound
		}
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	return nil
}

// UserCourses lists the courses relevant to a user: allocated courses for lecturers,
// taken plus department courses for students and nothing for other roles.
func (s *allocationService) UserCourses(ctx context.Context, userID string) (*UserCourseList, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	result := &UserCourseList{Role: user.Role, Courses: []models.CourseSummary{}}

	switch user.Role {
	case models.RoleLecturer:
		allocation, err := s.repo.Allocation().GetByLecturer(ctx, user.ID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return result, nil
			}
			return nil, fmt.Errorf("failed to get allocation: %w", err)
		}
		for i := range allocation.Courses {
			result.Courses = append(result.Courses, models.NewCourseSummary(&allocation.Courses[i]))
		}

	case models.RoleStudent:
		student, err := s.repo.Student().GetByUserID(ctx, user.ID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return result, nil
			}
			return nil, fmt.Errorf("failed to get student: %w", err)
		}

		taken, err := s.repo.Registration().ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list taken courses: %w", err)
		}
		result.Taken = takenSummaries(taken)

		level := student.Level
		courses, _, err := s.repo.Course().List(ctx, repositories.CourseFilters{
			ProgramID: &student.DepartmentID,
			Level:     &level,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list department courses: %w", err)
		}
		result.Courses = courseSummaries(courses)
	}

	return result, nil
}

func courseIDsOf(courses []*models.Course) []uint {
	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}
