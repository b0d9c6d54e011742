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

type registrationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewRegistrationService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) RegistrationService {
	return &registrationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// GetListing returns the courses the student may still register for this semester,
// the courses already taken and the credit totals of the form.
func (s *registrationService) GetListing(ctx context.Context, userID string) (*RegistrationListing, error) {
	student, err := s.getStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	semester, err := s.repo.Calendar().GetCurrentSemester(ctx)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoCurrentSemester
		}
		return nil, fmt.Errorf("failed to get current semester: %w", err)
	}

	taken, err := s.repo.Registration().ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list taken courses: %w", err)
	}
	takenIDs := takenCourseIDs(taken)

	level := student.Level
	eligible, _, err := s.repo.Course().List(ctx, repositories.CourseFilters{
		ProgramID:  &student.DepartmentID,
		Level:      &level,
		Semester:   &semester.Semester,
		ExcludeIDs: takenIDs,
		SortBy:     "year",
		SortOrder:  "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible courses: %w", err)
	}

	// Department courses of the student's level that are still untaken, in any semester
	_, remaining, err := s.repo.Course().List(ctx, repositories.CourseFilters{
		ProgramID:  &student.DepartmentID,
		Level:      &level,
		ExcludeIDs: takenIDs,
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count department courses: %w", err)
	}

	credits := summarizeCredits(eligible, taken)

	listing := &RegistrationListing{
		CurrentSemester:           string(semester.Semester),
		Student:                   student,
		Courses:                   courseSummaries(eligible),
		Registered:                takenSummaries(taken),
		TotalFirstSemesterCredit:  credits.firstSemester,
		TotalSecondSemesterCredit: credits.secondSemester,
		TotalRegisteredCredit:     credits.registered,
		NoCourseIsRegistered:      len(taken) == 0,
		AllCoursesAreRegistered:   remaining == 0,
	}
	if semester.Session != nil {
		listing.CurrentSession = semester.Session.Title
	}

	return listing, nil
}

// Register creates one TakenCourse per submitted course. Courses the student already
// holds are reported as skipped. An unknown course aborts the whole submission.
func (s *registrationService) Register(ctx context.Context, userID string, courseIDs []uint) (*RegistrationResult, error) {
	s.logger.Info("Registering courses", "user_id", userID, "courses", len(courseIDs))

	if err := s.validator.Validate(&CourseIDsRequest{CourseIDs: courseIDs}); err != nil {
		return nil, err
	}

	student, err := s.getStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(courseIDs)

	var inserted []uint
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if _, err := resolveCourses(ctx, tx.Course(), ids); err != nil {
			return err
		}

		created, err := tx.Registration().Create(ctx, student.ID, ids)
		if err != nil {
			return fmt.Errorf("failed to create registrations: %w", err)
		}
		inserted = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	registered, skipped := splitRegistered(ids, inserted)
	s.logger.Info("Courses registered successfully", "student_id", student.ID, "registered", len(registered), "skipped", len(skipped))

	if len(registered) > 0 {
		publishEvent(ctx, s.logger, s.publisher, events.CourseRegistered, events.RegistrationEvent{
			StudentID: student.ID,
			UserID:    userID,
			CourseIDs: registered,
			Count:     len(registered),
		})
	}

	return &RegistrationResult{Registered: registered, Skipped: skipped}, nil
}

// Drop removes the student's registrations for the given courses.
// Courses that were never registered are ignored.
func (s *registrationService) Drop(ctx context.Context, userID string, courseIDs []uint) (*DropResult, error) {
	s.logger.Info("Dropping courses", "user_id", userID, "courses", len(courseIDs))

	if err := s.validator.Validate(&CourseIDsRequest{CourseIDs: courseIDs}); err != nil {
		return nil, err
	}

	student, err := s.getStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(courseIDs)
	removed, err := s.repo.Registration().Delete(ctx, student.ID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to drop courses: %w", err)
	}

	s.logger.Info("Courses dropped successfully", "student_id", student.ID, "removed", len(removed))

	if len(removed) > 0 {
		publishEvent(ctx, s.logger, s.publisher, events.CourseDropped, events.RegistrationEvent{
			StudentID: student.ID,
			UserID:    userID,
			CourseIDs: removed,
			Count:     len(removed),
		})
	}

	return &DropResult{Removed: int64(len(removed))}, nil
}

func (s *registrationService) getStudent(ctx context.Context, userID string) (*models.Student, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}
