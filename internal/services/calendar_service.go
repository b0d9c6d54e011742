package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

type calendarService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewCalendarService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CalendarService {
	return &calendarService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       time.Now,
	}
}

func (s *calendarService) CurrentSemester(ctx context.Context) (*models.Semester, error) {
	semester, err := s.repo.Calendar().GetCurrentSemester(ctx)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoCurrentSemester
		}
		return nil, fmt.Errorf("failed to get current semester: %w", err)
	}
	return semester, nil
}

func (s *calendarService) ListSemesters(ctx context.Context) ([]*models.Semester, error) {
	semesters, err := s.repo.Calendar().ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	return semesters, nil
}

func (s *calendarService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*models.Session, error) {
	s.logger.Info("Creating session", "title", req.Title, "is_current", req.IsCurrent)

	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	session := &models.Session{Title: req.Title}
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Calendar().CreateSession(ctx, session); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrDuplicateSession
			}
			return fmt.Errorf("failed to create session: %w", err)
		}
		if req.IsCurrent {
			if err := tx.Calendar().SetCurrentSession(ctx, session.ID); err != nil {
				return fmt.Errorf("failed to set current session: %w", err)
			}
			session.IsCurrent = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// CreateSemester creates a semester. Without a session id it joins the current session, if any.
func (s *calendarService) CreateSemester(ctx context.Context, req *CreateSemesterRequest) (*models.Semester, error) {
	s.logger.Info("Creating semester", "semester", req.Semester, "is_current", req.IsCurrent)

	if errors := s.validator.GetBusinessValidator().ValidateSemesterCreate(req, s.now()); len(errors) > 0 {
		return nil, errors
	}

	semester := &models.Semester{
		Semester:           req.Semester,
		SessionID:          req.SessionID,
		NextSemesterBegins: req.NextSemesterBegins,
	}

	if req.SessionID != nil {
		if _, err := s.repo.Calendar().GetSessionByID(ctx, *req.SessionID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
	} else {
		session, err := s.repo.Calendar().GetCurrentSession(ctx)
		if err != nil && !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to get current session: %w", err)
		}
		if session != nil {
			semester.SessionID = &session.ID
		}
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Calendar().CreateSemester(ctx, semester); err != nil {
			return fmt.Errorf("failed to create semester: %w", err)
		}
		if req.IsCurrent {
			if err := tx.Calendar().SetCurrentSemester(ctx, semester.ID); err != nil {
				return fmt.Errorf("failed to set current semester: %w", err)
			}
			semester.IsCurrent = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return semester, nil
}

// SetCurrentSemester flags the semester current and clears the flag on every other one
func (s *calendarService) SetCurrentSemester(ctx context.Context, id uint) (*models.Semester, error) {
	s.logger.Info("Setting current semester", "semester_id", id)

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Calendar().SetCurrentSemester(ctx, id)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSemesterNotFound
		}
		return nil, fmt.Errorf("failed to set current semester: %w", err)
	}

	semester, err := s.repo.Calendar().GetSemesterByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSemesterNotFound
		}
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}
	return semester, nil
}
