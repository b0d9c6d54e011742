package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

// ===== SERVICE IMPLEMENTATION =====

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) GetProfile(ctx context.Context, userID string) (*models.Student, error) {
	student, err := s.repo.Student().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// UpsertProfile places a student account in a department and level
func (s *studentService) UpsertProfile(ctx context.Context, req *StudentProfileRequest) (*models.Student, error) {
	s.logger.Info("Saving student profile", "user_id", req.UserID, "department_id", req.DepartmentID, "level", req.Level)

	req.Level = strings.TrimSpace(req.Level)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Program().GetByID(ctx, req.DepartmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	user, err := s.repo.User().GetByID(ctx, req.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsStudent() {
		return nil, NewBusinessRuleError("student_role", "only student accounts can hold a student profile", map[string]interface{}{
			"user_id": user.ID,
			"role":    user.Role,
		})
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if req.FullName != "" || req.Email != "" {
			if req.FullName != "" {
				user.FullName = req.FullName
			}
			if req.Email != "" {
				user.Email = req.Email
			}
			if err := tx.User().Upsert(ctx, user); err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}

		return tx.Student().Upsert(ctx, &models.Student{
			UserID:       user.ID,
			Level:        req.Level,
			DepartmentID: req.DepartmentID,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, user.ID)
}
