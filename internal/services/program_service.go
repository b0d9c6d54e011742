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

type programService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProgramService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ProgramService {
	return &programService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *programService) List(ctx context.Context, filters repositories.ProgramFilters) (*ProgramListResponse, error) {
	filters.Title = strings.TrimSpace(filters.Title)

	programs, total, err := s.repo.Program().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}

	return &ProgramListResponse{
		Programs: programs,
		Total:    total,
		Page:     pageOf(filters.Offset, filters.Limit),
		Size:     len(programs),
	}, nil
}

func (s *programService) Create(ctx context.Context, req *CreateProgramRequest, userID string) (*models.Program, error) {
	s.logger.Info("Creating program", "user_id", userID, "title", req.Title)

	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Program().ExistsByTitle(ctx, req.Title, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check program title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateProgramTitle
	}

	program := &models.Program{
		Title:   req.Title,
		Summary: req.Summary,
	}
	if err := s.repo.Program().Create(ctx, program); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateProgramTitle
		}
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	s.logger.Info("Program created successfully", "program_id", program.ID)
	return program, nil
}

func (s *programService) GetDetail(ctx context.Context, id uint, page int) (*ProgramDetail, error) {
	program, err := s.getProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	courses, total, err := s.repo.Course().List(ctx, repositories.CourseFilters{
		ProgramID: &program.ID,
		Limit:     ProgramPageSize,
		Offset:    (page - 1) * ProgramPageSize,
		SortBy:    "year",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list program courses: %w", err)
	}

	creditSum, err := s.repo.Program().CreditSum(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum program credit: %w", err)
	}

	return &ProgramDetail{
		Program:    program,
		Courses:    courses,
		Page:       page,
		TotalPages: totalPages(total, ProgramPageSize),
		TotalCount: total,
		CreditSum:  creditSum,
	}, nil
}

func (s *programService) Update(ctx context.Context, id uint, req *UpdateProgramRequest, userID string) (*models.Program, error) {
	s.logger.Info("Updating program", "program_id", id, "user_id", userID)

	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	program, err := s.getProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Program().ExistsByTitle(ctx, req.Title, &program.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check program title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateProgramTitle
	}

	program.Title = req.Title
	program.Summary = req.Summary
	if err := s.repo.Program().Update(ctx, program); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateProgramTitle
		}
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to update program: %w", err)
	}

	return program, nil
}

func (s *programService) Delete(ctx context.Context, id uint, userID string) error {
	s.logger.Info("Deleting program", "program_id", id, "user_id", userID)

	if err := s.repo.Program().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrProgramNotFound
		}
		return fmt.Errorf("failed to delete program: %w", err)
	}

	s.logger.Info("Program deleted successfully", "program_id", id)
	return nil
}

func (s *programService) getProgram(ctx context.Context, id uint) (*models.Program, error) {
	program, err := s.repo.Program().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return program, nil
}
