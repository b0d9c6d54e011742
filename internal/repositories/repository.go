package repositories

import "context"

// Repository aggregates every repository of the course service
type Repository interface {
	// Catalog domain
	Program() ProgramRepository
	Course() CourseRepository

	// Teaching and enrollment
	Allocation() AllocationRepository
	Registration() RegistrationRepository

	// Course materials
	Upload() UploadRepository
	Video() VideoRepository

	// People
	User() UserRepository
	Student() StudentRepository

	// Academic calendar
	Calendar() CalendarRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
