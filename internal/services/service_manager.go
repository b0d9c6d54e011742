package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/edigitalnetwork/course-service/internal/events"
	"github.com/edigitalnetwork/course-service/internal/media"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// Service-specific configurations
	Allocation   ServiceConfig
	Registration ServiceConfig
	Upload       ServiceConfig
	ImportExport ServiceConfig

	// Upload settings
	MediaFolder    string
	MaxUploadBytes int64

	// Global settings
	DefaultTimeout time.Duration
}

type ServiceConfig struct {
	Enabled bool

	// EventsEnabled publishes domain events for the service's mutations
	EventsEnabled bool
}

// ServiceDependencies are the outside systems services talk to besides the database
type ServiceDependencies struct {
	Events events.EventPublisher
	Media  media.Store
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	deps      ServiceDependencies
	config    ServiceManagerConfig

	// Service instances
	programService      ProgramService
	courseService       CourseService
	allocationService   AllocationService
	registrationService RegistrationService
	uploadService       UploadService
	calendarService     CalendarService
	studentService      StudentService
	importExportService ImportExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, deps ServiceDependencies, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		deps:      deps,
		config:    config,
	}
}

// NewDefaultServiceManager creates a service manager with every service enabled
func NewDefaultServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, deps ServiceDependencies, mediaFolder string, maxUploadBytes int64) ServiceManager {
	config := ServiceManagerConfig{
		Allocation:   ServiceConfig{Enabled: true, EventsEnabled: true},
		Registration: ServiceConfig{Enabled: true, EventsEnabled: true},
		Upload:       ServiceConfig{Enabled: true, EventsEnabled: true},
		ImportExport: ServiceConfig{Enabled: true},

		MediaFolder:    mediaFolder,
		MaxUploadBytes: maxUploadBytes,
		DefaultTimeout: 30 * time.Second,
	}

	return NewServiceManager(repo, logger, validator, deps, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.config.Validate(); err != nil {
		return err
	}

	sm.initializeServices()

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices() {
	store := sm.deps.Media
	if store == nil {
		store = media.UnavailableStore{}
	}

	sm.programService = NewProgramService(sm.repo, sm.logger, sm.validator)
	sm.courseService = NewCourseService(sm.repo, sm.logger, sm.validator, store)
	sm.calendarService = NewCalendarService(sm.repo, sm.logger, sm.validator)
	sm.studentService = NewStudentService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Catalog services initialized")

	if sm.config.Allocation.Enabled {
		sm.allocationService = NewAllocationService(sm.repo, sm.logger, sm.validator, sm.publisherFor(sm.config.Allocation))
		sm.logger.Info("Allocation service initialized")
	}

	if sm.config.Registration.Enabled {
		sm.registrationService = NewRegistrationService(sm.repo, sm.logger, sm.validator, sm.publisherFor(sm.config.Registration))
		sm.logger.Info("Registration service initialized")
	}

	if sm.config.Upload.Enabled {
		sm.uploadService = NewUploadService(sm.repo, sm.logger, sm.validator, store, sm.publisherFor(sm.config.Upload), UploadLimits{
			Folder:   sm.config.MediaFolder,
			MaxBytes: sm.config.MaxUploadBytes,
		})
		sm.logger.Info("Upload service initialized")
	}

	if sm.config.ImportExport.Enabled {
		sm.importExportService = NewImportExportService(sm.repo, sm.logger, sm.courseService)
		sm.logger.Info("ImportExport service initialized")
	}
}

// publisherFor returns the configured publisher or nil when the service does not emit events
func (sm *serviceManager) publisherFor(cfg ServiceConfig) events.EventPublisher {
	if !cfg.EventsEnabled {
		return nil
	}
	return sm.deps.Events
}

// ===== SERVICE GETTERS =====

func (sm *serviceManager) Program() ProgramService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.programService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.courseService
}

func (sm *serviceManager) Allocation() AllocationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Allocation.Enabled && sm.allocationService != nil {
		return sm.allocationService
	}

	panic("allocation service not enabled or not initialized")
}

func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Registration.Enabled && sm.registrationService != nil {
		return sm.registrationService
	}

	panic("registration service not enabled or not initialized")
}

func (sm *serviceManager) Upload() UploadService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Upload.Enabled && sm.uploadService != nil {
		return sm.uploadService
	}

	panic("upload service not enabled or not initialized")
}

func (sm *serviceManager) Calendar() CalendarService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.calendarService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.studentService
}

func (sm *serviceManager) ImportExport() ImportExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.ImportExport.Enabled && sm.importExportService != nil {
		return sm.importExportService
	}

	panic("import/export service not enabled or not initialized")
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	ctx, cancel := context.WithTimeout(ctx, sm.config.DefaultTimeout)
	defer cancel()

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.deps.Events != nil {
		if err := sm.deps.Events.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// ===== CONFIGURATION VALIDATION =====

// Validate validates the service manager configuration
func (config *ServiceManagerConfig) Validate() error {
	var errors []string

	if config.DefaultTimeout <= 0 {
		errors = append(errors, "default timeout must be positive")
	}

	if config.MaxUploadBytes < 0 {
		errors = append(errors, "max upload size cannot be negative")
	}

	if config.Upload.Enabled && config.MediaFolder == "" {
		errors = append(errors, "upload: media folder is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}
