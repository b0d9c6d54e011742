package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edigitalnetwork/course-service/internal/models"
	"github.com/edigitalnetwork/course-service/internal/repositories"
	"github.com/edigitalnetwork/course-service/internal/services"
	"github.com/edigitalnetwork/course-service/internal/utils"
)

const healthCheckTimeout = 5 * time.Second

type HandlerManager struct {
	programHandler      *ProgramHandler
	courseHandler       *CourseHandler
	uploadHandler       *UploadHandler
	registrationHandler *RegistrationHandler
	allocationHandler   *AllocationHandler
	calendarHandler     *CalendarHandler
	studentHandler      *StudentHandler
	userHandler         *UserHandler
	authMiddleware      *CasdoorAuthMiddleware

	serviceManager services.ServiceManager
	maxUploadBytes int64
}

// NewHandlerManager builds every handler. users serves the /users routes and may be the
// Casdoor backed directory.
func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	authMiddleware *CasdoorAuthMiddleware,
	users repositories.UserRepository,
	maxUploadBytes int64,
) *HandlerManager {
	return &HandlerManager{
		programHandler:      NewProgramHandler(serviceManager.Program(), logger),
		courseHandler:       NewCourseHandler(serviceManager.Course(), serviceManager.ImportExport(), logger),
		uploadHandler:       NewUploadHandler(serviceManager.Upload(), logger),
		registrationHandler: NewRegistrationHandler(serviceManager.Registration(), serviceManager.ImportExport(), logger),
		allocationHandler:   NewAllocationHandler(serviceManager.Allocation(), logger),
		calendarHandler:     NewCalendarHandler(serviceManager.Calendar(), logger),
		studentHandler:      NewStudentHandler(serviceManager.Student(), logger),
		userHandler:         NewUserHandler(users, logger),
		authMiddleware:      authMiddleware,
		serviceManager:      serviceManager,
		maxUploadBytes:      maxUploadBytes,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	lecturerOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleLecturer)
	studentOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent)
	adminOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)
	bodyLimit := BodyLimitMiddleware(hm.maxUploadBytes)

	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Program routes
		programs := v1.Group("/programs")
		{
			programs.GET("", hm.programHandler.ListPrograms)
			programs.GET("/:id", hm.programHandler.GetProgram)
			programs.POST("", adminOnly, hm.programHandler.CreateProgram)
			programs.PUT("/:id", adminOnly, hm.programHandler.UpdateProgram)
			programs.DELETE("/:id", adminOnly, hm.programHandler.DeleteProgram)

			programs.POST("/:id/courses", lecturerOnly, hm.courseHandler.CreateCourse)
			programs.POST("/:id/courses/import", lecturerOnly, bodyLimit, hm.courseHandler.ImportCourses)
		}

		// Course routes
		courses := v1.Group("/courses")
		{
			courses.GET("/:slug", hm.courseHandler.GetCourse)
			courses.PUT("/:slug", lecturerOnly, hm.courseHandler.UpdateCourse)
			courses.DELETE("/:slug", lecturerOnly, hm.courseHandler.DeleteCourse)

			// Files
			courses.POST("/:slug/files", lecturerOnly, bodyLimit, hm.uploadHandler.UploadFile)
			courses.PUT("/:slug/files/:file_id", lecturerOnly, bodyLimit, hm.uploadHandler.UpdateFile)
			courses.DELETE("/:slug/files/:file_id", lecturerOnly, hm.uploadHandler.DeleteFile)

			// Videos
			courses.POST("/:slug/videos", lecturerOnly, bodyLimit, hm.uploadHandler.UploadVideo)
			courses.GET("/:slug/videos/:video_slug", hm.uploadHandler.GetVideo)
			courses.PUT("/:slug/videos/:video_slug", lecturerOnly, hm.uploadHandler.UpdateVideo)
			courses.DELETE("/:slug/videos/:video_slug", lecturerOnly, hm.uploadHandler.DeleteVideo)
		}

		// Registration routes - Students only
		registration := v1.Group("/course-registration")
		registration.Use(studentOnly)
		{
			registration.GET("", hm.registrationHandler.GetRegistration)
			registration.POST("", hm.registrationHandler.Register)
			registration.GET("/export", hm.registrationHandler.ExportSlip)
		}
		v1.POST("/course-drop", studentOnly, hm.registrationHandler.Drop)

		// Allocation routes - Admins only
		allocations := v1.Group("/allocations")
		allocations.Use(adminOnly)
		{
			allocations.GET("", hm.allocationHandler.ListAllocations)
			allocations.POST("", hm.allocationHandler.CreateAllocation)
			allocations.GET("/:id", hm.allocationHandler.GetAllocation)
			allocations.PUT("/:id", hm.allocationHandler.UpdateAllocation)
			allocations.DELETE("/:id", hm.allocationHandler.DeleteAllocation)
		}
		v1.GET("/my-courses", hm.allocationHandler.MyCourses)

		// Calendar routes
		v1.GET("/semesters", hm.calendarHandler.ListSemesters)
		v1.GET("/semesters/current", hm.calendarHandler.CurrentSemester)
		v1.POST("/semesters", adminOnly, hm.calendarHandler.CreateSemester)
		v1.POST("/semesters/:id/current", adminOnly, hm.calendarHandler.SetCurrentSemester)
		v1.POST("/sessions", adminOnly, hm.calendarHandler.CreateSession)

		// Student profile routes
		v1.GET("/students/me", studentOnly, hm.studentHandler.GetMyProfile)
		v1.POST("/students", adminOnly, hm.studentHandler.SaveProfile)

		// User routes (for allocation and enrolment)
		v1.GET("/users/me", hm.userHandler.GetCurrentUser)
		users := v1.Group("/users")
		users.Use(adminOnly)
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
		}
	}

	// Health check endpoint
	router.GET("/health", hm.health)
}

func (hm *HandlerManager) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := hm.serviceManager.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "course-service",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "course-service",
	})
}
