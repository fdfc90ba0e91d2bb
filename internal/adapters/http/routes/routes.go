package routes

import (
	"time"

	"github.com/WNVissie/Shiftroster/internal/adapters/http/handlers"
	"github.com/WNVissie/Shiftroster/internal/adapters/http/middleware"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/config"
	"github.com/WNVissie/Shiftroster/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	referenceRepo := repositories.NewReferenceRepository(db)
	rosterRepo := repositories.NewRosterRepository(db)
	timesheetRepo := repositories.NewTimesheetRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)

	// Services
	authService := services.NewAuthService(employeeRepo, refreshTokenRepo, referenceRepo, cfg)
	employeeService := services.NewEmployeeService(employeeRepo, referenceRepo)
	referenceService := services.NewReferenceService(referenceRepo)
	rosterService := services.NewRosterService(rosterRepo, employeeRepo, referenceRepo)
	timesheetService := services.NewTimesheetService(timesheetRepo, rosterRepo)
	leaveService := services.NewLeaveService(leaveRepo)
	analyticsService := services.NewAnalyticsService(db)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	referenceHandler := handlers.NewReferenceHandler(referenceService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	timesheetHandler := handlers.NewTimesheetHandler(timesheetService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	auth := middleware.AuthMiddleware(authService)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/google", middleware.AuthRateLimiter(), authHandler.GoogleLogin)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", auth, authHandler.LogoutAll)
	authRoutes.Get("/me", auth, authHandler.Me)

	// Employee routes
	employees := apiV1.Group("/employees", auth)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)
	employees.Post("/:id/skills", employeeHandler.AddSkill)
	employees.Delete("/:id/skills/:skillID", employeeHandler.RemoveSkill)

	// Reference data routes. Lists are readable by any authenticated
	// employee (shift pickers, skill pickers); writes are admin only and
	// go through the service-level permission checks as well.
	refCache := middleware.CacheControl(5 * time.Minute)

	roles := apiV1.Group("/roles", auth)
	roles.Get("/", refCache, referenceHandler.ListRoles)
	roles.Post("/", middleware.AdminOnly(), referenceHandler.CreateRole)
	roles.Put("/:id", middleware.AdminOnly(), referenceHandler.UpdateRole)
	roles.Delete("/:id", middleware.AdminOnly(), referenceHandler.DeleteRole)

	areas := apiV1.Group("/areas", auth)
	areas.Get("/", refCache, referenceHandler.ListAreas)
	areas.Post("/", middleware.AdminOnly(), referenceHandler.CreateArea)
	areas.Put("/:id", middleware.AdminOnly(), referenceHandler.UpdateArea)
	areas.Delete("/:id", middleware.AdminOnly(), referenceHandler.DeleteArea)

	skills := apiV1.Group("/skills", auth)
	skills.Get("/", refCache, referenceHandler.ListSkills)
	skills.Post("/", middleware.AdminOnly(), referenceHandler.CreateSkill)
	skills.Put("/:id", middleware.AdminOnly(), referenceHandler.UpdateSkill)
	skills.Delete("/:id", middleware.AdminOnly(), referenceHandler.DeleteSkill)

	shiftTypes := apiV1.Group("/shift-types", auth)
	shiftTypes.Get("/", refCache, referenceHandler.ListShiftTypes)
	shiftTypes.Post("/", middleware.AdminOnly(), referenceHandler.CreateShiftType)
	shiftTypes.Put("/:id", middleware.AdminOnly(), referenceHandler.UpdateShiftType)
	shiftTypes.Delete("/:id", middleware.AdminOnly(), referenceHandler.DeleteShiftType)

	// Roster routes
	roster := apiV1.Group("/roster", auth)
	roster.Get("/", rosterHandler.List)
	roster.Post("/", rosterHandler.Create)
	roster.Post("/bulk", rosterHandler.CreateBulk)
	roster.Get("/:id", rosterHandler.Get)
	roster.Put("/:id", rosterHandler.Update)
	roster.Delete("/:id", rosterHandler.Delete)
	roster.Post("/:id/approve", rosterHandler.SetStatus)

	// Timesheet routes
	timesheets := apiV1.Group("/timesheets", auth)
	timesheets.Get("/", timesheetHandler.List)
	timesheets.Post("/", timesheetHandler.Create)
	timesheets.Delete("/:id", timesheetHandler.Delete)
	timesheets.Post("/:id/approve", timesheetHandler.SetStatus)

	// Leave routes
	leave := apiV1.Group("/leave", auth)
	leave.Get("/", leaveHandler.List)
	leave.Post("/", leaveHandler.Create)
	leave.Delete("/:id", leaveHandler.Delete)
	leave.Post("/:id/approve", leaveHandler.SetStatus)

	// Analytics routes (service enforces Manager/Admin standing)
	analytics := apiV1.Group("/analytics", auth)
	analytics.Get("/dashboard", analyticsHandler.Dashboard)
	analytics.Get("/shift-coverage", analyticsHandler.ShiftCoverage)
	analytics.Get("/employees-by-shift", analyticsHandler.EmployeesByShift)
	analytics.Get("/employees-by-role", analyticsHandler.EmployeesByRole)
	analytics.Get("/employees-by-area", analyticsHandler.EmployeesByArea)
	analytics.Get("/leave-summary", analyticsHandler.LeaveSummary)
	analytics.Get("/skill-search", analyticsHandler.SkillSearch)
}
