package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/authz"
	"github.com/praxis-platform/praxis-backend/internal/config"
	"github.com/praxis-platform/praxis-backend/internal/handler"
	"github.com/praxis-platform/praxis-backend/internal/middleware"
	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Role      *handler.RoleHandler
	Training  *handler.TrainingHandler
	Class     *handler.ClassHandler
	Student   *handler.StudentHandler
	Campaign  *handler.CampaignHandler
	Dashboard *handler.DashboardHandler
	Media     *handler.MediaHandler
}

// SetupRouter configures all route groups. Every protected route is mounted
// through a Guard, which declares its permission requirements into the
// registry as the route is registered.
func SetupRouter(
	authService *service.AuthService,
	permissionService *service.PermissionService,
	registry *authz.Registry,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year);
	// filenames are immutable UUIDs.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the unauthenticated surface (30 requests/min per IP).
	publicLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Auth (public, rate limited) ───────────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(publicLimiter.Middleware())
	{
		auth.POST("/signin", handlers.Auth.SignIn)
		auth.POST("/signup", handlers.Auth.SignUp)

		// Authenticated self-service routes. These need identity but no
		// declared permission.
		auth.POST("/select-role", middleware.RequireAuth(authService), handlers.Auth.SelectRole)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.GET("/permissions", middleware.RequireAuth(authService), handlers.Auth.MyPermissions)
	}

	// ─── Public campaigns (no auth) ────────────────────────────────────
	public := router.Group("/api/v1/public")
	{
		public.GET("/campaigns", handlers.Campaign.ListActive)
		public.GET("/campaigns/:id", handlers.Campaign.Get)
		public.POST("/campaigns/:id/donations", publicLimiter.Middleware(), handlers.Campaign.Donate)
	}

	// ─── Protected API (auth gate + authorization gate) ────────────────
	api := NewGuard(router.Group("/api/v1"), registry, authService, permissionService)

	// Superadmin: user and role administration.
	superadmin := api.Group("/superadmin")
	{
		superadmin.GET("/users", handlers.User.List, model.PermViewUsers)
		superadmin.POST("/users", handlers.User.Create, model.PermCreateUsers)
		superadmin.GET("/users/:id", handlers.User.Get, model.PermViewUsers)
		superadmin.PATCH("/users/:id", handlers.User.Update, model.PermEditUsers)
		superadmin.PATCH("/users/:id/status", handlers.User.SetActive, model.PermEditUsers)
		superadmin.DELETE("/users/:id", handlers.User.Delete, model.PermDeleteUsers)

		superadmin.GET("/roles", handlers.Role.List, model.PermViewRoles)
		superadmin.POST("/roles", handlers.Role.Create, model.PermCreateRoles)
		superadmin.GET("/roles/:id", handlers.Role.Get, model.PermViewRoles)
		superadmin.PUT("/roles/:id", handlers.Role.Replace, model.PermEditRoles)
		superadmin.PATCH("/roles/:id", handlers.Role.Patch, model.PermEditRoles)
		superadmin.DELETE("/roles/:id", handlers.Role.Delete, model.PermDeleteRoles)

		superadmin.GET("/permissions", handlers.Role.ListPermissions, model.PermViewRoles)
	}

	// Trainings.
	api.GET("/trainings", handlers.Training.List, model.PermViewTrainings)
	api.POST("/trainings", handlers.Training.Create, model.PermCreateTrainings)
	api.GET("/trainings/:id", handlers.Training.Get, model.PermViewTrainings)
	api.PATCH("/trainings/:id", handlers.Training.Patch, model.PermEditTrainings)
	api.DELETE("/trainings/:id", handlers.Training.Delete, model.PermDeleteTrainings)

	// Classes, rosters, lessons, attendance, certificates.
	classes := api.Group("/classes")
	{
		classes.GET("", handlers.Class.List, model.PermViewClasses)
		classes.POST("", handlers.Class.Create, model.PermCreateClasses)
		classes.GET("/:id", handlers.Class.Get, model.PermViewClasses)
		classes.PUT("/:id", handlers.Class.Update, model.PermEditClasses)
		classes.DELETE("/:id", handlers.Class.Delete, model.PermDeleteClasses)

		classes.GET("/:id/students", handlers.Class.Roster, model.PermViewClasses)
		classes.POST("/:id/students", handlers.Class.Enroll, model.PermEditClasses)
		classes.DELETE("/:id/students", handlers.Class.Unenroll, model.PermEditClasses)

		classes.GET("/:id/lessons", handlers.Class.Lessons, model.PermViewClasses)
		classes.POST("/:id/lessons", handlers.Class.AddLesson, model.PermEditClasses)
		classes.GET("/:id/lessons/:lesson_id/attendance", handlers.Class.Attendance, model.PermViewClasses)
		classes.PUT("/:id/lessons/:lesson_id/attendance", handlers.Class.SaveAttendance, model.PermEditClasses)

		classes.GET("/:id/certificates", handlers.Class.Certificates, model.PermViewCertificates)
		classes.POST("/:id/certificates", handlers.Class.IssueCertificates, model.PermCreateCertificates)
	}

	// Students.
	students := api.Group("/students")
	{
		students.GET("", handlers.Student.List, model.PermViewStudents)
		students.POST("", handlers.Student.Create, model.PermCreateStudents)
		students.GET("/:id", handlers.Student.Get, model.PermViewStudents)
		students.PATCH("/:id", handlers.Student.Update, model.PermEditStudents)
		students.DELETE("/:id", handlers.Student.Delete, model.PermDeleteStudents)
		students.GET("/:id/certificates", handlers.Student.Certificates, model.PermViewCertificates)
	}

	// Campaigns: owner-scoped routes need only identity; the review step needs
	// the financial permission.
	campaigns := api.Group("/campaigns")
	{
		campaigns.POST("", handlers.Campaign.Create)
		campaigns.PATCH("/:id", handlers.Campaign.Update)
		campaigns.GET("/mine", handlers.Campaign.Mine)
		campaigns.GET("/donations", handlers.Campaign.DonationsReceived)
		campaigns.PATCH("/:id/status", handlers.Campaign.SetStatus, model.PermEditFinancial)
	}

	// Reports and media.
	api.GET("/reports/dashboard", handlers.Dashboard.Stats, model.PermViewDashboard)
	api.POST("/media/upload", handlers.Media.Upload)

	return router
}
