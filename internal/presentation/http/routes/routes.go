package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadhive/leadhive-api/internal/config"
	"github.com/leadhive/leadhive-api/internal/domain/entity"
	domainRepo "github.com/leadhive/leadhive-api/internal/domain/repository"
	"github.com/leadhive/leadhive-api/internal/presentation/http/handler"
	"github.com/leadhive/leadhive-api/internal/presentation/http/middleware"
	"github.com/leadhive/leadhive-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Tenant    *handler.TenantHandler
	Lead      *handler.LeadHandler
	Contact   *handler.ContactHandler
	Pipeline  *handler.PipelineHandler
	Form      *handler.FormHandler
	Jotform   *handler.JotformHandler
	Dashboard *handler.DashboardHandler
	Events    *handler.EventsHandler
	User      *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewKeyedRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// Hosted form pages and submissions are reachable without a session
	registerPublicFormRoutes(router, h, rateLimiter)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerPublicFormRoutes(router *gin.Engine, h *Handlers, rateLimiter *middleware.KeyedRateLimiter) {
	public := router.Group("")
	public.Use(rateLimiter.PublicMiddleware())
	{
		public.GET("/f/:id", h.Form.Render)
		public.POST("/api/forms/:id/submit", h.Form.Submit)
	}
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Tenants
	registerTenantRoutes(protected, h)

	// Everything below operates on tenant-scoped data
	scoped := protected.Group("")
	scoped.Use(middleware.RequireTenant())

	// Dashboard
	scoped.GET("/dashboard", h.Dashboard.GetStats)

	// Change feed for board and list views
	scoped.GET("/events", h.Events.Subscribe)

	// Leads
	registerLeadRoutes(scoped, h, deps)

	// Contacts
	registerContactRoutes(scoped, h)

	// Pipelines
	registerPipelineRoutes(scoped, h)

	// Forms
	registerFormRoutes(scoped, h)

	// Users (Admin)
	registerUserRoutes(protected, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("", h.Tenant.ListTenants)
		tenants.POST("", h.Tenant.Create)
	}

	current := protected.Group("/tenants/current")
	current.Use(middleware.RequireTenant())
	{
		current.GET("", h.Tenant.GetCurrentTenant)
		current.PUT("", h.Tenant.UpdateTenant)
		current.GET("/members", h.Tenant.ListMembers)
		current.POST("/members", h.Tenant.InviteMember)
		current.PUT("/members/:user_id", h.Tenant.UpdateMemberRole)
		current.DELETE("/members/:user_id", h.Tenant.RemoveMember)
	}
}

func registerLeadRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	leads := scoped.Group("/leads")
	{
		leads.GET("", h.Lead.List)
		// Lead creation and import honor idempotency keys to prevent duplicates
		leads.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Lead.Create)
		leads.POST("/bulk-delete", h.Lead.BulkDelete)
		leads.POST("/bulk-update", h.Lead.BulkUpdate)
		leads.GET("/export", h.Lead.Export)
		leads.POST("/import", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Lead.Import)
		leads.GET("/:id", h.Lead.Get)
		leads.PUT("/:id", h.Lead.Update)
		leads.DELETE("/:id", h.Lead.Delete)
	}
}

func registerContactRoutes(scoped *gin.RouterGroup, h *Handlers) {
	contacts := scoped.Group("/contacts")
	{
		contacts.GET("", h.Contact.List)
		contacts.POST("", h.Contact.Create)
		contacts.GET("/:id", h.Contact.Get)
		contacts.DELETE("/:id", h.Contact.Delete)
		contacts.POST("/:id/convert", h.Contact.Convert)
	}
}

func registerPipelineRoutes(scoped *gin.RouterGroup, h *Handlers) {
	pipelines := scoped.Group("/pipelines")
	{
		pipelines.GET("", h.Pipeline.List)
		pipelines.POST("", h.Pipeline.Create)
		pipelines.GET("/:id", h.Pipeline.Get)
		pipelines.PUT("/:id", h.Pipeline.Update)
		pipelines.DELETE("/:id", h.Pipeline.Delete)
		pipelines.GET("/:id/stages", h.Pipeline.ListStages)
		pipelines.POST("/:id/stages", h.Pipeline.CreateStage)
	}

	stages := scoped.Group("/stages")
	{
		stages.PUT("/:stageId", h.Pipeline.UpdateStage)
		stages.DELETE("/:stageId", h.Pipeline.DeleteStage)
	}
}

func registerFormRoutes(scoped *gin.RouterGroup, h *Handlers) {
	forms := scoped.Group("/forms")
	{
		forms.GET("", h.Form.List)
		forms.POST("", h.Form.Create)
		forms.POST("/jotform/sync", h.Jotform.Sync)
		forms.GET("/:id", h.Form.Get)
		forms.PUT("/:id", h.Form.Update)
		forms.DELETE("/:id", h.Form.Delete)
		forms.POST("/:id/jotform", h.Jotform.Create)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.UpdateRole)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		roles.GET("", h.User.ListRoles)
	}
}
