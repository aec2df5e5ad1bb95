package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/leadhive/leadhive-api/internal/application/service"
	"github.com/leadhive/leadhive-api/internal/config"
	"github.com/leadhive/leadhive-api/internal/infrastructure/database"
	"github.com/leadhive/leadhive-api/internal/infrastructure/repository"
	"github.com/leadhive/leadhive-api/internal/presentation/http/handler"
	"github.com/leadhive/leadhive-api/internal/presentation/http/routes"
	"github.com/leadhive/leadhive-api/internal/realtime"
	"github.com/leadhive/leadhive-api/pkg/jotform"
	"github.com/leadhive/leadhive-api/pkg/oauth"
	"github.com/leadhive/leadhive-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	pipelineRepo := repository.NewPipelineRepository(db)
	stageRepo := repository.NewStageRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	contactRepo := repository.NewContactRepository(db)
	formRepo := repository.NewFormRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.App.FrontendURL + "/auth/callback",
		FrontendErrorURL:   cfg.App.FrontendURL + "/login?error=oauth",
	})

	// Initialize Jotform client when an API key is configured
	var jotformClient service.JotformClient
	if cfg.Jotform.APIKey != "" {
		jotformClient = jotform.NewClient(cfg.Jotform.APIKey, cfg.Jotform.BaseURL)
	}

	// Websocket hub pushing change events to connected dashboards
	hub := realtime.NewHub()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	tenantService := service.NewTenantService(tenantRepo)
	userService := service.NewUserService(userRepo)
	pipelineService := service.NewPipelineService(pipelineRepo, stageRepo, hub)
	leadService := service.NewLeadService(leadRepo, stageRepo, pipelineService, hub)
	contactService := service.NewContactService(contactRepo, leadRepo, formRepo, hub)
	formService := service.NewFormService(formRepo, contactService, hub)
	jotformService := service.NewJotformService(formRepo, contactRepo, contactService, jotformClient)
	dashboardService := service.NewDashboardService(analyticsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, tenantService, googleOAuthService),
		Tenant:    handler.NewTenantHandler(tenantService),
		Lead:      handler.NewLeadHandler(leadService),
		Contact:   handler.NewContactHandler(contactService),
		Pipeline:  handler.NewPipelineHandler(pipelineService),
		Form:      handler.NewFormHandler(formService),
		Jotform:   handler.NewJotformHandler(jotformService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Events:    handler.NewEventsHandler(hub),
		User:      handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
