package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reservaplus/internal/caching"
	"reservaplus/internal/config"
	"reservaplus/internal/handlers"
	"reservaplus/internal/jobs/background"
	"reservaplus/internal/middleware"
	"reservaplus/internal/repositories"
	"reservaplus/internal/services"
	"reservaplus/pkg/database"
)

const version = "1.0.0"

// @title ReservaPlus Auth Gateway
// @version 1.0
// @description Multi-tenant authentication and authorization gateway.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	avatarSvc, err := services.NewAvatarService(cfg.Minio)
	if err != nil {
		log.Fatalf("Failed to initialize avatar storage: %v", err)
	}
	if err := avatarSvc.EnsureBucketExists(ctx); err != nil {
		log.Printf("WARN: avatar bucket check failed: %v", err)
	}

	verifier, err := services.NewAuth0Verifier(cfg.Auth0)
	if err != nil {
		log.Fatalf("Failed to initialize identity verifier: %v", err)
	}
	defer verifier.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	membershipRepo := repositories.NewMembershipRepository(pool)

	// Services
	provisioningSvc := services.NewProvisioningService(userRepo)
	orgContextSvc := services.NewOrgContextService(membershipRepo)
	sessionSvc := services.NewSessionService(cfg.JWT)
	authSvc := services.NewAuthService(cfg.Auth0, cfg.AppURL, userRepo, orgContextSvc, sessionSvc)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(verifier, provisioningSvc, orgContextSvc)
	authRateLimit := middleware.RateLimit(cacheSvc, 30, time.Minute)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	userHandlers := handlers.NewUserHandlers(userRepo, avatarSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, avatarSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(pool, cacheSvc, cfg.Auth0.JWKSURL())
	scheduler.Start()
	defer scheduler.Stop()

	// Echo instance and global middleware
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Route policies
	public := middleware.RoutePolicy{Public: true}
	protected := middleware.RoutePolicy{}
	protectedNoOrg := middleware.RoutePolicy{AllowWithoutOrganization: true}

	// Health and docs
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Auth routes
	auth := e.Group("/auth")
	auth.GET("/login", authHandlers.GetLoginURL, authMiddleware.WithPolicy(public), authRateLimit)
	auth.POST("/callback", authHandlers.Callback, authMiddleware.WithPolicy(public))
	auth.POST("/refresh", authHandlers.RefreshToken, authMiddleware.WithPolicy(public), authRateLimit)
	auth.GET("/profile", authHandlers.GetProfile, authMiddleware.WithPolicy(protectedNoOrg))
	auth.GET("/me", authHandlers.Me, authMiddleware.WithPolicy(protectedNoOrg))
	auth.POST("/switch-organization", authHandlers.SwitchOrganization, authMiddleware.WithPolicy(protectedNoOrg))
	auth.POST("/logout", authHandlers.Logout, authMiddleware.WithPolicy(protectedNoOrg))

	// User directory
	v1 := e.Group("/v1")
	v1.GET("/users", userHandlers.ListUsers, authMiddleware.WithPolicy(protected))
	v1.PUT("/users/me", userHandlers.UpdateMe, authMiddleware.WithPolicy(protectedNoOrg))
	v1.POST("/users/me/avatar", userHandlers.UploadAvatar, authMiddleware.WithPolicy(protectedNoOrg))

	log.Printf("ReservaPlus auth gateway v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
