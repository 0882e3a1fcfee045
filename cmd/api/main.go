package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tillboard/tillboard-api/internal/application/service"
	"github.com/tillboard/tillboard-api/internal/config"
	"github.com/tillboard/tillboard-api/internal/infrastructure/cache"
	"github.com/tillboard/tillboard-api/internal/infrastructure/database"
	"github.com/tillboard/tillboard-api/internal/infrastructure/repository"
	"github.com/tillboard/tillboard-api/internal/presentation/http/handler"
	"github.com/tillboard/tillboard-api/internal/presentation/http/routes"
	"github.com/tillboard/tillboard-api/pkg/oauth"
	"github.com/tillboard/tillboard-api/pkg/utils"
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

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	cacheRepo := repository.NewCacheRepository(db)

	// In-process cache tier
	memoryCache := cache.NewMemoryCache(cfg.Cache.MemoryTTL)

	// Sweep expired persistent cache rows in the background
	go func() {
		ticker := time.NewTicker(cfg.Cache.DatabaseTTL)
		defer ticker.Stop()
		for range ticker.C {
			if err := cacheRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: cache sweep failed: %v", err)
			}
		}
	}()

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	takingsService := service.NewTakingsService(accountRepo, cacheRepo, memoryCache, cfg.Loyverse, cfg.Cache)
	accountService := service.NewAccountService(accountRepo, takingsService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Account: handler.NewAccountHandler(accountService),
		Takings: handler.NewTakingsHandler(takingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
