package main

import (
	"fmt"
	"log"
	"net/http"

	"gotours/internal/config"
	"gotours/internal/handlers"
	"gotours/internal/middleware"
	"gotours/internal/repositories/mongodb"
	"gotours/internal/services"
	"gotours/pkg/cache"
	"gotours/pkg/database"
	"gotours/pkg/logger"
	"gotours/pkg/mailer"
	"gotours/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: cfg.App.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	// Redis is optional; without it user reads go straight to the database.
	var userCache mongodb.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()
		userCache = redisCache
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database, userCache)
	tourRepo := mongodb.NewTourRepository(db.Database)
	reviewRepo := mongodb.NewReviewRepository(db.Database)

	// Services
	mail := mailer.NewSMTPMailer(&mailer.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.FromEmail,
		FromName: cfg.SMTP.FromName,
	})
	authService := services.NewAuthService(userRepo, mail, cfg.Security.JWTSecret, cfg.Security.JWTTTL, cfg.App.BaseURL, appLogger)
	reviewService := services.NewReviewService(reviewRepo, tourRepo, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	tourHandler := handlers.NewTourHandler(tourRepo, userRepo)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, reviewService, userRepo)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.ErrorHandler(cfg.App.Environment, appLogger))

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupTourRoutes(v1, tourHandler, reviewHandler, userRepo, cfg.Security.JWTSecret)
		routes.SetupUserRoutes(v1, userHandler, authHandler, userRepo, cfg.Security.JWTSecret)
		routes.SetupReviewRoutes(v1, reviewHandler, userRepo, cfg.Security.JWTSecret)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("Starting server")
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.WithError(err).Fatal("Server stopped")
	}
}
