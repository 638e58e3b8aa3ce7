package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lab-document-tracking/internal/account"
	"lab-document-tracking/internal/cache"
	"lab-document-tracking/internal/config"
	"lab-document-tracking/internal/db"
	"lab-document-tracking/internal/document"
	"lab-document-tracking/internal/institution"
	"lab-document-tracking/internal/middleware"
	"lab-document-tracking/internal/tracking"
	"lab-document-tracking/internal/user"
	"lab-document-tracking/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	config.LoadConfig()

	if config.AppConfig.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Connect to database
	appDb, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to db")
	}
	defer db.Close(appDb)

	// Migrate database schema
	db.Migrate(appDb)

	// Seed database with initial data (for development)
	if config.AppConfig.Environment == "development" {
		db.SeedData(appDb)
	}

	// Initialize Redis-backed cache
	appCache := cache.New(config.AppConfig.RedisAddress)
	defer appCache.Close()

	// Background pool for attachment cleanup
	pool := worker.NewWorkerPool(4)
	defer pool.Shutdown()

	// Initialize repositories
	userRepo := user.NewRepository(appDb)
	institutionRepo := institution.NewRepository(appDb)
	documentRepo := document.NewRepository(appDb)
	trackingRepo := tracking.NewRepository(appDb)

	// Initialize services
	userService := user.NewService(userRepo)
	accountService := account.NewService(userRepo)
	institutionService := institution.NewService(institutionRepo, appCache)
	documentService := document.NewService(documentRepo, appCache, pool, config.AppConfig.UploadDir)
	trackingService := tracking.NewService(trackingRepo, appCache)

	// Initialize handlers
	accountHandler := account.NewHandler(accountService)
	userHandler := user.NewHandler(userService)
	institutionHandler := institution.NewHandler(institutionService)
	documentHandler := document.NewHandler(documentService)
	trackingHandler := tracking.NewHandler(trackingService)

	authMiddleware := &middleware.Auth{UserService: userService}

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// cors setting
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Uploaded attachments are served statically
	router.Static("/uploads", config.AppConfig.UploadDir)

	// Credential & session routes
	router.POST("/auth/login", accountHandler.Login)
	router.GET("/auth/profile", authMiddleware.AuthMiddleware(), accountHandler.GetProfile)
	router.POST("/auth/profile", authMiddleware.AuthMiddleware(), accountHandler.UpdateProfile)

	// Institution directory routes
	router.POST("/institutions/register", institutionHandler.Register)
	router.GET("/institutions", institutionHandler.List)
	router.GET("/institutions/me", authMiddleware.AuthMiddleware(), institutionHandler.Me)
	router.PATCH("/institutions/me", authMiddleware.AuthMiddleware(), institutionHandler.UpdateMe)
	router.GET("/institutions/:slug", institutionHandler.FindBySlug)

	// Public tracking routes
	router.GET("/tracking", trackingHandler.GetTracking)
	if config.AppConfig.EnableTrackingDump {
		log.Warn().Msg("tracking dump endpoint enabled")
		router.GET("/tracking/all", trackingHandler.GetAll)
	}

	// Institution-scoped document routes
	documents := router.Group("/admin/documents", authMiddleware.AuthMiddleware())
	documents.GET("", documentHandler.List)
	documents.POST("", documentHandler.Create)
	documents.GET("/:id", documentHandler.Detail)
	documents.PATCH("/:id", documentHandler.Update)
	documents.DELETE("/:id", documentHandler.Remove)
	documents.POST("/:id/historis", documentHandler.AddHistoris)

	// Superadmin user administration routes
	users := router.Group("/admin/users", authMiddleware.AuthMiddleware(), middleware.SuperadminOnly())
	users.GET("", userHandler.List)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Remove)

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Info().Str("port", serverPort).Msg("server listening")
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shutdown complete")
}
