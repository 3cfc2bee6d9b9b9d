// @title Quiz Automation API
// @version 1.0
// @description Converts plain-text quiz documents into quiz sets and manages the quiz-set catalog.
// @host localhost:8000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"quiz-automation/internal/app"
	"quiz-automation/internal/config"
	"quiz-automation/internal/handler"
	"quiz-automation/internal/logger"
	"quiz-automation/internal/middleware"
	"quiz-automation/internal/validation"

	_ "quiz-automation/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if cfg.File != "" {
		appLogger.Info("Loaded configuration", zap.String("file", cfg.File))
	}

	ctx := context.Background()
	components, err := app.Build(ctx, cfg, afero.NewOsFs(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize quiz automation", zap.Error(err))
	}
	defer components.Close()
	appLogger.Info("QuizAutomationService initialized",
		zap.String("data_dir", cfg.Storage.DataDir),
		zap.String("catalog", components.Catalog.Path()),
	)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(components.Service, cfg.Server.ConversionTimeout)
	validationMiddleware := middleware.NewValidationMiddleware(validation.NewValidator(cfg.Storage.CatalogFile))
	if cfg.Auth.JWTSecret == "" {
		appLogger.Warn("auth.jwt_secret is not set, create and delete endpoints are unprotected")
	}

	// Create Fiber app
	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(middleware.RequestLogger())
	fiberApp.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))

	// Swagger handler
	fiberApp.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := fiberApp.Group("/api")
	handler.RegisterRoutes(apiGroup, quizHandler, validationMiddleware, cfg.Auth.JWTSecret)

	// Front-end pages
	webRoot := cfg.Server.WebRoot
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(webRoot, "index.html"))
	})
	fiberApp.Get("/config", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(webRoot, "config.html"))
	})
	fiberApp.Static("/", webRoot)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
