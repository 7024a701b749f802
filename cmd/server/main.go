package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/datavet/pet-service/internal/application"
	"github.com/datavet/pet-service/internal/config"
	"github.com/datavet/pet-service/internal/database"
	"github.com/datavet/pet-service/internal/events"
	"github.com/datavet/pet-service/internal/handler"
	"github.com/datavet/pet-service/internal/health"
	"github.com/datavet/pet-service/internal/kafka"
	"github.com/datavet/pet-service/internal/logger"
	"github.com/datavet/pet-service/internal/middleware"
	"github.com/datavet/pet-service/internal/repository"
	"github.com/datavet/pet-service/internal/seed"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "pet-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting pet-service",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.PetModel{}, &repository.VetModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer and pet event notifier
	producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = producer.Close() }()
	petEvents := events.NewPetEventProducer(producer, log)

	// Initialize repositories
	petRepo := repository.NewGormPetRepository(db)
	vetRepo := repository.NewGormVetRepository(db)

	// Seed sample data into empty tables
	if cfg.SeedData {
		if err := seed.Run(context.Background(), petRepo, vetRepo, log); err != nil {
			log.Error("failed to seed sample data", zap.Error(err))
		}
	}

	// Initialize application services
	petService := application.NewPetService(petRepo, petEvents, log)
	vetService := application.NewVetService(vetRepo, log)

	// Initialize HTTP handlers
	petHandler := handler.NewPetHandler(petService)
	vetHandler := handler.NewVetHandler(vetService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Register health check routes
	healthHandler := health.NewHandler(db, "pet-service")
	healthHandler.RegisterRoutes(router)

	// Register routes
	petHandler.RegisterRoutes(&router.RouterGroup)
	vetHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down pet-service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("pet-service stopped")
}
