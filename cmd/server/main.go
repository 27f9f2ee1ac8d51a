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

	"github.com/sharebnb/service-reservation/internal/application"
	"github.com/sharebnb/service-reservation/internal/common/auth"
	"github.com/sharebnb/service-reservation/internal/common/database"
	"github.com/sharebnb/service-reservation/internal/common/health"
	"github.com/sharebnb/service-reservation/internal/common/kafka"
	"github.com/sharebnb/service-reservation/internal/common/logger"
	"github.com/sharebnb/service-reservation/internal/common/middleware"
	"github.com/sharebnb/service-reservation/internal/config"
	reservationDomain "github.com/sharebnb/service-reservation/internal/domain/reservation"
	reservationEvents "github.com/sharebnb/service-reservation/internal/events"
	"github.com/sharebnb/service-reservation/internal/handler"
	"github.com/sharebnb/service-reservation/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-reservation")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-reservation",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.ReservationModel{},
			&repository.BookedDayModel{},
			&repository.MemberModel{},
			&repository.AccommodationModel{},
			&repository.PictureModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := dbConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	reservationRepo := repository.NewGormReservationRepository(db)
	bookedDayRepo := repository.NewGormBookedDayRepository(db)
	memberRepo := repository.NewGormMemberRepository(db)
	accommodationRepo := repository.NewGormAccommodationRepository(db)
	pictureRepo := repository.NewGormPictureRepository(db)

	// Initialize reservation code generator
	codeGenerator := reservationDomain.NewCodeGenerator()

	// Initialize application services
	reservationService := application.NewReservationService(
		reservationRepo,
		bookedDayRepo,
		memberRepo,
		accommodationRepo,
		pictureRepo,
		codeGenerator,
		kafkaProducer,
		log,
	)
	accommodationService := application.NewAccommodationService(accommodationRepo, log)
	pictureService := application.NewPictureService(pictureRepo, accommodationRepo, log)

	// Initialize and start payment event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "reservation-service"
	paymentConsumer := reservationEvents.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		reservationService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	reservationHandler := handler.NewReservationHandler(reservationService)
	accommodationHandler := handler.NewAccommodationHandler(accommodationService)
	pictureHandler := handler.NewPictureHandler(pictureService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-reservation")
	healthHandler.RegisterRoutes(router)

	// Register routes
	reservationHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	accommodationHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	pictureHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Register admin handler routes
	adminReservationHandler := handler.NewAdminReservationHandler(reservationService)
	adminReservationHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

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

	log.Info("shutting down service-reservation...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-reservation stopped")
}
