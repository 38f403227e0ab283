package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/kwitansi-api/internal/application/form"
	"github.com/sangkips/kwitansi-api/internal/application/service"
	"github.com/sangkips/kwitansi-api/internal/config"
	"github.com/sangkips/kwitansi-api/internal/infrastructure/database"
	"github.com/sangkips/kwitansi-api/internal/infrastructure/repository"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/handler"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/middleware"
	"github.com/sangkips/kwitansi-api/internal/presentation/http/routes"
	"github.com/sangkips/kwitansi-api/pkg/logger"
	"github.com/sangkips/kwitansi-api/pkg/pdf"
	"github.com/sangkips/kwitansi-api/pkg/printer"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.InitLoggerWithConfig(logger.LoggerConfig{
		Level:       cfg.Log.Level,
		Stage:       cfg.App.Env,
		Service:     cfg.App.Name,
		EnableJSON:  cfg.Log.JSON,
		EnableColor: !cfg.Log.JSON,
	}); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Log

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Warn("Failed to seed default data", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	kwitansiRepo := repository.NewKwitansiRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Open forms live in memory until saved, discarded or idle past the TTL
	formStore := form.NewStore(cfg.Receipt.DraftTTL, log)
	go formStore.Run(ctx, time.Minute)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("Failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter, _ = printer.New(printer.Config{Type: printer.TypeNone})
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	formService := service.NewFormService(kwitansiRepo, formStore, service.FormOptions{
		CurrencyUnit: cfg.Receipt.CurrencyUnit,
		Location:     cfg.Receipt.Location,
	}, log)
	kwitansiService := service.NewKwitansiService(kwitansiRepo, cfg.Receipt.Location, log)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Width, log)
	documentService := service.NewDocumentService(formService, kwitansiService, printerService, pdf.Options{
		Copies:   cfg.Receipt.CopiesPerPDF,
		Instansi: cfg.Receipt.Instansi,
	})
	reportService := service.NewReportService(kwitansiRepo)
	backupService := service.NewBackupService(kwitansiRepo, log)

	// Background cleanup
	rateLimiter := middleware.NewUserRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	go rateLimiter.Run(ctx, 5*time.Minute)
	go middleware.RunIdempotencyCleanup(ctx, idempotencyRepo, time.Hour, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Form:     handler.NewFormHandler(formService, documentService),
		Kwitansi: handler.NewKwitansiHandler(kwitansiService, formService, documentService, reportService),
		Backup:   handler.NewBackupHandler(backupService, cfg.Backup.MaxUploadSize),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Logger:          log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shut down", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
