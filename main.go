// Package main provides the main entry point for the Brandscope marketing assistant
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandscope-io/brandscope/app/handlers"
	"github.com/brandscope-io/brandscope/app/middleware"
	"github.com/brandscope-io/brandscope/app/router"
	"github.com/brandscope-io/brandscope/app/services"
	businessflow "github.com/brandscope-io/brandscope/business_flow"
	"github.com/brandscope-io/brandscope/config"
	_ "github.com/brandscope-io/brandscope/docs"
	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/repository"
	"github.com/brandscope-io/brandscope/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

// @title Brandscope API
// @version 1.0
// @description Brand marketing assistant API. Stores a brand profile, ICP personas, and market data, and generates marketing recommendations through a two-stage completion pipeline.
// @BasePath /
func main() {
	log.Println("Starting Brandscope application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Route log output through file rotation when configured
	setupLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Setup graceful shutdown
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging configures the standard logger output. With a file path set,
// logs rotate via lumberjack; "both" tees to stdout as well.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.FilePath == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	default:
		log.SetOutput(rotator)
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Keep the schema current
	if err := db.AutoMigrate(
		&models.BrandInfo{},
		&models.ICPPersona{},
		&models.CitedDomain{},
		&models.ChatSample{},
		&models.RecommendationSession{},
		&models.RecommendationAction{},
		&models.RecommendationExample{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Initialize repositories
	brandRepo := repository.NewBrandInfoRepository(db)
	icpRepo := repository.NewICPPersonaRepository(db)
	domainRepo := repository.NewCitedDomainRepository(db)
	chatRepo := repository.NewChatSampleRepository(db)
	sessionRepo := repository.NewRecommendationSessionRepository(db)
	actionRepo := repository.NewRecommendationActionRepository(db)
	exampleRepo := repository.NewRecommendationExampleRepository(db)

	// Captcha service for operator login
	captchaSvc, err := services.NewCaptchaServiceRotate(2*time.Minute, 15, 300)
	if err != nil {
		return nil, err
	}

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Log that services are initialized
	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Outbound services for scraping and model completions
	completionService := services.NewCompletionService(&cfg.Completion)
	scrapeService := services.NewScrapeService(&cfg.Scrape)

	// Shared in-memory log of model calls, served by the debug endpoints
	diagnosticLog := businessflow.NewDiagnosticLog(utils.MaxDiagnosticLogEntries)

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(&cfg.Operator, tokenService, captchaSvc)

	brandFlow := businessflow.NewBrandFlow(
		brandRepo,
		scrapeService,
		completionService,
		&cfg.Completion,
		&cfg.Cache,
		rc,
		diagnosticLog,
	)

	icpFlow := businessflow.NewICPFlow(
		icpRepo,
		brandRepo,
		chatRepo,
		domainRepo,
		completionService,
		&cfg.Completion,
		&cfg.Cache,
		rc,
		diagnosticLog,
	)

	marketDataFlow := businessflow.NewMarketDataFlow(
		brandRepo,
		icpRepo,
		domainRepo,
		chatRepo,
		&cfg.Cache,
		rc,
	)

	recommendationFlow := businessflow.NewRecommendationFlow(
		db,
		brandRepo,
		icpRepo,
		chatRepo,
		domainRepo,
		sessionRepo,
		actionRepo,
		exampleRepo,
		completionService,
		&cfg.Completion,
		&cfg.Cache,
		rc,
		diagnosticLog,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authFlow)
	brandHandler := handlers.NewBrandHandler(brandFlow)
	icpHandler := handlers.NewICPHandler(icpFlow)
	marketDataHandler := handlers.NewMarketDataHandler(marketDataFlow)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationFlow)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(
		cfg,
		authHandler,
		brandHandler,
		icpHandler,
		marketDataHandler,
		recommendationHandler,
		authMiddleware,
	)

	// Create application struct from FiberRouter
	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
