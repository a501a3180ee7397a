package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/auth"
	"github.com/fakecheck-ai/verdict-engine/pkg/classifier"
	"github.com/fakecheck-ai/verdict-engine/pkg/config"
	"github.com/fakecheck-ai/verdict-engine/pkg/database"
	"github.com/fakecheck-ai/verdict-engine/pkg/handlers"
	"github.com/fakecheck-ai/verdict-engine/pkg/logging"
	"github.com/fakecheck-ai/verdict-engine/pkg/middleware"
	"github.com/fakecheck-ai/verdict-engine/pkg/repositories"
	"github.com/fakecheck-ai/verdict-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("classifier_provider", cfg.Classifier.Provider),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())))

	ctx := context.Background()

	// Database
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	// Migrations run through database/sql (required by golang-migrate)
	sqlDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		logger.Fatal("Failed to open migration connection",
			zap.String("error", logging.SanitizeError(err)))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations",
			zap.String("error", logging.SanitizeError(err)))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	// Classifier
	classifierClient, err := classifier.New(&cfg.Classifier, logger)
	if err != nil {
		logger.Fatal("Failed to create classifier", zap.Error(err))
	}
	logger.Info("Classifier ready",
		zap.String("provider", cfg.Classifier.Provider),
		zap.String("model", classifierClient.Model()))

	// Repositories and services
	verdictRepo := repositories.NewVerdictRepository(db)
	votingService := services.NewVotingService(verdictRepo, logger)
	verdictService := services.NewVerdictService(classifierClient, verdictRepo, votingService, logger)

	// Authentication
	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSURL:            cfg.Auth.JWKSURL,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	mux := http.NewServeMux()

	// Register handlers
	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	checkHandler := handlers.NewCheckHandler(verdictService, logger)
	checkHandler.RegisterRoutes(mux, authMiddleware)

	voteHandler := handlers.NewVoteHandler(verdictService, logger)
	voteHandler.RegisterRoutes(mux, authMiddleware)

	historyHandler := handlers.NewHistoryHandler(verdictService, logger)
	historyHandler.RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := fmt.Sprintf("%s:%s", cfg.BindAddr, cfg.Port)
	logger.Info("Starting verdict-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
