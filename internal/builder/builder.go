package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dailysync/standup-backend/internal/api"
	aiapi "github.com/dailysync/standup-backend/internal/api/ai"
	"github.com/dailysync/standup-backend/internal/api/middleware"
	settingsapi "github.com/dailysync/standup-backend/internal/api/settings"
	"github.com/dailysync/standup-backend/internal/config"
	"github.com/dailysync/standup-backend/internal/integration/llm"
	"github.com/dailysync/standup-backend/internal/pkg/validator"
	"github.com/dailysync/standup-backend/internal/repository"
	"github.com/dailysync/standup-backend/internal/usecase/advice"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserPostgres(db)
	workdayRepo := repository.NewWorkdayPostgres(db)
	adviceRepo := repository.NewAdvicePostgres(db)
	digestRepo := repository.NewDigestPostgres(db)
	settingsRepo := repository.NewSettingsCache(repository.NewSettingsPostgres(db), cfg.SettingsCacheTTL)
	logger.Info("Repositories initialized")

	// Initialize the LLM gateway
	gateway := llm.NewGateway(cfg.LLMGatewayCfg, logger)
	logger.Info("LLM gateway initialized")

	// Initialize validators
	reqValidator := validator.NewValidator()

	// Initialize use cases
	adviceUC := advice.NewUsecase(
		userRepo,
		workdayRepo,
		adviceRepo,
		digestRepo,
		settingsRepo,
		gateway,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	aiHandler := aiapi.NewHandler(adviceUC, reqValidator)
	settingsHandler := settingsapi.NewHandler(adviceUC, reqValidator)
	logger.Info("API handlers initialized")

	// The dev resolver stands in for a session layer; swap it out when real
	// authentication lands.
	resolver := middleware.NewDevResolver(userRepo)

	// Setup router
	router := api.SetupRouter(aiHandler, settingsHandler, resolver, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
