package main

import (
	"context"
	"log"
	"os"

	"applauncher-backend/config"
	"applauncher-backend/handlers"
	"applauncher-backend/llm"
	"applauncher-backend/repository"
	"applauncher-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Initialize criteria store
	store, closeStore, err := repository.Open(ctx, cfg.Storage,
		os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), logger)
	if err != nil {
		logger.Fatal("Failed to initialize criteria store", zap.Error(err))
	}
	defer closeStore()
	logger.Info("Criteria store initialized", zap.String("type", cfg.Storage.Type))

	// Initialize completion client
	completer, closeLLM, err := llm.NewFromConfig(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Fatal("Failed to initialize LLM client", zap.Error(err))
	}
	defer closeLLM.Close()
	logger.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("default_model", cfg.LLM.DefaultModel),
		zap.Int("max_concurrency", cfg.LLM.MaxConcurrency))

	// Initialize services
	criteriaService := service.NewCriteriaService(
		service.WithCriteriaRepository(store),
		service.WithSelectionRepository(store),
	)
	subsidyService := service.NewSubsidyService(
		service.SubsidyWithCompleter(completer),
		service.SubsidyWithCriteriaService(criteriaService),
		service.SubsidyWithDefaultModel(cfg.LLM.DefaultModel),
		service.SubsidyWithLogger(logger),
	)
	simplifyService := service.NewSimplifyServiceFromConfig(cfg, completer, service.NewTokenizer(logger), logger)

	// Initialize handlers
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handlers.NewRouter(handlers.Handlers{
		Simplify: handlers.NewSimplifyHandler(simplifyService, cfg.Simplify.MaxInputWords, logger),
		Subsidy:  handlers.NewSubsidyHandler(subsidyService),
		Criteria: handlers.NewCriteriaHandler(criteriaService),
	}, logger)

	logger.Info("Server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
