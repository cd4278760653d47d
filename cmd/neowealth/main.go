package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"neowealth/internal/api"
	"neowealth/internal/api/handlers"
	"neowealth/internal/repository"
	"neowealth/internal/service"
	"neowealth/pkg/auth"
	"neowealth/pkg/config"
	"neowealth/pkg/logger"
	"neowealth/pkg/postgres"

	"go.uber.org/zap"
)

// @title NeoWealth API
// @version 1.0
// @description Personal finance backend with a NeoCoin reward wallet, savings goals, group hives and behavior insights

// @contact.name API Support
// @contact.email support@neowealth.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting NeoWealth service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	walletRepo := repository.NewWalletRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	hiveRepo := repository.NewHiveRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	rewardParams, err := service.ParseRewardParams(&cfg.Rewards)
	if err != nil {
		appLogger.Fatal("Invalid reward configuration", zap.Error(err))
	}

	classifier := service.NewClassifierService(appLogger)
	walletService := service.NewWalletService(db, walletRepo, txRepo, rewardParams, appLogger)
	txService := service.NewTransactionService(db, txRepo, walletService, classifier, appLogger)
	goalService := service.NewGoalService(goalRepo, txRepo, appLogger)
	hiveService := service.NewHiveService(db, hiveRepo, userRepo, appLogger)
	insightService := service.NewInsightService(txRepo, appLogger)
	decisionService := service.NewDecisionService(txRepo, goalRepo, walletService, appLogger)
	authService := service.NewAuthService(db, userRepo, walletRepo, txRepo, jwtManager, rewardParams, appLogger)
	userService := service.NewUserService(userRepo, walletRepo, txRepo, goalRepo, appLogger)

	// Initialize handlers
	h := api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, appLogger),
		User:        handlers.NewUserHandler(userService, appLogger),
		Wallet:      handlers.NewWalletHandler(walletService, txService, appLogger),
		Transaction: handlers.NewTransactionHandler(txService, classifier, appLogger),
		Goal:        handlers.NewGoalHandler(goalService, appLogger),
		Hive:        handlers.NewHiveHandler(hiveService, appLogger),
		Insight:     handlers.NewInsightHandler(insightService, decisionService, appLogger),
		Webhook:     handlers.NewWebhookHandler(txService, cfg.Webhook.APIKey, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
