package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"neowealth/internal/jobs"
	"neowealth/internal/repository"
	"neowealth/internal/service"
	"neowealth/pkg/config"
	"neowealth/pkg/logger"
	"neowealth/pkg/postgres"

	"go.uber.org/zap"
)

// Credits the daily login reward to every active user. Meant to run once
// per day from cron or a scheduler.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	rewardParams, err := service.ParseRewardParams(&cfg.Rewards)
	if err != nil {
		appLogger.Fatal("Invalid reward configuration", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	walletRepo := repository.NewWalletRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	walletService := service.NewWalletService(db, walletRepo, txRepo, rewardParams, appLogger)

	sweep := jobs.NewDailyRewardSweep(userRepo, walletService, appLogger)
	if _, err := sweep.Run(ctx); err != nil {
		appLogger.Fatal("Daily reward sweep failed", zap.Error(err))
	}
}
