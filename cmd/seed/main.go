package main

import (
	"context"
	"log"
	"time"

	"neowealth/internal/models"
	"neowealth/internal/repository"
	"neowealth/internal/service"
	"neowealth/pkg/auth"
	"neowealth/pkg/config"
	"neowealth/pkg/logger"
	"neowealth/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Seeds a demo user with a month of transactions, a goal and a hive so
// the API has something to show on a fresh database.
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

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	walletRepo := repository.NewWalletRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	hiveRepo := repository.NewHiveRepository(db, appLogger)

	rewardParams, err := service.ParseRewardParams(&cfg.Rewards)
	if err != nil {
		appLogger.Fatal("Invalid reward configuration", zap.Error(err))
	}

	appLogger.Info("Starting database seeding...")

	const demoEmail = "demo@neowealth.app"
	if _, err := userRepo.GetByEmail(ctx, demoEmail); err == nil {
		appLogger.Info("Demo user already exists, nothing to do")
		return
	} else if err != pgx.ErrNoRows {
		appLogger.Fatal("Failed to check demo user", zap.Error(err))
	}

	hashed, err := auth.HashPassword("demo1234")
	if err != nil {
		appLogger.Fatal("Failed to hash demo password", zap.Error(err))
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:            uuid.New(),
		Email:         demoEmail,
		Password:      hashed,
		FirstName:     "Demo",
		LastName:      "User",
		MonthlyIncome: decimal.NewFromInt(60000),
		RiskTolerance: models.RiskMedium,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := userRepo.Create(ctx, db, user); err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	wallet := &models.Wallet{
		ID:               uuid.New(),
		UserID:           user.ID,
		NeoCoins:         rewardParams.InitialBalance,
		TotalEarned:      rewardParams.InitialBalance,
		RewardMultiplier: decimal.NewFromInt(1),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := walletRepo.Create(ctx, db, wallet); err != nil {
		appLogger.Fatal("Failed to create demo wallet", zap.Error(err))
	}

	seedTransactions := []struct {
		txType      models.TransactionType
		category    string
		amount      int64
		description string
		daysAgo     int
	}{
		{models.TypeIncome, "income", 60000, "Monthly salary", 25},
		{models.TypeExpense, "food", 450, "Lunch at Dominos", 20},
		{models.TypeExpense, "food", 1200, "Grocery run at BigBasket", 15},
		{models.TypeExpense, "transport", 350, "Uber to office", 12},
		{models.TypeExpense, "shopping", 2500, "Shoes from Amazon", 10},
		{models.TypeExpense, "entertainment", 800, "Movie night", 8},
		{models.TypeExpense, "utilities", 1800, "Electricity bill", 6},
		{models.TypeInvestment, "investment", 5000, "Mutual fund SIP", 5},
		{models.TypeExpense, "food", 650, "Dinner with friends", 2},
	}

	for _, row := range seedTransactions {
		amount := decimal.NewFromInt(row.amount)
		if row.txType == models.TypeExpense {
			amount = amount.Neg()
		}
		date := now.AddDate(0, 0, -row.daysAgo)
		tx := &models.Transaction{
			ID:          uuid.New(),
			UserID:      user.ID,
			Type:        row.txType,
			Category:    row.category,
			Amount:      amount,
			Description: row.description,
			Date:        date,
			CreatedAt:   date,
			UpdatedAt:   date,
		}
		if err := txRepo.Create(ctx, db, tx); err != nil {
			appLogger.Fatal("Failed to create demo transaction", zap.Error(err))
		}
	}

	goal := &models.Goal{
		ID:            uuid.New(),
		UserID:        user.ID,
		Title:         "Goa Trip",
		Description:   "Beach vacation in December",
		TargetAmount:  decimal.NewFromInt(50000),
		CurrentAmount: decimal.NewFromInt(12000),
		TargetDate:    now.AddDate(0, 4, 0),
		Category:      models.GoalVacation,
		Priority:      models.PriorityMedium,
		Status:        models.GoalActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := goalRepo.Create(ctx, goal); err != nil {
		appLogger.Fatal("Failed to create demo goal", zap.Error(err))
	}

	hive := &models.Hive{
		ID:                  uuid.New(),
		Name:                "Vacation Squad",
		Description:         "Saving together for a group trip",
		MaxMembers:          5,
		CurrentMembers:      1,
		GoalType:            models.GoalVacation,
		TargetAmount:        decimal.NewFromInt(200000),
		RiskLevel:           models.RiskMedium,
		MonthlyContribution: decimal.NewFromInt(5000),
		Status:              models.HiveActive,
		EndDate:             now.AddDate(1, 0, 0),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := hiveRepo.Create(ctx, db, hive); err != nil {
		appLogger.Fatal("Failed to create demo hive", zap.Error(err))
	}

	member := &models.HiveMember{
		ID:                  uuid.New(),
		UserID:              user.ID,
		HiveID:              hive.ID,
		Role:                models.RoleAdmin,
		MonthlyContribution: decimal.NewFromInt(5000),
		Status:              models.MemberActive,
		ConsistencyScore:    decimal.NewFromInt(1),
		JoinedAt:            now,
		UpdatedAt:           now,
	}
	if err := hiveRepo.CreateMember(ctx, db, member); err != nil {
		appLogger.Fatal("Failed to create demo hive membership", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("email", demoEmail),
		zap.String("password", "demo1234"))
}
