package service

import (
	"context"
	"errors"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"
	"neowealth/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
	txRepo     *repository.TransactionRepository
	goalRepo   *repository.GoalRepository
	logger     *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
	txRepo *repository.TransactionRepository,
	goalRepo *repository.GoalRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		goalRepo:   goalRepo,
		logger:     logger,
	}
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.MonthlyIncome > 0 {
		user.MonthlyIncome = decimal.NewFromFloat(req.MonthlyIncome)
	}
	if req.RiskTolerance != "" {
		user.RiskTolerance = models.RiskTolerance(req.RiskTolerance)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Dashboard aggregates the user's wallet, recent activity, active goals
// and the 30-day health score into one payload.
func (s *UserService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	recent, err := s.txRepo.ListRecent(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.ListByUser(ctx, userID, models.GoalActive)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	month, err := s.txRepo.ListSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	health := ScoreFinancialHealth(month)

	recentResponses := make([]dto.TransactionResponse, 0, len(recent))
	for _, tx := range recent {
		recentResponses = append(recentResponses, ToTransactionResponse(tx))
	}

	goalResponses := make([]dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		goalResponses = append(goalResponses, ToGoalResponse(goal, now))
	}

	return &dto.DashboardResponse{
		User:               ToUserResponse(user),
		Wallet:             ToWalletResponse(wallet),
		RecentTransactions: recentResponses,
		ActiveGoals:        goalResponses,
		HealthScore:        health.HealthScore,
	}, nil
}
