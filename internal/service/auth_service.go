package service

import (
	"context"
	"errors"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"
	"neowealth/internal/repository"
	"neowealth/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AuthService handles registration and login. Registration creates the
// user and their wallet, seeded with the welcome NeoCoin balance, in one
// transaction.
type AuthService struct {
	db         *pgxpool.Pool
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
	txRepo     *repository.TransactionRepository
	jwtManager *auth.JWTManager
	params     RewardParams
	logger     *zap.Logger
}

func NewAuthService(
	db *pgxpool.Pool,
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
	txRepo *repository.TransactionRepository,
	jwtManager *auth.JWTManager,
	params RewardParams,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		db:         db,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		jwtManager: jwtManager,
		params:     params,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:            uuid.New(),
		Email:         req.Email,
		Password:      hashed,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		MonthlyIncome: decimal.NewFromFloat(req.MonthlyIncome),
		RiskTolerance: models.RiskMedium,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	wallet := &models.Wallet{
		ID:               uuid.New(),
		UserID:           user.ID,
		NeoCoins:         s.params.InitialBalance,
		TotalEarned:      s.params.InitialBalance,
		RewardMultiplier: decimal.NewFromInt(1),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	welcome := &models.Transaction{
		ID:          uuid.New(),
		UserID:      user.ID,
		Type:        models.TypeIncome,
		Category:    models.CategoryRewards,
		Amount:      s.params.InitialBalance,
		Description: "Welcome bonus",
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		if err := s.walletRepo.Create(ctx, tx, wallet); err != nil {
			return err
		}
		return s.txRepo.Create(ctx, tx, welcome)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Warn("Failed to record last login", zap.Error(err))
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:         ToUserResponse(user),
	}, nil
}

func ToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Phone:         user.Phone,
		MonthlyIncome: user.MonthlyIncome.InexactFloat64(),
		RiskTolerance: string(user.RiskTolerance),
	}
}
