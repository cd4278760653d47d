package jobs

import (
	"context"

	"neowealth/internal/repository"
	"neowealth/internal/service"

	"go.uber.org/zap"
)

// SweepResult counts what a daily reward sweep did.
type SweepResult struct {
	Processed int
	Awarded   int
	Skipped   int
	Failed    int
}

// DailyRewardSweep walks every active user and credits their daily
// reward. One user's failure never stops the sweep.
type DailyRewardSweep struct {
	userRepo  *repository.UserRepository
	walletSvc *service.WalletService
	logger    *zap.Logger
}

func NewDailyRewardSweep(userRepo *repository.UserRepository, walletSvc *service.WalletService, logger *zap.Logger) *DailyRewardSweep {
	return &DailyRewardSweep{
		userRepo:  userRepo,
		walletSvc: walletSvc,
		logger:    logger,
	}
}

func (s *DailyRewardSweep) Run(ctx context.Context) (SweepResult, error) {
	ids, err := s.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	var result SweepResult
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Processed++

		amount, awarded, err := s.walletSvc.AwardDailyReward(ctx, id)
		if err != nil {
			result.Failed++
			s.logger.Warn("Daily reward failed for user",
				zap.String("user_id", id.String()),
				zap.Error(err))
			continue
		}
		if !awarded {
			result.Skipped++
			continue
		}

		result.Awarded++
		s.logger.Info("Daily reward credited",
			zap.String("user_id", id.String()),
			zap.String("amount", amount.String()))
	}

	s.logger.Info("Daily reward sweep finished",
		zap.Int("processed", result.Processed),
		zap.Int("awarded", result.Awarded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}
