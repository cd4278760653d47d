package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"
	"neowealth/internal/repository"
	"neowealth/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RewardParams are the decimal-parsed reward tunables.
type RewardParams struct {
	InitialBalance   decimal.Decimal
	DailyBase        decimal.Decimal
	StreakMultiplier decimal.Decimal
	StreakThreshold  int
	CashbackRate     decimal.Decimal
}

func ParseRewardParams(cfg *config.RewardsConfig) (RewardParams, error) {
	initial, err := decimal.NewFromString(cfg.InitialBalance)
	if err != nil {
		return RewardParams{}, fmt.Errorf("invalid initial balance: %w", err)
	}
	base, err := decimal.NewFromString(cfg.DailyBase)
	if err != nil {
		return RewardParams{}, fmt.Errorf("invalid daily base: %w", err)
	}
	mult, err := decimal.NewFromString(cfg.StreakMultiplier)
	if err != nil {
		return RewardParams{}, fmt.Errorf("invalid streak multiplier: %w", err)
	}
	rate, err := decimal.NewFromString(cfg.CashbackRate)
	if err != nil {
		return RewardParams{}, fmt.Errorf("invalid cashback rate: %w", err)
	}
	return RewardParams{
		InitialBalance:   initial,
		DailyBase:        base,
		StreakMultiplier: mult,
		StreakThreshold:  cfg.StreakThreshold,
		CashbackRate:     rate,
	}, nil
}

// WalletService owns every NeoCoin balance mutation. All writes run
// inside a transaction with the wallet row locked, so concurrent
// earn/spend/transfer on one wallet serialize and the final balance is
// the sum of all applied deltas.
type WalletService struct {
	db         *pgxpool.Pool
	walletRepo *repository.WalletRepository
	txRepo     *repository.TransactionRepository
	params     RewardParams
	logger     *zap.Logger
}

func NewWalletService(
	db *pgxpool.Pool,
	walletRepo *repository.WalletRepository,
	txRepo *repository.TransactionRepository,
	params RewardParams,
	logger *zap.Logger,
) *WalletService {
	return &WalletService{
		db:         db,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		params:     params,
		logger:     logger,
	}
}

func (s *WalletService) Params() RewardParams {
	return s.params
}

func (s *WalletService) GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

// Earn credits NeoCoins and records the paired income transaction tagged
// "rewards". The reward date moves to now.
func (s *WalletService) Earn(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string) (*models.Wallet, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: earn amount must be positive", ErrInvalidInput)
	}

	var wallet *models.Wallet
	err := repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		wallet, err = s.lockWallet(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		wallet.NeoCoins = wallet.NeoCoins.Add(amount)
		wallet.LastRewardDate = &now
		wallet.UpdatedAt = now

		if err := s.walletRepo.Update(ctx, tx, wallet); err != nil {
			return err
		}

		return s.txRepo.Create(ctx, tx, rewardTransaction(userID, amount, reason, now))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("NeoCoins earned",
		zap.String("user_id", userID.String()),
		zap.String("amount", amount.String()),
		zap.String("reason", reason),
	)
	return wallet, nil
}

// Spend debits NeoCoins, failing when the balance cannot cover the
// amount, and records the paired expense transaction.
func (s *WalletService) Spend(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, description string) (*models.Wallet, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: spend amount must be positive", ErrInvalidInput)
	}
	if description == "" {
		description = "NeoCoin spending"
	}

	var wallet *models.Wallet
	err := repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		wallet, err = s.lockWallet(ctx, tx, userID)
		if err != nil {
			return err
		}

		if wallet.NeoCoins.LessThan(amount) {
			return ErrInsufficientBalance
		}

		now := time.Now().UTC()
		wallet.NeoCoins = wallet.NeoCoins.Sub(amount)
		wallet.UpdatedAt = now

		if err := s.walletRepo.Update(ctx, tx, wallet); err != nil {
			return err
		}

		record := &models.Transaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        models.TypeExpense,
			Category:    models.CategorySpend,
			Amount:      amount.Neg(),
			Description: description,
			Date:        now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return s.txRepo.Create(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	return wallet, nil
}

// Transfer moves NeoCoins between two wallets as a single atomic unit:
// both balance changes and both transaction records commit together.
// Wallets are locked in ascending user-ID order so two opposing
// transfers cannot deadlock.
func (s *WalletService) Transfer(ctx context.Context, senderID, recipientID uuid.UUID, amount decimal.Decimal, message string) (sender, recipient *models.Wallet, err error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: transfer amount must be positive", ErrInvalidInput)
	}
	if senderID == recipientID {
		return nil, nil, fmt.Errorf("%w: cannot transfer to own wallet", ErrInvalidInput)
	}
	if message == "" {
		message = "NeoCoin transfer"
	}

	err = repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		first, second := senderID, recipientID
		if second.String() < first.String() {
			first, second = second, first
		}

		wallets := make(map[uuid.UUID]*models.Wallet, 2)
		for _, id := range []uuid.UUID{first, second} {
			w, err := s.lockWallet(ctx, tx, id)
			if err != nil {
				return err
			}
			wallets[id] = w
		}
		sender = wallets[senderID]
		recipient = wallets[recipientID]

		if sender.NeoCoins.LessThan(amount) {
			return ErrInsufficientBalance
		}

		now := time.Now().UTC()
		sender.NeoCoins = sender.NeoCoins.Sub(amount)
		sender.UpdatedAt = now
		recipient.NeoCoins = recipient.NeoCoins.Add(amount)
		recipient.UpdatedAt = now

		if err := s.walletRepo.Update(ctx, tx, sender); err != nil {
			return err
		}
		if err := s.walletRepo.Update(ctx, tx, recipient); err != nil {
			return err
		}

		out := &models.Transaction{
			ID:          uuid.New(),
			UserID:      senderID,
			Type:        models.TypeTransfer,
			Category:    models.CategoryTransferOut,
			Amount:      amount.Neg(),
			Description: fmt.Sprintf("Transfer to user %s: %s", recipientID, message),
			Date:        now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.txRepo.Create(ctx, tx, out); err != nil {
			return err
		}

		in := &models.Transaction{
			ID:          uuid.New(),
			UserID:      recipientID,
			Type:        models.TypeTransfer,
			Category:    models.CategoryTransferIn,
			Amount:      amount,
			Description: fmt.Sprintf("Transfer from user %s: %s", senderID, message),
			Date:        now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return s.txRepo.Create(ctx, tx, in)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("NeoCoins transferred",
		zap.String("sender", senderID.String()),
		zap.String("recipient", recipientID.String()),
		zap.String("amount", amount.String()),
	)
	return sender, recipient, nil
}

// CalculateDailyReward is the pure eligibility check: zero when the
// wallet was already rewarded on now's UTC calendar day, otherwise the
// base reward with a streak bonus at the transaction-count threshold.
func CalculateDailyReward(wallet *models.Wallet, recentTransactionCount int, params RewardParams, now time.Time) decimal.Decimal {
	if wallet.LastRewardDate != nil && sameUTCDay(*wallet.LastRewardDate, now) {
		return decimal.Zero
	}

	reward := params.DailyBase
	if recentTransactionCount >= params.StreakThreshold {
		reward = reward.Mul(params.StreakMultiplier)
	}
	return reward
}

// AwardDailyReward applies the daily login reward if eligible. Returns
// the amount awarded and whether anything was awarded. Eligibility is
// re-checked under the wallet lock so double submissions cannot pay out
// twice.
func (s *WalletService) AwardDailyReward(ctx context.Context, userID uuid.UUID) (decimal.Decimal, bool, error) {
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	recentCount, err := s.txRepo.CountSince(ctx, userID, weekAgo)
	if err != nil {
		return decimal.Zero, false, err
	}

	awarded := false
	var reward decimal.Decimal
	err = repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		wallet, err := s.lockWallet(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		reward = CalculateDailyReward(wallet, recentCount, s.params, now)
		if reward.IsZero() {
			return nil
		}

		wallet.NeoCoins = wallet.NeoCoins.Add(reward)
		wallet.LastRewardDate = &now
		wallet.UpdatedAt = now
		if err := s.walletRepo.Update(ctx, tx, wallet); err != nil {
			return err
		}

		awarded = true
		return s.txRepo.Create(ctx, tx, rewardTransaction(userID, reward, "Daily login reward", now))
	})
	if err != nil {
		return decimal.Zero, false, err
	}
	return reward, awarded, nil
}

// CalculateDailyRewardFor is the read-only preview used by the client.
func (s *WalletService) CalculateDailyRewardFor(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	recentCount, err := s.txRepo.CountSince(ctx, userID, weekAgo)
	if err != nil {
		return decimal.Zero, err
	}

	return CalculateDailyReward(wallet, recentCount, s.params, time.Now().UTC()), nil
}

// CashbackReward computes the expense cashback: |amount| x rate x the
// wallet's reward multiplier. Zero for non-expense types.
func CashbackReward(txType models.TransactionType, amount decimal.Decimal, multiplier decimal.Decimal, params RewardParams) decimal.Decimal {
	if txType != models.TypeExpense {
		return decimal.Zero
	}
	return amount.Abs().Mul(params.CashbackRate).Mul(multiplier)
}

// ApplyCashLedger applies a financial transaction to the wallet's cash
// side. This is deliberately separate from the reward ledger: the two
// bookkeeping steps stay independently testable.
func ApplyCashLedger(wallet *models.Wallet, txType models.TransactionType, magnitude decimal.Decimal) {
	switch txType {
	case models.TypeIncome:
		wallet.CashBalance = wallet.CashBalance.Add(magnitude)
		wallet.TotalEarned = wallet.TotalEarned.Add(magnitude)
	case models.TypeExpense:
		wallet.CashBalance = wallet.CashBalance.Sub(magnitude)
		wallet.TotalSpent = wallet.TotalSpent.Add(magnitude)
	}
}

// ApplyRewardLedger applies the NeoCoin side of a financial transaction
// and returns the coins granted: income earns a flat rate of the amount,
// expenses earn cashback scaled by the wallet's multiplier.
func ApplyRewardLedger(wallet *models.Wallet, txType models.TransactionType, magnitude decimal.Decimal, params RewardParams) decimal.Decimal {
	var coins decimal.Decimal
	switch txType {
	case models.TypeIncome:
		coins = magnitude.Mul(params.CashbackRate)
	case models.TypeExpense:
		coins = CashbackReward(txType, magnitude, wallet.RewardMultiplier, params)
	default:
		return decimal.Zero
	}
	wallet.NeoCoins = wallet.NeoCoins.Add(coins)
	return coins
}

// ApplyTransaction runs both ledger steps for a newly created financial
// transaction inside the caller's database transaction, and records the
// cashback reward row for expenses.
func (s *WalletService) ApplyTransaction(ctx context.Context, tx pgx.Tx, userID uuid.UUID, txType models.TransactionType, magnitude decimal.Decimal) error {
	wallet, err := s.lockWallet(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			// Wallet provisioning failures must not block transaction
			// history; mirrors the tolerant behavior of the mobile API.
			s.logger.Warn("No wallet for transaction", zap.String("user_id", userID.String()))
			return nil
		}
		return err
	}

	now := time.Now().UTC()
	ApplyCashLedger(wallet, txType, magnitude)
	coins := ApplyRewardLedger(wallet, txType, magnitude, s.params)
	wallet.UpdatedAt = now

	if err := s.walletRepo.Update(ctx, tx, wallet); err != nil {
		return err
	}

	if txType == models.TypeExpense && coins.IsPositive() {
		reason := fmt.Sprintf("Cashback reward (1%% of %s)", magnitude.String())
		return s.txRepo.Create(ctx, tx, rewardTransaction(userID, coins, reason, now))
	}
	return nil
}

func (s *WalletService) lockWallet(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*models.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

func rewardTransaction(userID uuid.UUID, amount decimal.Decimal, description string, now time.Time) *models.Transaction {
	return &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.TypeIncome,
		Category:    models.CategoryRewards,
		Amount:      amount,
		Description: description,
		Date:        now,
		Tags:        []string{models.CategoryRewards},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func ToWalletResponse(wallet *models.Wallet) dto.WalletResponse {
	resp := dto.WalletResponse{
		ID:               wallet.ID.String(),
		NeoCoins:         wallet.NeoCoins.InexactFloat64(),
		CashBalance:      wallet.CashBalance.InexactFloat64(),
		TotalEarned:      wallet.TotalEarned.InexactFloat64(),
		TotalSpent:       wallet.TotalSpent.InexactFloat64(),
		RewardMultiplier: wallet.RewardMultiplier.InexactFloat64(),
	}
	if wallet.LastRewardDate != nil {
		resp.LastRewardDate = wallet.LastRewardDate.Format(time.RFC3339)
	}
	return resp
}
