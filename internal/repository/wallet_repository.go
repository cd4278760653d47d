package repository

import (
	"context"

	"neowealth/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var walletColumns = []string{
	"id", "user_id", "neo_coins", "cash_balance", "total_earned", "total_spent",
	"reward_multiplier", "last_reward_date", "created_at", "updated_at",
}

type WalletRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWalletRepository(db *pgxpool.Pool, logger *zap.Logger) *WalletRepository {
	return &WalletRepository{
		db:     db,
		logger: logger,
	}
}

func (r *WalletRepository) Create(ctx context.Context, q Querier, wallet *models.Wallet) error {
	query := squirrel.Insert("wallets").
		Columns(walletColumns...).
		Values(wallet.ID, wallet.UserID, wallet.NeoCoins, wallet.CashBalance,
			wallet.TotalEarned, wallet.TotalSpent, wallet.RewardMultiplier,
			wallet.LastRewardDate, wallet.CreatedAt, wallet.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return r.getByUserID(ctx, r.db, userID, false)
}

// GetByUserIDForUpdate takes a row lock so concurrent earn/spend/transfer
// on the same wallet serialize. Must run inside a transaction.
func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, q Querier, userID uuid.UUID) (*models.Wallet, error) {
	return r.getByUserID(ctx, q, userID, true)
}

func (r *WalletRepository) getByUserID(ctx context.Context, q Querier, userID uuid.UUID, forUpdate bool) (*models.Wallet, error) {
	query := squirrel.Select(walletColumns...).
		From("wallets").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var w models.Wallet
	err = q.QueryRow(ctx, sql, args...).Scan(
		&w.ID, &w.UserID, &w.NeoCoins, &w.CashBalance, &w.TotalEarned, &w.TotalSpent,
		&w.RewardMultiplier, &w.LastRewardDate, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *WalletRepository) Update(ctx context.Context, q Querier, wallet *models.Wallet) error {
	query := squirrel.Update("wallets").
		Set("neo_coins", wallet.NeoCoins).
		Set("cash_balance", wallet.CashBalance).
		Set("total_earned", wallet.TotalEarned).
		Set("total_spent", wallet.TotalSpent).
		Set("reward_multiplier", wallet.RewardMultiplier).
		Set("last_reward_date", wallet.LastRewardDate).
		Set("updated_at", wallet.UpdatedAt).
		Where(squirrel.Eq{"id": wallet.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}
