package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet keeps two independent ledgers per user: the cash ledger
// (CashBalance/TotalEarned/TotalSpent, mirroring real money flows) and the
// NeoCoin reward ledger. NeoCoins change only through the wallet service's
// earn/spend/transfer operations.
type Wallet struct {
	ID               uuid.UUID       `db:"id"`
	UserID           uuid.UUID       `db:"user_id"`
	NeoCoins         decimal.Decimal `db:"neo_coins"`
	CashBalance      decimal.Decimal `db:"cash_balance"`
	TotalEarned      decimal.Decimal `db:"total_earned"`
	TotalSpent       decimal.Decimal `db:"total_spent"`
	RewardMultiplier decimal.Decimal `db:"reward_multiplier"`
	LastRewardDate   *time.Time      `db:"last_reward_date"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
