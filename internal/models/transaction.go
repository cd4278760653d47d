package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
	TypeTransfer   TransactionType = "transfer"
)

// Reserved categories written by the wallet service.
const (
	CategoryRewards     = "rewards"
	CategorySpend       = "neocoin-spend"
	CategoryTransferOut = "neocoin-transfer-out"
	CategoryTransferIn  = "neocoin-transfer-in"
)

// Transaction amounts are stored signed: expenses negative, everything
// else positive. Aggregations over mixed types take absolute values.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Type        TransactionType `db:"type"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	Tags        []string        `db:"tags"`
	Confidence  float64         `db:"confidence"`
	RiskLevel   string          `db:"risk_level"`
	Merchant    string          `db:"merchant"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
