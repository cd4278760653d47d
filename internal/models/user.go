package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

type User struct {
	ID            uuid.UUID       `db:"id"`
	Email         string          `db:"email"`
	Password      string          `db:"password"`
	FirstName     string          `db:"first_name"`
	LastName      string          `db:"last_name"`
	Phone         string          `db:"phone"`
	MonthlyIncome decimal.Decimal `db:"monthly_income"`
	RiskTolerance RiskTolerance   `db:"risk_tolerance"`
	IsActive      bool            `db:"is_active"`
	LastLogin     *time.Time      `db:"last_login"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
