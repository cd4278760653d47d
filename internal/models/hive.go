package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HiveStatus string

const (
	HiveActive    HiveStatus = "active"
	HiveCompleted HiveStatus = "completed"
	HivePaused    HiveStatus = "paused"
)

type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleAdmin  MemberRole = "admin"
)

type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberLeft     MemberStatus = "left"
)

// Hive is a group savings pool with capped membership. CurrentMembers is
// maintained by the hive service in the same transaction as membership
// writes, never derived on read.
type Hive struct {
	ID                  uuid.UUID       `db:"id"`
	Name                string          `db:"name"`
	Description         string          `db:"description"`
	MaxMembers          int             `db:"max_members"`
	CurrentMembers      int             `db:"current_members"`
	GoalType            GoalCategory    `db:"goal_type"`
	TargetAmount        decimal.Decimal `db:"target_amount"`
	CurrentAmount       decimal.Decimal `db:"current_amount"`
	RiskLevel           RiskTolerance   `db:"risk_level"`
	MonthlyContribution decimal.Decimal `db:"monthly_contribution"`
	Status              HiveStatus      `db:"status"`
	EndDate             time.Time       `db:"end_date"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

// HiveMember links a user to a hive. A user holds at most one membership
// with status=active at any time; leaving is terminal and re-joining
// creates a new row.
type HiveMember struct {
	ID                  uuid.UUID       `db:"id"`
	UserID              uuid.UUID       `db:"user_id"`
	HiveID              uuid.UUID       `db:"hive_id"`
	Role                MemberRole      `db:"role"`
	MonthlyContribution decimal.Decimal `db:"monthly_contribution"`
	TotalContributed    decimal.Decimal `db:"total_contributed"`
	Status              MemberStatus    `db:"status"`
	ConsistencyScore    decimal.Decimal `db:"consistency_score"`
	JoinedAt            time.Time       `db:"joined_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}
