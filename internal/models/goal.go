package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalCategory string

const (
	GoalEmergency  GoalCategory = "emergency"
	GoalVacation   GoalCategory = "vacation"
	GoalHouse      GoalCategory = "house"
	GoalCar        GoalCategory = "car"
	GoalEducation  GoalCategory = "education"
	GoalRetirement GoalCategory = "retirement"
	GoalInvestment GoalCategory = "investment"
	GoalOther      GoalCategory = "other"
)

type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalCancelled GoalStatus = "cancelled"
)

// LastOptimization records the most recent automatic adjustment applied to
// a goal, so the client can explain why the target or date moved.
type LastOptimization struct {
	OptimizedAt    time.Time       `json:"optimized_at"`
	AdjustmentType string          `json:"adjustment_type"`
	Confidence     float64         `json:"confidence"`
	Reasoning      string          `json:"reasoning"`
	PreviousTarget decimal.Decimal `json:"previous_target"`
	PreviousDate   time.Time       `json:"previous_date"`
}

type Goal struct {
	ID               uuid.UUID         `db:"id"`
	UserID           uuid.UUID         `db:"user_id"`
	Title            string            `db:"title"`
	Description      string            `db:"description"`
	TargetAmount     decimal.Decimal   `db:"target_amount"`
	CurrentAmount    decimal.Decimal   `db:"current_amount"`
	TargetDate       time.Time         `db:"target_date"`
	Category         GoalCategory      `db:"category"`
	Priority         GoalPriority      `db:"priority"`
	Status           GoalStatus        `db:"status"`
	LastOptimization *LastOptimization `db:"last_optimization"`
	CreatedAt        time.Time         `db:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at"`
}
