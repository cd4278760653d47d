package dto

type CreateHiveRequest struct {
	Name                string  `json:"name" validate:"required"`
	Description         string  `json:"description"`
	MaxMembers          int     `json:"max_members"`
	GoalType            string  `json:"goal_type" validate:"required"`
	TargetAmount        float64 `json:"target_amount" validate:"required,gt=0"`
	RiskLevel           string  `json:"risk_level"`
	MonthlyContribution float64 `json:"monthly_contribution" validate:"required,gt=0"`
	EndDate             string  `json:"end_date" validate:"required"`
}

type JoinHiveRequest struct {
	HiveID              string  `json:"hive_id" validate:"required,uuid"`
	MonthlyContribution float64 `json:"monthly_contribution" validate:"required,gt=0"`
}

type HiveResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Description         string  `json:"description,omitempty"`
	MaxMembers          int     `json:"max_members"`
	CurrentMembers      int     `json:"current_members"`
	GoalType            string  `json:"goal_type"`
	TargetAmount        float64 `json:"target_amount"`
	CurrentAmount       float64 `json:"current_amount"`
	RiskLevel           string  `json:"risk_level"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Status              string  `json:"status"`
	EndDate             string  `json:"end_date"`
}

type HiveProgressResponse struct {
	Hive                      HiveResponse `json:"hive"`
	Progress                  float64      `json:"progress"`
	MonthsRemaining           int          `json:"months_remaining"`
	TotalMonthlyContribution  float64      `json:"total_monthly_contribution"`
	ProjectedMonthsToComplete *float64     `json:"projected_months_to_complete"`
}

type MembershipResponse struct {
	ID                  string  `json:"id"`
	HiveID              string  `json:"hive_id"`
	Role                string  `json:"role"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	TotalContributed    float64 `json:"total_contributed"`
	Status              string  `json:"status"`
	JoinedAt            string  `json:"joined_at"`
}
