package dto

type CreateGoalRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount" validate:"required,gt=0"`
	TargetDate   string  `json:"target_date" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Priority     string  `json:"priority"`
}

type UpdateGoalRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TargetAmount  *float64 `json:"target_amount"`
	CurrentAmount *float64 `json:"current_amount"`
	TargetDate    string   `json:"target_date"`
	Category      string   `json:"category"`
	Priority      string   `json:"priority"`
	Status        string   `json:"status"`
}

type ContributeRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type GoalResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
	Category      string  `json:"category"`
	Priority      string  `json:"priority"`
	Status        string  `json:"status"`
	Progress      float64 `json:"progress"`
	DaysRemaining int     `json:"days_remaining"`
	CreatedAt     string  `json:"created_at"`
}

type MilestoneResponse struct {
	Percentage   int     `json:"percentage"`
	TargetAmount float64 `json:"target_amount"`
	Reward       float64 `json:"reward"`
	Title        string  `json:"title"`
	Achieved     bool    `json:"achieved"`
}

type OptimizationResponse struct {
	GoalID         string  `json:"goal_id"`
	AdjustmentType string  `json:"adjustment_type"`
	NewTarget      float64 `json:"new_target,omitempty"`
	NewDate        string  `json:"new_date,omitempty"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

type GoalSuggestionResponse struct {
	Category     string  `json:"category"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount"`
	Priority     string  `json:"priority"`
	Reasoning    string  `json:"reasoning"`
	Confidence   float64 `json:"confidence"`
}
