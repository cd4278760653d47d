package dto

type RiskFactorResponse struct {
	Type       string  `json:"type"`
	Severity   string  `json:"severity"`
	Message    string  `json:"message"`
	Amount     float64 `json:"amount"`
	Suggestion string  `json:"suggestion"`
}

type PositiveHabitResponse struct {
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	Frequency int     `json:"frequency"`
	Reward    float64 `json:"reward"`
}

type ChallengeResponse struct {
	Type     string  `json:"type"`
	Duration int     `json:"duration_days"`
	Target   float64 `json:"target"`
	Reward   float64 `json:"reward"`
}

type RecommendationResponse struct {
	Type      string             `json:"type"`
	Priority  string             `json:"priority"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Reward    float64            `json:"reward"`
	Challenge *ChallengeResponse `json:"challenge,omitempty"`
}

type BehaviorAnalysisResponse struct {
	WeekendSpending      float64                 `json:"weekend_spending"`
	WeekdaySpending      float64                 `json:"weekday_spending"`
	ImpulsePurchases     float64                 `json:"impulse_purchases"`
	CategoryDistribution map[string]float64      `json:"category_distribution"`
	RiskFactors          []RiskFactorResponse    `json:"risk_factors"`
	PositiveHabits       []PositiveHabitResponse `json:"positive_habits"`
	Recommendations      []RecommendationResponse `json:"recommendations"`
}

type NudgeResponse struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	Actionable bool   `json:"actionable"`
}

type SpendingInsightsResponse struct {
	TotalSpending          float64            `json:"total_spending"`
	PreviousPeriodSpending float64            `json:"previous_period_spending"`
	PercentageChange       float64            `json:"percentage_change"`
	Trend                  string             `json:"trend"`
	TopCategories          []CategoryAmount   `json:"top_categories"`
	TransactionCount       int                `json:"transaction_count"`
	AverageTransaction     float64            `json:"average_transaction"`
	Period                 string             `json:"period"`
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type FinancialHealthResponse struct {
	Income          float64                  `json:"income"`
	Expenses        float64                  `json:"expenses"`
	Investments     float64                  `json:"investments"`
	NetSavings      float64                  `json:"net_savings"`
	SavingsRate     float64                  `json:"savings_rate"`
	InvestmentRate  float64                  `json:"investment_rate"`
	HealthScore     int                      `json:"health_score"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type EventRequest struct {
	EventType string                 `json:"event_type" validate:"required"`
	EventData map[string]interface{} `json:"event_data"`
}
