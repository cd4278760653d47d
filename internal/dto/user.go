package dto

type DashboardResponse struct {
	User               UserResponse          `json:"user"`
	Wallet             WalletResponse        `json:"wallet"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	ActiveGoals        []GoalResponse        `json:"active_goals"`
	HealthScore        int                   `json:"health_score"`
}
