package dto

type WalletResponse struct {
	ID               string  `json:"id"`
	NeoCoins         float64 `json:"neo_coins"`
	CashBalance      float64 `json:"cash_balance"`
	TotalEarned      float64 `json:"total_earned"`
	TotalSpent       float64 `json:"total_spent"`
	RewardMultiplier float64 `json:"reward_multiplier"`
	LastRewardDate   string  `json:"last_reward_date,omitempty"`
}

type EarnRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Reason string  `json:"reason" validate:"required"`
}

type SpendRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

type TransferRequest struct {
	RecipientID string  `json:"recipient_id" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Message     string  `json:"message"`
}

type TransferResponse struct {
	SenderBalance float64 `json:"sender_balance"`
	Transferred   float64 `json:"transferred"`
}

type DailyRewardResponse struct {
	Awarded    bool    `json:"awarded"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance,omitempty"`
}
