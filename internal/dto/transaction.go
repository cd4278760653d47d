package dto

type CreateTransactionRequest struct {
	Type        string   `json:"type" validate:"required,oneof=income expense investment transfer"`
	Category    string   `json:"category" validate:"required"`
	Amount      float64  `json:"amount" validate:"required,gt=0"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
}

type UpdateTransactionRequest struct {
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
}

type TransactionResponse struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags,omitempty"`
	Confidence  float64  `json:"confidence,omitempty"`
	RiskLevel   string   `json:"risk_level,omitempty"`
	Merchant    string   `json:"merchant,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

type AnalyticsResponse struct {
	TotalIncome       float64            `json:"total_income"`
	TotalExpenses     float64            `json:"total_expenses"`
	TotalInvestments  float64            `json:"total_investments"`
	NetSavings        float64            `json:"net_savings"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	TransactionCount  int                `json:"transaction_count"`
	Period            string             `json:"period"`
}

type ClassifyRequest struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required"`
	Sender      string  `json:"sender"`
}

type IngestSMSRequest struct {
	UserID  string `json:"user_id"`
	SMSText string `json:"sms_text" validate:"required"`
	Sender  string `json:"sender"`
}
