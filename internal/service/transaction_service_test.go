package service

import (
	"errors"
	"testing"
	"time"

	"neowealth/internal/models"

	"github.com/shopspring/decimal"
)

func TestSummarizeTransactions(t *testing.T) {
	transactions := []*models.Transaction{
		{Type: models.TypeIncome, Category: "income", Amount: decimal.NewFromInt(60000)},
		{Type: models.TypeExpense, Category: "food", Amount: decimal.NewFromInt(-2000)},
		{Type: models.TypeExpense, Category: "food", Amount: decimal.NewFromInt(-500)},
		{Type: models.TypeInvestment, Category: "investment", Amount: decimal.NewFromInt(5000)},
	}

	got := SummarizeTransactions(transactions, "month")
	if got.TotalIncome != 60000 {
		t.Errorf("TotalIncome = %v, want 60000", got.TotalIncome)
	}
	if got.TotalExpenses != 2500 {
		t.Errorf("TotalExpenses = %v, want 2500", got.TotalExpenses)
	}
	if got.TotalInvestments != 5000 {
		t.Errorf("TotalInvestments = %v, want 5000", got.TotalInvestments)
	}
	if got.NetSavings != 57500 {
		t.Errorf("NetSavings = %v, want 57500", got.NetSavings)
	}
	if got.CategoryBreakdown["food"] != 2500 {
		t.Errorf("food breakdown = %v, want 2500", got.CategoryBreakdown["food"])
	}
	if got.TransactionCount != 4 {
		t.Errorf("TransactionCount = %d, want 4", got.TransactionCount)
	}
	if got.Period != "month" {
		t.Errorf("Period = %q, want month", got.Period)
	}
}

func TestSummarizeTransactionsEmpty(t *testing.T) {
	got := SummarizeTransactions(nil, "week")
	if got.TotalIncome != 0 || got.TotalExpenses != 0 || got.NetSavings != 0 {
		t.Errorf("empty summary = %+v, want zeroes", got)
	}
	if got.TransactionCount != 0 {
		t.Errorf("TransactionCount = %d, want 0", got.TransactionCount)
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
	}{
		{"week", now.AddDate(0, 0, -7)},
		{"month", now.AddDate(0, -1, 0)},
		{"", now.AddDate(0, -1, 0)},
		{"year", now.AddDate(-1, 0, 0)},
	}

	for _, tt := range tests {
		got, err := periodStart(tt.period, now)
		if err != nil {
			t.Errorf("periodStart(%q) error = %v", tt.period, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("periodStart(%q) = %v, want %v", tt.period, got, tt.want)
		}
	}

	if _, err := periodStart("decade", now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("periodStart(decade) error = %v, want ErrInvalidInput", err)
	}
}

func TestToTransactionResponse(t *testing.T) {
	date := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	record := &models.Transaction{
		Type:        models.TypeExpense,
		Category:    "food",
		Amount:      decimal.NewFromInt(-450),
		Description: "Lunch",
		Date:        date,
		Tags:        []string{"dining"},
		Confidence:  0.6,
		RiskLevel:   "low",
		CreatedAt:   date,
	}

	got := ToTransactionResponse(record)
	if got.Amount != -450 {
		t.Errorf("Amount = %v, want -450", got.Amount)
	}
	if got.Date != "2025-08-20T12:00:00Z" {
		t.Errorf("Date = %q, want 2025-08-20T12:00:00Z", got.Date)
	}
	if got.RiskLevel != "low" {
		t.Errorf("RiskLevel = %q, want low", got.RiskLevel)
	}
}
