package service

import (
	"testing"

	"neowealth/internal/models"

	"github.com/shopspring/decimal"
)

func TestAmountRisk(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{500, "low"},
		{1000, "low"},
		{1001, "medium"},
		{5000, "medium"},
		{5001, "high"},
	}

	for _, tt := range tests {
		if got := amountRisk(decimal.NewFromInt(tt.amount)); got != tt.want {
			t.Errorf("amountRisk(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestCategoryAverage(t *testing.T) {
	transactions := []*models.Transaction{
		{Type: models.TypeExpense, Category: "food", Amount: decimal.NewFromInt(-400)},
		{Type: models.TypeExpense, Category: "food", Amount: decimal.NewFromInt(-600)},
		{Type: models.TypeExpense, Category: "transport", Amount: decimal.NewFromInt(-300)},
		{Type: models.TypeIncome, Category: "food", Amount: decimal.NewFromInt(5000)},
	}

	got := categoryAverage(transactions, "food")
	if !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("categoryAverage(food) = %s, want 500", got)
	}

	if got := categoryAverage(transactions, "shopping"); !got.IsZero() {
		t.Errorf("categoryAverage(shopping) = %s, want 0", got)
	}
}

func TestFloatField(t *testing.T) {
	data := map[string]interface{}{
		"amount": 2500.5,
		"count":  3,
		"label":  "food",
	}

	if got := floatField(data, "amount"); got != 2500.5 {
		t.Errorf("floatField(amount) = %v, want 2500.5", got)
	}
	if got := floatField(data, "count"); got != 3 {
		t.Errorf("floatField(count) = %v, want 3", got)
	}
	if got := floatField(data, "label"); got != 0 {
		t.Errorf("floatField(label) = %v, want 0", got)
	}
	if got := floatField(data, "missing"); got != 0 {
		t.Errorf("floatField(missing) = %v, want 0", got)
	}
	if got := floatField(nil, "amount"); got != 0 {
		t.Errorf("floatField(nil map) = %v, want 0", got)
	}
}
