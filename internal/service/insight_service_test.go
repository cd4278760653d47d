package service

import (
	"testing"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"

	"github.com/shopspring/decimal"
)

// 2025-08-16 is a Saturday, 2025-08-18 a Monday.
var (
	saturday = time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)
	monday   = time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)
)

func expense(category string, amount int64, date time.Time) *models.Transaction {
	return &models.Transaction{
		Type:     models.TypeExpense,
		Category: category,
		Amount:   decimal.NewFromInt(-amount),
		Date:     date,
	}
}

func TestAnalyzeSpendingBehavior(t *testing.T) {
	t.Run("empty history prompts onboarding", func(t *testing.T) {
		got := AnalyzeSpendingBehavior(nil)
		if len(got.Recommendations) != 1 {
			t.Fatalf("Recommendations = %d, want 1", len(got.Recommendations))
		}
		if got.Recommendations[0].Type != "onboarding" {
			t.Errorf("recommendation type = %q, want onboarding", got.Recommendations[0].Type)
		}
		if len(got.RiskFactors) != 0 || len(got.PositiveHabits) != 0 {
			t.Error("empty history should produce no risks or habits")
		}
	})

	t.Run("weekend and impulse split", func(t *testing.T) {
		transactions := []*models.Transaction{
			expense("food", 600, saturday),
			expense("shopping", 1500, saturday),
			expense("food", 400, monday),
		}

		got := AnalyzeSpendingBehavior(transactions)
		if got.WeekendSpending != 2100 {
			t.Errorf("WeekendSpending = %v, want 2100", got.WeekendSpending)
		}
		if got.WeekdaySpending != 400 {
			t.Errorf("WeekdaySpending = %v, want 400", got.WeekdaySpending)
		}
		if got.ImpulsePurchases != 1500 {
			t.Errorf("ImpulsePurchases = %v, want 1500", got.ImpulsePurchases)
		}
		if got.CategoryDistribution["food"] != 1000 {
			t.Errorf("food distribution = %v, want 1000", got.CategoryDistribution["food"])
		}
	})

	t.Run("food risk factor", func(t *testing.T) {
		transactions := []*models.Transaction{
			expense("food", 3000, monday),
			expense("food", 2500, monday),
		}

		got := AnalyzeSpendingBehavior(transactions)
		if len(got.RiskFactors) != 1 {
			t.Fatalf("RiskFactors = %d, want 1", len(got.RiskFactors))
		}
		if got.RiskFactors[0].Type != "high_food_spending" {
			t.Errorf("risk type = %q, want high_food_spending", got.RiskFactors[0].Type)
		}
		if got.Recommendations[0].Challenge == nil || got.Recommendations[0].Challenge.Type != "cooking_challenge" {
			t.Error("expected a cooking_challenge recommendation")
		}
	})

	t.Run("shopping risk factor", func(t *testing.T) {
		transactions := []*models.Transaction{
			expense("shopping", 12000, monday),
		}

		got := AnalyzeSpendingBehavior(transactions)
		var found *dto.RiskFactorResponse
		for i := range got.RiskFactors {
			if got.RiskFactors[i].Type == "excessive_shopping" {
				found = &got.RiskFactors[i]
			}
		}
		if found == nil {
			t.Fatal("expected an excessive_shopping risk factor")
		}
		if found.Severity != "high" {
			t.Errorf("severity = %q, want high", found.Severity)
		}
	})

	t.Run("weekend overspending risk", func(t *testing.T) {
		transactions := []*models.Transaction{
			expense("food", 2000, saturday),
			expense("food", 1000, monday),
		}

		got := AnalyzeSpendingBehavior(transactions)
		if len(got.RiskFactors) != 1 {
			t.Fatalf("RiskFactors = %d, want 1", len(got.RiskFactors))
		}
		if got.RiskFactors[0].Type != "weekend_overspending" {
			t.Errorf("risk type = %q, want weekend_overspending", got.RiskFactors[0].Type)
		}
	})

	t.Run("positive habits", func(t *testing.T) {
		transactions := []*models.Transaction{
			{Type: models.TypeInvestment, Category: "investment", Amount: decimal.NewFromInt(5000), Date: monday},
			{Type: models.TypeInvestment, Category: "investment", Amount: decimal.NewFromInt(5000), Date: monday},
			{Type: models.TypeInvestment, Category: "investment", Amount: decimal.NewFromInt(5000), Date: monday},
			expense("utilities", 1800, monday),
			expense("utilities", 600, monday),
		}

		got := AnalyzeSpendingBehavior(transactions)
		if len(got.PositiveHabits) != 2 {
			t.Fatalf("PositiveHabits = %d, want 2", len(got.PositiveHabits))
		}
		if got.PositiveHabits[0].Type != "consistent_investing" {
			t.Errorf("first habit = %q, want consistent_investing", got.PositiveHabits[0].Type)
		}
		if got.PositiveHabits[1].Type != "regular_bill_payments" {
			t.Errorf("second habit = %q, want regular_bill_payments", got.PositiveHabits[1].Type)
		}
	})
}

func TestBuildNudges(t *testing.T) {
	analysis := &dto.BehaviorAnalysisResponse{
		RiskFactors: []dto.RiskFactorResponse{
			{Type: "high_food_spending", Severity: "medium", Suggestion: "Try cooking at home more often"},
		},
		PositiveHabits: []dto.PositiveHabitResponse{
			{Type: "consistent_investing", Message: "You invest regularly, keep it up"},
		},
	}

	t.Run("friday evening fires everything", func(t *testing.T) {
		// 2025-08-15 is a Friday.
		now := time.Date(2025, 8, 15, 18, 30, 0, 0, time.UTC)
		got := BuildNudges(analysis, now)
		if len(got) != 4 {
			t.Fatalf("BuildNudges() = %d nudges, want 4", len(got))
		}
		wantTypes := []string{"warning", "encouragement", "dinner_time", "weekend_prep"}
		for i, want := range wantTypes {
			if got[i].Type != want {
				t.Errorf("nudge %d type = %q, want %q", i, got[i].Type, want)
			}
		}
	})

	t.Run("tuesday morning only profile nudges", func(t *testing.T) {
		// 2025-08-12 is a Tuesday.
		now := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)
		got := BuildNudges(analysis, now)
		if len(got) != 2 {
			t.Fatalf("BuildNudges() = %d nudges, want 2", len(got))
		}
	})

	t.Run("clean profile returns empty non-nil slice", func(t *testing.T) {
		now := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)
		got := BuildNudges(&dto.BehaviorAnalysisResponse{}, now)
		if got == nil {
			t.Fatal("BuildNudges() = nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("BuildNudges() = %d nudges, want 0", len(got))
		}
	})
}

func TestCompareSpendingPeriods(t *testing.T) {
	t.Run("increasing trend", func(t *testing.T) {
		current := []*models.Transaction{
			expense("food", 2000, monday),
			expense("shopping", 1000, monday),
		}
		previous := []*models.Transaction{
			expense("food", 2000, monday),
		}

		got := CompareSpendingPeriods(current, previous)
		if got.TotalSpending != 3000 {
			t.Errorf("TotalSpending = %v, want 3000", got.TotalSpending)
		}
		if got.PercentageChange != 50 {
			t.Errorf("PercentageChange = %v, want 50", got.PercentageChange)
		}
		if got.Trend != "increasing" {
			t.Errorf("Trend = %q, want increasing", got.Trend)
		}
		if got.AverageTransaction != 1500 {
			t.Errorf("AverageTransaction = %v, want 1500", got.AverageTransaction)
		}
		if len(got.TopCategories) != 2 || got.TopCategories[0].Category != "food" {
			t.Errorf("TopCategories = %+v, want food first", got.TopCategories)
		}
	})

	t.Run("decreasing trend", func(t *testing.T) {
		current := []*models.Transaction{expense("food", 800, monday)}
		previous := []*models.Transaction{expense("food", 2000, monday)}

		got := CompareSpendingPeriods(current, previous)
		if got.PercentageChange != -60 {
			t.Errorf("PercentageChange = %v, want -60", got.PercentageChange)
		}
		if got.Trend != "decreasing" {
			t.Errorf("Trend = %q, want decreasing", got.Trend)
		}
	})

	t.Run("stable within ten percent", func(t *testing.T) {
		current := []*models.Transaction{expense("food", 2100, monday)}
		previous := []*models.Transaction{expense("food", 2000, monday)}

		got := CompareSpendingPeriods(current, previous)
		if got.Trend != "stable" {
			t.Errorf("Trend = %q, want stable", got.Trend)
		}
	})

	t.Run("no previous period reads stable", func(t *testing.T) {
		got := CompareSpendingPeriods([]*models.Transaction{expense("food", 500, monday)}, nil)
		if got.PercentageChange != 0 {
			t.Errorf("PercentageChange = %v, want 0", got.PercentageChange)
		}
		if got.Trend != "stable" {
			t.Errorf("Trend = %q, want stable", got.Trend)
		}
	})

	t.Run("income is ignored", func(t *testing.T) {
		current := []*models.Transaction{
			{Type: models.TypeIncome, Category: "income", Amount: decimal.NewFromInt(60000), Date: monday},
			expense("food", 500, monday),
		}

		got := CompareSpendingPeriods(current, nil)
		if got.TotalSpending != 500 {
			t.Errorf("TotalSpending = %v, want 500", got.TotalSpending)
		}
		if got.TransactionCount != 1 {
			t.Errorf("TransactionCount = %d, want 1", got.TransactionCount)
		}
	})
}

func TestScoreFinancialHealth(t *testing.T) {
	income := func(amount int64) *models.Transaction {
		return &models.Transaction{Type: models.TypeIncome, Amount: decimal.NewFromInt(amount), Date: monday}
	}
	investment := func(amount int64) *models.Transaction {
		return &models.Transaction{Type: models.TypeInvestment, Amount: decimal.NewFromInt(amount), Date: monday}
	}

	t.Run("strong saver and investor maxes out", func(t *testing.T) {
		got := ScoreFinancialHealth([]*models.Transaction{
			income(10000),
			expense("food", 7000, monday),
			investment(2000),
		})
		if got.SavingsRate != 30 {
			t.Errorf("SavingsRate = %v, want 30", got.SavingsRate)
		}
		if got.InvestmentRate != 20 {
			t.Errorf("InvestmentRate = %v, want 20", got.InvestmentRate)
		}
		if got.HealthScore != 100 {
			t.Errorf("HealthScore = %d, want 100", got.HealthScore)
		}
		if len(got.Recommendations) != 0 {
			t.Errorf("Recommendations = %d, want 0", len(got.Recommendations))
		}
	})

	t.Run("overspender", func(t *testing.T) {
		got := ScoreFinancialHealth([]*models.Transaction{
			income(10000),
			expense("shopping", 12000, monday),
		})
		// 50 - 20 for negative savings, no investment bonus.
		if got.HealthScore != 30 {
			t.Errorf("HealthScore = %d, want 30", got.HealthScore)
		}
		wantTypes := map[string]bool{"increase_savings": false, "start_investing": false}
		for _, rec := range got.Recommendations {
			wantTypes[rec.Type] = true
		}
		for recType, seen := range wantTypes {
			if !seen {
				t.Errorf("missing recommendation %q", recType)
			}
		}
	})

	t.Run("no history sits at the baseline", func(t *testing.T) {
		got := ScoreFinancialHealth(nil)
		// 50 + 10 for a zero savings rate.
		if got.HealthScore != 60 {
			t.Errorf("HealthScore = %d, want 60", got.HealthScore)
		}
	})

	t.Run("moderate saver", func(t *testing.T) {
		got := ScoreFinancialHealth([]*models.Transaction{
			income(10000),
			expense("food", 8800, monday),
			investment(600),
		})
		// 50 + 20 for a 12% savings rate + 10 for a 6% investment rate.
		if got.HealthScore != 80 {
			t.Errorf("HealthScore = %d, want 80", got.HealthScore)
		}
	})
}
