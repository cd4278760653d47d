package service

import (
	"context"
	"sort"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"
	"neowealth/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Spending-pattern thresholds over a 30-day window.
var (
	impulseThreshold  = decimal.NewFromInt(1000)
	foodRiskThreshold = decimal.NewFromInt(5000)
	shoppingRiskLimit = decimal.NewFromInt(10000)
)

// InsightService derives behavior analysis, nudges and health metrics
// from transaction history. Everything here is data-driven; there is no
// model inference behind it.
type InsightService struct {
	txRepo *repository.TransactionRepository
	logger *zap.Logger
}

func NewInsightService(txRepo *repository.TransactionRepository, logger *zap.Logger) *InsightService {
	return &InsightService{
		txRepo: txRepo,
		logger: logger,
	}
}

// AnalyzeBehavior builds the 30-day spending behavior profile.
func (s *InsightService) AnalyzeBehavior(ctx context.Context, userID uuid.UUID) (*dto.BehaviorAnalysisResponse, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)
	transactions, err := s.txRepo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return AnalyzeSpendingBehavior(transactions), nil
}

// AnalyzeSpendingBehavior is the pure profile computation over a window
// of transactions.
func AnalyzeSpendingBehavior(transactions []*models.Transaction) *dto.BehaviorAnalysisResponse {
	var weekend, weekday, impulse decimal.Decimal
	distribution := make(map[string]float64)
	categoryTotals := make(map[string]decimal.Decimal)
	categoryCounts := make(map[string]int)

	hasAny := false
	for _, tx := range transactions {
		hasAny = true
		if tx.Type != models.TypeExpense {
			if tx.Type == models.TypeInvestment {
				categoryCounts["investment"]++
			}
			if tx.Category == "utilities" {
				categoryCounts["utilities"]++
			}
			continue
		}

		abs := tx.Amount.Abs()
		switch tx.Date.Weekday() {
		case time.Saturday, time.Sunday:
			weekend = weekend.Add(abs)
		default:
			weekday = weekday.Add(abs)
		}

		if (tx.Category == "shopping" || tx.Category == "entertainment") && abs.GreaterThan(impulseThreshold) {
			impulse = impulse.Add(abs)
		}

		distribution[tx.Category] += abs.InexactFloat64()
		categoryTotals[tx.Category] = categoryTotals[tx.Category].Add(abs)
		categoryCounts[tx.Category]++
	}

	analysis := &dto.BehaviorAnalysisResponse{
		WeekendSpending:      weekend.InexactFloat64(),
		WeekdaySpending:      weekday.InexactFloat64(),
		ImpulsePurchases:     impulse.InexactFloat64(),
		CategoryDistribution: distribution,
		RiskFactors:          []dto.RiskFactorResponse{},
		PositiveHabits:       []dto.PositiveHabitResponse{},
		Recommendations:      []dto.RecommendationResponse{},
	}

	if !hasAny {
		analysis.Recommendations = append(analysis.Recommendations, dto.RecommendationResponse{
			Type:     "onboarding",
			Priority: "high",
			Title:    "Start tracking your spending",
			Message:  "Add your first transactions to unlock personalized insights",
			Reward:   10,
		})
		return analysis
	}

	if categoryTotals["food"].GreaterThan(foodRiskThreshold) {
		analysis.RiskFactors = append(analysis.RiskFactors, dto.RiskFactorResponse{
			Type:       "high_food_spending",
			Severity:   "medium",
			Message:    "Food spending is running high this month",
			Amount:     categoryTotals["food"].InexactFloat64(),
			Suggestion: "Try cooking at home more often",
		})
		analysis.Recommendations = append(analysis.Recommendations, dto.RecommendationResponse{
			Type:     "reduce_food_spending",
			Priority: "medium",
			Title:    "Cooking challenge",
			Message:  "Cook at home 3 times this week to cut food costs",
			Reward:   50,
			Challenge: &dto.ChallengeResponse{
				Type:     "cooking_challenge",
				Duration: 7,
				Target:   3,
				Reward:   50,
			},
		})
	}

	if categoryTotals["shopping"].GreaterThan(shoppingRiskLimit) {
		analysis.RiskFactors = append(analysis.RiskFactors, dto.RiskFactorResponse{
			Type:       "excessive_shopping",
			Severity:   "high",
			Message:    "Shopping spending is well above typical levels",
			Amount:     categoryTotals["shopping"].InexactFloat64(),
			Suggestion: "Pause before purchases over 1000 and wait a day",
		})
		analysis.Recommendations = append(analysis.Recommendations, dto.RecommendationResponse{
			Type:     "mindful_spending",
			Priority: "high",
			Title:    "Mindful spending challenge",
			Message:  "Keep non-essential purchases under 5 for two weeks",
			Reward:   75,
			Challenge: &dto.ChallengeResponse{
				Type:     "mindful_spending",
				Duration: 14,
				Target:   5,
				Reward:   75,
			},
		})
	}

	if weekend.GreaterThan(weekday.Mul(decimal.NewFromFloat(0.4))) && weekend.IsPositive() {
		analysis.RiskFactors = append(analysis.RiskFactors, dto.RiskFactorResponse{
			Type:       "weekend_overspending",
			Severity:   "medium",
			Message:    "Weekends account for a large share of your spending",
			Amount:     weekend.InexactFloat64(),
			Suggestion: "Set a weekend budget before Friday",
		})
		analysis.Recommendations = append(analysis.Recommendations, dto.RecommendationResponse{
			Type:     "weekend_budget",
			Priority: "medium",
			Title:    "Weekend budget challenge",
			Message:  "Keep weekend spending under 2000 for the next two weekends",
			Reward:   60,
			Challenge: &dto.ChallengeResponse{
				Type:     "weekend_budget",
				Duration: 14,
				Target:   2000,
				Reward:   60,
			},
		})
	}

	if categoryCounts["investment"] >= 3 {
		analysis.PositiveHabits = append(analysis.PositiveHabits, dto.PositiveHabitResponse{
			Type:      "consistent_investing",
			Message:   "You invest regularly, keep it up",
			Frequency: categoryCounts["investment"],
			Reward:    50,
		})
	}
	if categoryCounts["utilities"] >= 2 {
		analysis.PositiveHabits = append(analysis.PositiveHabits, dto.PositiveHabitResponse{
			Type:      "regular_bill_payments",
			Message:   "Bills are paid on time",
			Frequency: categoryCounts["utilities"],
			Reward:    25,
		})
	}

	return analysis
}

// Nudges produces time-aware prompts from the latest behavior profile.
func (s *InsightService) Nudges(ctx context.Context, userID uuid.UUID) ([]dto.NudgeResponse, error) {
	analysis, err := s.AnalyzeBehavior(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildNudges(analysis, time.Now().UTC()), nil
}

// BuildNudges turns a behavior profile plus the current time into nudges.
// Always returns a non-nil slice.
func BuildNudges(analysis *dto.BehaviorAnalysisResponse, now time.Time) []dto.NudgeResponse {
	nudges := []dto.NudgeResponse{}

	if len(analysis.RiskFactors) > 0 {
		top := analysis.RiskFactors[0]
		nudges = append(nudges, dto.NudgeResponse{
			Type:       "warning",
			Title:      "Spending alert",
			Message:    top.Suggestion,
			Priority:   top.Severity,
			Actionable: true,
		})
	}

	if len(analysis.PositiveHabits) > 0 {
		top := analysis.PositiveHabits[0]
		nudges = append(nudges, dto.NudgeResponse{
			Type:       "encouragement",
			Title:      "Nice habit",
			Message:    top.Message,
			Priority:   "low",
			Actionable: false,
		})
	}

	hour := now.Hour()
	if hour >= 18 && hour <= 20 {
		nudges = append(nudges, dto.NudgeResponse{
			Type:       "dinner_time",
			Title:      "Dinner plans?",
			Message:    "Cooking at home tonight could save you 300-500",
			Priority:   "low",
			Actionable: true,
		})
	}

	if now.Weekday() == time.Friday && hour >= 17 {
		nudges = append(nudges, dto.NudgeResponse{
			Type:       "weekend_prep",
			Title:      "Weekend ahead",
			Message:    "Set a weekend budget now to avoid Monday regrets",
			Priority:   "medium",
			Actionable: true,
		})
	}

	return nudges
}

// SpendingInsights compares the last 30 days of spending against the 30
// days before that.
func (s *InsightService) SpendingInsights(ctx context.Context, userID uuid.UUID) (*dto.SpendingInsightsResponse, error) {
	now := time.Now().UTC()
	current, err := s.txRepo.ListSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	previous, err := s.txRepo.ListBetween(ctx, userID, now.AddDate(0, 0, -60), now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	return CompareSpendingPeriods(current, previous), nil
}

// CompareSpendingPeriods is the pure period-over-period comparison.
func CompareSpendingPeriods(current, previous []*models.Transaction) *dto.SpendingInsightsResponse {
	sumExpenses := func(transactions []*models.Transaction) (decimal.Decimal, map[string]decimal.Decimal, int) {
		var total decimal.Decimal
		byCategory := make(map[string]decimal.Decimal)
		count := 0
		for _, tx := range transactions {
			if tx.Type != models.TypeExpense {
				continue
			}
			abs := tx.Amount.Abs()
			total = total.Add(abs)
			byCategory[tx.Category] = byCategory[tx.Category].Add(abs)
			count++
		}
		return total, byCategory, count
	}

	total, byCategory, count := sumExpenses(current)
	prevTotal, _, _ := sumExpenses(previous)

	change := 0.0
	if prevTotal.IsPositive() {
		change, _ = total.Sub(prevTotal).Div(prevTotal).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}

	trend := "stable"
	switch {
	case change > 10:
		trend = "increasing"
	case change < -10:
		trend = "decreasing"
	}

	top := make([]dto.CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		top = append(top, dto.CategoryAmount{Category: category, Amount: amount.InexactFloat64()})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Amount != top[j].Amount {
			return top[i].Amount > top[j].Amount
		}
		return top[i].Category < top[j].Category
	})
	if len(top) > 5 {
		top = top[:5]
	}

	average := 0.0
	if count > 0 {
		average, _ = total.Div(decimal.NewFromInt(int64(count))).Round(2).Float64()
	}

	return &dto.SpendingInsightsResponse{
		TotalSpending:          total.InexactFloat64(),
		PreviousPeriodSpending: prevTotal.InexactFloat64(),
		PercentageChange:       change,
		Trend:                  trend,
		TopCategories:          top,
		TransactionCount:       count,
		AverageTransaction:     average,
		Period:                 "30d",
	}
}

// FinancialHealth scores the last 30 days of income, expenses and
// investments on a 0-100 scale.
func (s *InsightService) FinancialHealth(ctx context.Context, userID uuid.UUID) (*dto.FinancialHealthResponse, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)
	transactions, err := s.txRepo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return ScoreFinancialHealth(transactions), nil
}

// ScoreFinancialHealth is the pure health computation. The score starts
// at 50 and moves with the savings and investment rates.
func ScoreFinancialHealth(transactions []*models.Transaction) *dto.FinancialHealthResponse {
	var income, expenses, investments decimal.Decimal
	for _, tx := range transactions {
		abs := tx.Amount.Abs()
		switch tx.Type {
		case models.TypeIncome:
			income = income.Add(abs)
		case models.TypeExpense:
			expenses = expenses.Add(abs)
		case models.TypeInvestment:
			investments = investments.Add(abs)
		}
	}

	net := income.Sub(expenses)
	savingsRate, investmentRate := 0.0, 0.0
	if income.IsPositive() {
		savingsRate, _ = net.Div(income).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		investmentRate, _ = investments.Div(income).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}

	score := 50
	switch {
	case savingsRate >= 20:
		score += 30
	case savingsRate >= 10:
		score += 20
	case savingsRate >= 0:
		score += 10
	default:
		score -= 20
	}
	switch {
	case investmentRate >= 15:
		score += 20
	case investmentRate >= 5:
		score += 10
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	recommendations := []dto.RecommendationResponse{}
	if savingsRate < 10 {
		recommendations = append(recommendations, dto.RecommendationResponse{
			Type:     "increase_savings",
			Priority: "high",
			Title:    "Boost your savings rate",
			Message:  "Aim to save at least 10% of your income each month",
			Reward:   30,
		})
	}
	if investments.IsZero() && income.IsPositive() {
		recommendations = append(recommendations, dto.RecommendationResponse{
			Type:     "start_investing",
			Priority: "medium",
			Title:    "Start investing",
			Message:  "Even small regular investments compound over time",
			Reward:   40,
		})
	}

	return &dto.FinancialHealthResponse{
		Income:          income.InexactFloat64(),
		Expenses:        expenses.InexactFloat64(),
		Investments:     investments.InexactFloat64(),
		NetSavings:      net.InexactFloat64(),
		SavingsRate:     savingsRate,
		InvestmentRate:  investmentRate,
		HealthScore:     score,
		Recommendations: recommendations,
	}
}
