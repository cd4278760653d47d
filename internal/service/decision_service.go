package service

import (
	"context"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"
	"neowealth/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Recognized event types. Anything else passes through with an empty
// decision list.
const (
	EventTransactionAdded  = "transaction_added"
	EventGoalCreated       = "goal_created"
	EventSpendingThreshold = "spending_threshold_reached"
	EventUserLogin         = "user_login"
)

var engagementBonus = decimal.NewFromInt(2)

// DecisionService is the event dispatcher: it analyzes an incoming event
// against the user's history, decides what to do, and executes each
// decision in isolation so one failure cannot block the rest.
type DecisionService struct {
	txRepo    *repository.TransactionRepository
	goalRepo  *repository.GoalRepository
	walletSvc *WalletService
	logger    *zap.Logger
}

func NewDecisionService(
	txRepo *repository.TransactionRepository,
	goalRepo *repository.GoalRepository,
	walletSvc *WalletService,
	logger *zap.Logger,
) *DecisionService {
	return &DecisionService{
		txRepo:    txRepo,
		goalRepo:  goalRepo,
		walletSvc: walletSvc,
		logger:    logger,
	}
}

// Handle processes one event end to end.
func (s *DecisionService) Handle(ctx context.Context, userID uuid.UUID, eventType string, eventData map[string]interface{}) (*dto.EventOutcomeResponse, error) {
	outcome := &dto.EventOutcomeResponse{
		EventType: eventType,
		Context:   map[string]interface{}{},
		Decisions: []dto.DecisionResponse{},
		Results:   []dto.ExecutionResultResponse{},
	}

	switch eventType {
	case EventTransactionAdded:
		if err := s.analyzeTransactionEvent(ctx, userID, eventData, outcome); err != nil {
			return nil, err
		}
	case EventGoalCreated:
		if err := s.analyzeGoalEvent(ctx, userID, eventData, outcome); err != nil {
			return nil, err
		}
	case EventSpendingThreshold:
		s.analyzeThresholdEvent(eventData, outcome)
	case EventUserLogin:
		if err := s.analyzeLoginEvent(ctx, userID, outcome); err != nil {
			return nil, err
		}
	default:
		s.logger.Debug("Unknown event type, no decisions", zap.String("event_type", eventType))
		return outcome, nil
	}

	for _, decision := range outcome.Decisions {
		result := dto.ExecutionResultResponse{Action: decision.Action, Success: true}
		if err := s.execute(ctx, userID, decision); err != nil {
			result.Success = false
			result.Error = err.Error()
			s.logger.Warn("Decision execution failed",
				zap.String("action", decision.Action),
				zap.Error(err))
		}
		outcome.Results = append(outcome.Results, result)
	}

	return outcome, nil
}

func (s *DecisionService) analyzeTransactionEvent(ctx context.Context, userID uuid.UUID, eventData map[string]interface{}, outcome *dto.EventOutcomeResponse) error {
	amount := decimal.NewFromFloat(floatField(eventData, "amount")).Abs()
	category, _ := eventData["category"].(string)

	since := time.Now().UTC().AddDate(0, 0, -30)
	recent, err := s.txRepo.ListSince(ctx, userID, since)
	if err != nil {
		return err
	}

	avg := categoryAverage(recent, category)
	unusual := avg.IsPositive() && amount.GreaterThan(avg.Mul(decimal.NewFromInt(2)))
	risk := amountRisk(amount)

	outcome.Context["category_average"] = avg.InexactFloat64()
	outcome.Context["unusual_amount"] = unusual
	outcome.Context["risk_level"] = risk

	if unusual {
		outcome.Decisions = append(outcome.Decisions, dto.DecisionResponse{
			Action:   "notify_unusual_spending",
			Priority: "high",
			Reason:   "Amount is more than double the 30-day average for this category",
			Data: map[string]interface{}{
				"category": category,
				"amount":   amount.InexactFloat64(),
				"average":  avg.InexactFloat64(),
			},
		})
	}
	if risk == "high" {
		outcome.Decisions = append(outcome.Decisions, dto.DecisionResponse{
			Action:   "suggest_spending_review",
			Priority: "medium",
			Reason:   "Large single transaction recorded",
			Data:     map[string]interface{}{"amount": amount.InexactFloat64()},
		})
	}
	return nil
}

func (s *DecisionService) analyzeGoalEvent(ctx context.Context, userID uuid.UUID, eventData map[string]interface{}, outcome *dto.EventOutcomeResponse) error {
	target := decimal.NewFromFloat(floatField(eventData, "target_amount"))

	since := time.Now().UTC().AddDate(0, 0, -30)
	recent, err := s.txRepo.ListSince(ctx, userID, since)
	if err != nil {
		return err
	}

	var income, expenses decimal.Decimal
	for _, tx := range recent {
		switch tx.Type {
		case models.TypeIncome:
			income = income.Add(tx.Amount.Abs())
		case models.TypeExpense:
			expenses = expenses.Add(tx.Amount.Abs())
		}
	}
	capacity := income.Sub(expenses)

	feasible := true
	if target.IsPositive() && capacity.IsPositive() {
		// More than two years of full surplus reads as unrealistic.
		monthsNeeded := target.Div(capacity)
		feasible = monthsNeeded.LessThanOrEqual(decimal.NewFromInt(24))
	} else if !capacity.IsPositive() {
		feasible = false
	}

	outcome.Context["monthly_capacity"] = capacity.InexactFloat64()
	outcome.Context["feasible"] = feasible

	if !feasible {
		outcome.Decisions = append(outcome.Decisions, dto.DecisionResponse{
			Action:   "suggest_goal_adjustment",
			Priority: "medium",
			Reason:   "Goal target looks out of reach at the current saving pace",
			Data:     map[string]interface{}{"monthly_capacity": capacity.InexactFloat64()},
		})
	}
	return nil
}

func (s *DecisionService) analyzeThresholdEvent(eventData map[string]interface{}, outcome *dto.EventOutcomeResponse) {
	outcome.Context["threshold"] = floatField(eventData, "threshold")
	outcome.Context["spent"] = floatField(eventData, "spent")
	outcome.Decisions = append(outcome.Decisions, dto.DecisionResponse{
		Action:   "issue_budget_warning",
		Priority: "high",
		Reason:   "Spending crossed the configured threshold",
		Data:     eventData,
	})
}

func (s *DecisionService) analyzeLoginEvent(ctx context.Context, userID uuid.UUID, outcome *dto.EventOutcomeResponse) error {
	since := time.Now().UTC().AddDate(0, 0, -7)
	count, err := s.txRepo.CountSince(ctx, userID, since)
	if err != nil {
		return err
	}

	engagement := "low"
	switch {
	case count > 5:
		engagement = "high"
	case count > 2:
		engagement = "medium"
	}
	outcome.Context["weekly_transactions"] = count
	outcome.Context["engagement"] = engagement

	if engagement == "high" {
		outcome.Decisions = append(outcome.Decisions, dto.DecisionResponse{
			Action:   "award_engagement_bonus",
			Priority: "low",
			Reason:   "Active tracking this week",
		})
	} else {
		outcome.Decisions = append(outcome.Decisions, dto.DecisionResponse{
			Action:   "send_engagement_nudge",
			Priority: "low",
			Reason:   "Few transactions recorded this week",
		})
	}
	return nil
}

func (s *DecisionService) execute(ctx context.Context, userID uuid.UUID, decision dto.DecisionResponse) error {
	switch decision.Action {
	case "award_engagement_bonus":
		_, err := s.walletSvc.Earn(ctx, userID, engagementBonus, "Engagement bonus")
		return err
	default:
		// Notification-style decisions have no side effects yet; they
		// surface to the client through the outcome payload.
		s.logger.Info("Decision recorded",
			zap.String("user_id", userID.String()),
			zap.String("action", decision.Action),
			zap.String("priority", decision.Priority))
		return nil
	}
}

func categoryAverage(transactions []*models.Transaction, category string) decimal.Decimal {
	var total decimal.Decimal
	count := 0
	for _, tx := range transactions {
		if tx.Type == models.TypeExpense && tx.Category == category {
			total = total.Add(tx.Amount.Abs())
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

func amountRisk(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThan(decimal.NewFromInt(5000)):
		return "high"
	case amount.GreaterThan(decimal.NewFromInt(1000)):
		return "medium"
	default:
		return "low"
	}
}

func floatField(data map[string]interface{}, key string) float64 {
	if data == nil {
		return 0
	}
	switch v := data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
