package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"
	"neowealth/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Savings capacity is estimated as a fifth of the trailing 30-day income.
var savingCapacityRate = decimal.NewFromFloat(0.2)

type milestoneStep struct {
	percentage int
	multiplier decimal.Decimal
}

// Milestone checkpoints with their NeoCoin reward multipliers. The reward
// base is target/1000 floored.
var milestoneSteps = []milestoneStep{
	{25, decimal.NewFromFloat(1.2)},
	{50, decimal.NewFromFloat(1.5)},
	{75, decimal.NewFromFloat(2.0)},
	{90, decimal.NewFromFloat(3.0)},
}

type GoalService struct {
	goalRepo *repository.GoalRepository
	txRepo   *repository.TransactionRepository
	logger   *zap.Logger
}

func NewGoalService(goalRepo *repository.GoalRepository, txRepo *repository.TransactionRepository, logger *zap.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		txRepo:   txRepo,
		logger:   logger,
	}
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*models.Goal, error) {
	target := decimal.NewFromFloat(req.TargetAmount)
	if !target.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", ErrInvalidInput)
	}

	targetDate, err := time.Parse(time.RFC3339, req.TargetDate)
	if err != nil {
		targetDate, err = time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid target date", ErrInvalidInput)
		}
	}
	if !targetDate.After(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: target date must be in the future", ErrInvalidInput)
	}

	priority := models.GoalPriority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := time.Now().UTC()
	goal := &models.Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: target,
		TargetDate:   targetDate,
		Category:     models.GoalCategory(req.Category),
		Priority:     priority,
		Status:       models.GoalActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID, status string) ([]*models.Goal, error) {
	return s.goalRepo.ListByUser(ctx, userID, models.GoalStatus(status))
}

func (s *GoalService) Update(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		goal.Title = req.Title
	}
	if req.Description != "" {
		goal.Description = req.Description
	}
	if req.TargetAmount != nil {
		target := decimal.NewFromFloat(*req.TargetAmount)
		if !target.IsPositive() {
			return nil, fmt.Errorf("%w: target amount must be positive", ErrInvalidInput)
		}
		goal.TargetAmount = target
	}
	if req.CurrentAmount != nil {
		goal.CurrentAmount = decimal.NewFromFloat(*req.CurrentAmount)
	}
	if req.TargetDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid target date", ErrInvalidInput)
		}
		goal.TargetDate = parsed
	}
	if req.Category != "" {
		goal.Category = models.GoalCategory(req.Category)
	}
	if req.Priority != "" {
		goal.Priority = models.GoalPriority(req.Priority)
	}
	if req.Status != "" {
		goal.Status = models.GoalStatus(req.Status)
	}

	// Completion is one-directional: reaching the target completes the
	// goal even if the status update above said otherwise.
	applyCompletion(goal)
	goal.UpdatedAt = time.Now().UTC()

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	err := s.goalRepo.Delete(ctx, id, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Contribute adds to the goal's saved amount and completes the goal when
// the target is reached.
func (s *GoalService) Contribute(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) (*models.Goal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: contribution must be positive", ErrInvalidInput)
	}

	goal, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if goal.Status != models.GoalActive {
		return nil, fmt.Errorf("%w: goal is not active", ErrInvalidInput)
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	applyCompletion(goal)
	goal.UpdatedAt = time.Now().UTC()

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// applyCompletion flips an active goal to completed once the saved
// amount reaches the target. It never moves a goal the other way.
func applyCompletion(goal *models.Goal) {
	if goal.Status == models.GoalActive && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Status = models.GoalCompleted
	}
}

// GoalProgress returns percent saved, capped at 100. A zero target reads
// as fully funded.
func GoalProgress(goal *models.Goal) float64 {
	if goal.TargetAmount.IsZero() {
		return 100
	}
	progress, _ := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if progress > 100 {
		return 100
	}
	return progress
}

// GoalDaysRemaining counts days until the target date, negative when the
// date has passed.
func GoalDaysRemaining(goal *models.Goal, now time.Time) int {
	return int(math.Ceil(goal.TargetDate.Sub(now).Hours() / 24))
}

// SavingCapacity estimates how much the user can put aside per month
// from their trailing 30-day income.
func SavingCapacity(transactions []*models.Transaction) decimal.Decimal {
	var income decimal.Decimal
	for _, tx := range transactions {
		if tx.Type == models.TypeIncome {
			income = income.Add(tx.Amount.Abs())
		}
	}
	return income.Mul(savingCapacityRate)
}

// ProposeAdjustment evaluates a goal against the user's saving capacity
// and returns at most one adjustment, the highest-priority applicable
// rule: reduce the target, then raise it, then extend the deadline.
func ProposeAdjustment(goal *models.Goal, capacity decimal.Decimal, now time.Time) *dto.OptimizationResponse {
	// Overdue goals still get optimized; the pace math treats them as
	// having one day left.
	days := GoalDaysRemaining(goal, now)
	if days < 1 {
		days = 1
	}

	progress := GoalProgress(goal)
	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	dailyRequired := remaining.Div(decimal.NewFromInt(int64(days)))
	dailyCapacity := capacity.Div(decimal.NewFromInt(30))

	if dailyRequired.GreaterThan(dailyCapacity) && progress < 50 {
		months := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(30))
		newTarget := goal.CurrentAmount.Add(capacity.Mul(months))
		return &dto.OptimizationResponse{
			GoalID:         goal.ID.String(),
			AdjustmentType: "reduce_target",
			NewTarget:      newTarget.Round(2).InexactFloat64(),
			Confidence:     0.85,
			Reasoning:      "Current saving pace cannot reach the target in time; a smaller target keeps the goal achievable",
		}
	}

	if progress > 80 && days > 30 {
		newTarget := goal.TargetAmount.Mul(decimal.NewFromFloat(1.3))
		return &dto.OptimizationResponse{
			GoalID:         goal.ID.String(),
			AdjustmentType: "increase_target",
			NewTarget:      newTarget.Round(2).InexactFloat64(),
			Confidence:     0.78,
			Reasoning:      "You are well ahead of schedule; the target can stretch further",
		}
	}

	if !dailyCapacity.IsPositive() {
		return nil
	}

	if dailyRequired.GreaterThan(capacity.Div(decimal.NewFromInt(20))) && progress > 30 {
		daysNeeded := remaining.Div(dailyCapacity).Ceil().IntPart()
		newDate := now.AddDate(0, 0, int(daysNeeded))
		return &dto.OptimizationResponse{
			GoalID:         goal.ID.String(),
			AdjustmentType: "extend_deadline",
			NewDate:        newDate.Format(time.RFC3339),
			Confidence:     0.82,
			Reasoning:      "Progress is solid but the deadline is tight; more time keeps the pace sustainable",
		}
	}

	return nil
}

// AnalyzeProgress runs the optimizer over the user's active goals and
// persists any accepted adjustment on the goal record.
func (s *GoalService) AnalyzeProgress(ctx context.Context, userID uuid.UUID) ([]*dto.OptimizationResponse, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID, models.GoalActive)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recent, err := s.txRepo.ListSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	capacity := SavingCapacity(recent)

	adjustments := make([]*dto.OptimizationResponse, 0, len(goals))
	for _, goal := range goals {
		adjustment := ProposeAdjustment(goal, capacity, now)
		if adjustment == nil {
			continue
		}

		if err := s.applyAdjustment(ctx, goal, adjustment, now); err != nil {
			s.logger.Warn("Failed to apply goal adjustment",
				zap.String("goal_id", goal.ID.String()),
				zap.Error(err))
			continue
		}
		adjustments = append(adjustments, adjustment)
	}

	return adjustments, nil
}

func (s *GoalService) applyAdjustment(ctx context.Context, goal *models.Goal, adjustment *dto.OptimizationResponse, now time.Time) error {
	goal.LastOptimization = &models.LastOptimization{
		OptimizedAt:    now,
		AdjustmentType: adjustment.AdjustmentType,
		Confidence:     adjustment.Confidence,
		Reasoning:      adjustment.Reasoning,
		PreviousTarget: goal.TargetAmount,
		PreviousDate:   goal.TargetDate,
	}

	switch adjustment.AdjustmentType {
	case "reduce_target", "increase_target":
		goal.TargetAmount = decimal.NewFromFloat(adjustment.NewTarget)
	case "extend_deadline":
		newDate, err := time.Parse(time.RFC3339, adjustment.NewDate)
		if err != nil {
			return err
		}
		goal.TargetDate = newDate
	}
	goal.UpdatedAt = now

	return s.goalRepo.Update(ctx, goal)
}

// Milestones builds the reward checkpoints for a goal and marks which
// ones the saved amount has already passed.
func Milestones(goal *models.Goal) []dto.MilestoneResponse {
	base := goal.TargetAmount.Div(decimal.NewFromInt(1000)).Floor()
	hundred := decimal.NewFromInt(100)

	milestones := make([]dto.MilestoneResponse, 0, len(milestoneSteps))
	for _, step := range milestoneSteps {
		threshold := goal.TargetAmount.Mul(decimal.NewFromInt(int64(step.percentage))).Div(hundred)
		milestones = append(milestones, dto.MilestoneResponse{
			Percentage:   step.percentage,
			TargetAmount: threshold.Round(2).InexactFloat64(),
			Reward:       base.Mul(step.multiplier).Round(2).InexactFloat64(),
			Title:        fmt.Sprintf("%d%% of %s", step.percentage, goal.Title),
			Achieved:     goal.CurrentAmount.GreaterThanOrEqual(threshold),
		})
	}
	return milestones
}

func (s *GoalService) GoalMilestones(ctx context.Context, id, userID uuid.UUID) ([]dto.MilestoneResponse, error) {
	goal, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return Milestones(goal), nil
}

// SuggestGoals proposes new goals from the user's last 30 days of
// activity, skipping categories the user already has a goal for.
func SuggestGoals(goals []*models.Goal, transactions []*models.Transaction) []dto.GoalSuggestionResponse {
	existing := make(map[models.GoalCategory]bool, len(goals))
	for _, goal := range goals {
		existing[goal.Category] = true
	}

	var income, expenses, entertainment decimal.Decimal
	for _, tx := range transactions {
		abs := tx.Amount.Abs()
		switch tx.Type {
		case models.TypeIncome:
			income = income.Add(abs)
		case models.TypeExpense:
			expenses = expenses.Add(abs)
			if tx.Category == "entertainment" {
				entertainment = entertainment.Add(abs)
			}
		}
	}

	var suggestions []dto.GoalSuggestionResponse

	if !existing[models.GoalEmergency] && expenses.IsPositive() {
		target := expenses.Mul(decimal.NewFromInt(6))
		suggestions = append(suggestions, dto.GoalSuggestionResponse{
			Category:     string(models.GoalEmergency),
			Title:        "Emergency Fund",
			Description:  "Six months of expenses as a safety net",
			TargetAmount: target.Round(2).InexactFloat64(),
			Priority:     string(models.PriorityHigh),
			Reasoning:    "No emergency fund goal found; six months of your current spending is the standard buffer",
			Confidence:   0.9,
		})
	}

	if !existing[models.GoalVacation] && entertainment.GreaterThan(decimal.NewFromInt(2000)) {
		target := entertainment.Mul(decimal.NewFromInt(6))
		suggestions = append(suggestions, dto.GoalSuggestionResponse{
			Category:     string(models.GoalVacation),
			Title:        "Vacation Fund",
			Description:  "Turn part of your entertainment budget into a trip",
			TargetAmount: target.Round(2).InexactFloat64(),
			Priority:     string(models.PriorityMedium),
			Reasoning:    "Your entertainment spending suggests room for a dedicated vacation fund",
			Confidence:   0.75,
		})
	}

	if !existing[models.GoalInvestment] && income.GreaterThan(decimal.NewFromInt(30000)) {
		target := income.Mul(decimal.NewFromInt(12)).Mul(decimal.NewFromFloat(0.15))
		suggestions = append(suggestions, dto.GoalSuggestionResponse{
			Category:     string(models.GoalInvestment),
			Title:        "Investment Portfolio",
			Description:  "Invest 15% of your annual income",
			TargetAmount: target.Round(2).InexactFloat64(),
			Priority:     string(models.PriorityMedium),
			Reasoning:    "Your income level supports a regular investment habit",
			Confidence:   0.8,
		})
	}

	return suggestions
}

func (s *GoalService) SuggestNewGoals(ctx context.Context, userID uuid.UUID) ([]dto.GoalSuggestionResponse, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	recent, err := s.txRepo.ListSince(ctx, userID, time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return SuggestGoals(goals, recent), nil
}

// ToGoalResponse shapes a goal for the API, with computed progress and
// days remaining.
func ToGoalResponse(goal *models.Goal, now time.Time) dto.GoalResponse {
	return dto.GoalResponse{
		ID:            goal.ID.String(),
		Title:         goal.Title,
		Description:   goal.Description,
		TargetAmount:  goal.TargetAmount.InexactFloat64(),
		CurrentAmount: goal.CurrentAmount.InexactFloat64(),
		TargetDate:    goal.TargetDate.Format(time.RFC3339),
		Category:      string(goal.Category),
		Priority:      string(goal.Priority),
		Status:        string(goal.Status),
		Progress:      GoalProgress(goal),
		DaysRemaining: GoalDaysRemaining(goal, now),
		CreatedAt:     goal.CreatedAt.Format(time.RFC3339),
	}
}
