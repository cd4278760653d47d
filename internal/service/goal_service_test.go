package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func makeGoal(target, current int64, targetDate time.Time) *models.Goal {
	return &models.Goal{
		ID:            uuid.New(),
		Title:         "Goa Trip",
		TargetAmount:  decimal.NewFromInt(target),
		CurrentAmount: decimal.NewFromInt(current),
		TargetDate:    targetDate,
		Status:        models.GoalActive,
	}
}

func TestGoalProgress(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		target  int64
		current int64
		want    float64
	}{
		{"quarter funded", 50000, 12500, 25},
		{"overfunded caps at 100", 50000, 60000, 100},
		{"zero target reads fully funded", 0, 0, 100},
		{"untouched goal", 50000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := makeGoal(tt.target, tt.current, now)
			if got := GoalProgress(goal); got != tt.want {
				t.Errorf("GoalProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoalDaysRemaining(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	goal := makeGoal(50000, 0, now.AddDate(0, 0, 30))
	if got := GoalDaysRemaining(goal, now); got != 30 {
		t.Errorf("GoalDaysRemaining() = %d, want 30", got)
	}

	goal = makeGoal(50000, 0, now.AddDate(0, 0, -5))
	if got := GoalDaysRemaining(goal, now); got != -5 {
		t.Errorf("GoalDaysRemaining(past date) = %d, want -5", got)
	}

	// Partial days round up.
	goal = makeGoal(50000, 0, now.Add(36*time.Hour))
	if got := GoalDaysRemaining(goal, now); got != 2 {
		t.Errorf("GoalDaysRemaining(36h) = %d, want 2", got)
	}
}

func TestSavingCapacity(t *testing.T) {
	transactions := []*models.Transaction{
		{Type: models.TypeIncome, Amount: decimal.NewFromInt(60000)},
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(-2000)},
		{Type: models.TypeIncome, Amount: decimal.NewFromInt(5000)},
	}

	got := SavingCapacity(transactions)
	if !got.Equal(decimal.NewFromInt(13000)) {
		t.Errorf("SavingCapacity() = %s, want 13000", got)
	}

	if got := SavingCapacity(nil); !got.IsZero() {
		t.Errorf("SavingCapacity(nil) = %s, want 0", got)
	}
}

func TestProposeAdjustment(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("reduce target when pace is hopeless", func(t *testing.T) {
		// 90000 remaining over 30 days needs 3000/day against a 400/day
		// capacity, and progress is only 10%.
		goal := makeGoal(100000, 10000, now.AddDate(0, 0, 30))
		got := ProposeAdjustment(goal, decimal.NewFromInt(12000), now)
		if got == nil {
			t.Fatal("ProposeAdjustment() = nil, want reduce_target")
		}
		if got.AdjustmentType != "reduce_target" {
			t.Fatalf("AdjustmentType = %q, want reduce_target", got.AdjustmentType)
		}
		// current + capacity x one month = 10000 + 12000.
		if got.NewTarget != 22000 {
			t.Errorf("NewTarget = %v, want 22000", got.NewTarget)
		}
		if got.Confidence != 0.85 {
			t.Errorf("Confidence = %v, want 0.85", got.Confidence)
		}
	})

	t.Run("increase target when ahead of schedule", func(t *testing.T) {
		goal := makeGoal(100000, 85000, now.AddDate(0, 0, 60))
		got := ProposeAdjustment(goal, decimal.NewFromInt(12000), now)
		if got == nil {
			t.Fatal("ProposeAdjustment() = nil, want increase_target")
		}
		if got.AdjustmentType != "increase_target" {
			t.Fatalf("AdjustmentType = %q, want increase_target", got.AdjustmentType)
		}
		if got.NewTarget != 130000 {
			t.Errorf("NewTarget = %v, want 130000", got.NewTarget)
		}
		if got.Confidence != 0.78 {
			t.Errorf("Confidence = %v, want 0.78", got.Confidence)
		}
	})

	t.Run("extend deadline when pace is tight mid-goal", func(t *testing.T) {
		// Progress 60%, 40000 remaining over 30 days needs 1333/day against
		// a 600/day threshold. Catch-up at 400/day takes 100 days.
		goal := makeGoal(100000, 60000, now.AddDate(0, 0, 30))
		got := ProposeAdjustment(goal, decimal.NewFromInt(12000), now)
		if got == nil {
			t.Fatal("ProposeAdjustment() = nil, want extend_deadline")
		}
		if got.AdjustmentType != "extend_deadline" {
			t.Fatalf("AdjustmentType = %q, want extend_deadline", got.AdjustmentType)
		}
		wantDate := now.AddDate(0, 0, 100).Format(time.RFC3339)
		if got.NewDate != wantDate {
			t.Errorf("NewDate = %q, want %q", got.NewDate, wantDate)
		}
		if got.Confidence != 0.82 {
			t.Errorf("Confidence = %v, want 0.82", got.Confidence)
		}
	})

	t.Run("no adjustment for a comfortable goal", func(t *testing.T) {
		// 30000 remaining over 90 days needs ~333/day, well inside a
		// 20000/month capacity.
		goal := makeGoal(50000, 20000, now.AddDate(0, 0, 90))
		if got := ProposeAdjustment(goal, decimal.NewFromInt(20000), now); got != nil {
			t.Errorf("ProposeAdjustment() = %+v, want nil", got)
		}
	})

	t.Run("overdue goal is treated as one day out", func(t *testing.T) {
		goal := makeGoal(100000, 10000, now.AddDate(0, 0, -3))
		got := ProposeAdjustment(goal, decimal.NewFromInt(12000), now)
		if got == nil {
			t.Fatal("ProposeAdjustment(overdue) = nil, want reduce_target")
		}
		if got.AdjustmentType != "reduce_target" {
			t.Fatalf("AdjustmentType = %q, want reduce_target", got.AdjustmentType)
		}
		// current + capacity x 1/30 of a month = 10000 + 400.
		if got.NewTarget != 10400 {
			t.Errorf("NewTarget = %v, want 10400", got.NewTarget)
		}
	})

	t.Run("zero capacity mid-goal", func(t *testing.T) {
		goal := makeGoal(100000, 60000, now.AddDate(0, 0, 30))
		if got := ProposeAdjustment(goal, decimal.Zero, now); got != nil {
			t.Errorf("ProposeAdjustment(zero capacity) = %+v, want nil", got)
		}
	})
}

func TestMilestones(t *testing.T) {
	goal := makeGoal(100000, 50000, time.Now().UTC().AddDate(0, 6, 0))

	milestones := Milestones(goal)
	if len(milestones) != 4 {
		t.Fatalf("Milestones() returned %d entries, want 4", len(milestones))
	}

	wantThresholds := []float64{25000, 50000, 75000, 90000}
	wantRewards := []float64{120, 150, 200, 300}
	wantAchieved := []bool{true, true, false, false}

	for i, m := range milestones {
		if m.TargetAmount != wantThresholds[i] {
			t.Errorf("milestone %d TargetAmount = %v, want %v", i, m.TargetAmount, wantThresholds[i])
		}
		if m.Reward != wantRewards[i] {
			t.Errorf("milestone %d Reward = %v, want %v", i, m.Reward, wantRewards[i])
		}
		if m.Achieved != wantAchieved[i] {
			t.Errorf("milestone %d Achieved = %v, want %v", i, m.Achieved, wantAchieved[i])
		}
	}

	if milestones[0].Title != "25% of Goa Trip" {
		t.Errorf("milestone title = %q, want %q", milestones[0].Title, "25% of Goa Trip")
	}
}

func TestSuggestGoals(t *testing.T) {
	transactions := []*models.Transaction{
		{Type: models.TypeIncome, Amount: decimal.NewFromInt(40000)},
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(-8000), Category: "food"},
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(-2500), Category: "entertainment"},
	}

	t.Run("all three suggestions fire", func(t *testing.T) {
		got := SuggestGoals(nil, transactions)
		if len(got) != 3 {
			t.Fatalf("SuggestGoals() returned %d suggestions, want 3", len(got))
		}

		// Six months of the 10500 total spend.
		if got[0].Category != string(models.GoalEmergency) {
			t.Errorf("first category = %q, want emergency", got[0].Category)
		}
		if got[0].TargetAmount != 63000 {
			t.Errorf("emergency target = %v, want 63000", got[0].TargetAmount)
		}
		if got[0].Priority != string(models.PriorityHigh) {
			t.Errorf("emergency priority = %q, want high", got[0].Priority)
		}

		// Six months of the 2500 entertainment spend.
		if got[1].Category != string(models.GoalVacation) {
			t.Errorf("second category = %q, want vacation", got[1].Category)
		}
		if got[1].TargetAmount != 15000 {
			t.Errorf("vacation target = %v, want 15000", got[1].TargetAmount)
		}

		// 15% of annualized income.
		if got[2].Category != string(models.GoalInvestment) {
			t.Errorf("third category = %q, want investment", got[2].Category)
		}
		if got[2].TargetAmount != 72000 {
			t.Errorf("investment target = %v, want 72000", got[2].TargetAmount)
		}
	})

	t.Run("existing categories are skipped", func(t *testing.T) {
		goals := []*models.Goal{
			{Category: models.GoalEmergency},
			{Category: models.GoalVacation},
		}
		got := SuggestGoals(goals, transactions)
		if len(got) != 1 {
			t.Fatalf("SuggestGoals() returned %d suggestions, want 1", len(got))
		}
		if got[0].Category != string(models.GoalInvestment) {
			t.Errorf("category = %q, want investment", got[0].Category)
		}
	})

	t.Run("no activity yields nothing", func(t *testing.T) {
		if got := SuggestGoals(nil, nil); len(got) != 0 {
			t.Errorf("SuggestGoals(no activity) returned %d suggestions, want 0", len(got))
		}
	})
}

func TestCreateRejectsPastTargetDate(t *testing.T) {
	svc := NewGoalService(nil, nil, zap.NewNop())

	tests := []struct {
		name       string
		targetDate string
	}{
		{"past date", "2020-01-01"},
		{"past RFC3339 date", "2020-01-01T10:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateGoalRequest{
				Title:        "Goa Trip",
				TargetAmount: 50000,
				TargetDate:   tt.targetDate,
				Category:     string(models.GoalVacation),
			})
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Create() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestApplyCompletion(t *testing.T) {
	tests := []struct {
		name    string
		status  models.GoalStatus
		target  int64
		current int64
		want    models.GoalStatus
	}{
		{"active goal reaching target completes", models.GoalActive, 50000, 50000, models.GoalCompleted},
		{"active goal over target completes", models.GoalActive, 50000, 60000, models.GoalCompleted},
		{"active goal below target stays active", models.GoalActive, 50000, 49999, models.GoalActive},
		{"completed goal never reverts", models.GoalCompleted, 50000, 0, models.GoalCompleted},
		{"paused goal stays paused at target", models.GoalPaused, 50000, 50000, models.GoalPaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := makeGoal(tt.target, tt.current, time.Now().UTC())
			goal.Status = tt.status
			applyCompletion(goal)
			if goal.Status != tt.want {
				t.Errorf("status = %q, want %q", goal.Status, tt.want)
			}
		})
	}
}
