package service

import (
	"testing"
	"time"

	"neowealth/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func makeHive() *models.Hive {
	return &models.Hive{
		ID:                  uuid.New(),
		Name:                "Vacation Squad",
		MaxMembers:          5,
		CurrentMembers:      2,
		TargetAmount:        decimal.NewFromInt(200000),
		CurrentAmount:       decimal.NewFromInt(50000),
		RiskLevel:           models.RiskMedium,
		MonthlyContribution: decimal.NewFromInt(5000),
		Status:              models.HiveActive,
	}
}

func TestMatchesHive(t *testing.T) {
	user := &models.User{
		MonthlyIncome: decimal.NewFromInt(60000),
		RiskTolerance: models.RiskMedium,
	}

	incomes := func(values ...int64) []decimal.Decimal {
		out := make([]decimal.Decimal, len(values))
		for i, v := range values {
			out[i] = decimal.NewFromInt(v)
		}
		return out
	}

	t.Run("compatible hive", func(t *testing.T) {
		if !MatchesHive(makeHive(), user, incomes(55000, 65000)) {
			t.Error("MatchesHive() = false, want true")
		}
	})

	t.Run("full hive", func(t *testing.T) {
		hive := makeHive()
		hive.CurrentMembers = hive.MaxMembers
		if MatchesHive(hive, user, incomes(60000)) {
			t.Error("MatchesHive(full) = true, want false")
		}
	})

	t.Run("inactive hive", func(t *testing.T) {
		hive := makeHive()
		hive.Status = models.HiveCompleted
		if MatchesHive(hive, user, incomes(60000)) {
			t.Error("MatchesHive(inactive) = true, want false")
		}
	})

	t.Run("risk mismatch", func(t *testing.T) {
		hive := makeHive()
		hive.RiskLevel = models.RiskHigh
		if MatchesHive(hive, user, incomes(60000)) {
			t.Error("MatchesHive(risk mismatch) = true, want false")
		}
	})

	t.Run("empty hive always fits", func(t *testing.T) {
		if !MatchesHive(makeHive(), user, nil) {
			t.Error("MatchesHive(no members) = false, want true")
		}
	})

	t.Run("income band boundaries", func(t *testing.T) {
		// Average must sit within 50% of the user's 60000.
		if !MatchesHive(makeHive(), user, incomes(90000)) {
			t.Error("MatchesHive(avg 90000) = false, want true")
		}
		if MatchesHive(makeHive(), user, incomes(95000)) {
			t.Error("MatchesHive(avg 95000) = true, want false")
		}
		if !MatchesHive(makeHive(), user, incomes(30000)) {
			t.Error("MatchesHive(avg 30000) = false, want true")
		}
		if MatchesHive(makeHive(), user, incomes(25000)) {
			t.Error("MatchesHive(avg 25000) = true, want false")
		}
	})

	t.Run("user without income", func(t *testing.T) {
		broke := &models.User{RiskTolerance: models.RiskMedium}
		if MatchesHive(makeHive(), broke, incomes(60000)) {
			t.Error("MatchesHive(no income vs earning members) = true, want false")
		}
		if !MatchesHive(makeHive(), broke, incomes(0, 0)) {
			t.Error("MatchesHive(no income vs zero-income members) = false, want true")
		}
	})
}

func TestHiveProgress(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("funded quarter with projections", func(t *testing.T) {
		hive := makeHive()
		hive.EndDate = now.AddDate(0, 0, 45)
		members := []*models.HiveMember{
			{MonthlyContribution: decimal.NewFromInt(5000)},
			{MonthlyContribution: decimal.NewFromInt(5000)},
		}

		got := HiveProgress(hive, members, now)
		if got.Progress != 25 {
			t.Errorf("Progress = %v, want 25", got.Progress)
		}
		if got.MonthsRemaining != 2 {
			t.Errorf("MonthsRemaining = %d, want 2", got.MonthsRemaining)
		}
		if got.TotalMonthlyContribution != 10000 {
			t.Errorf("TotalMonthlyContribution = %v, want 10000", got.TotalMonthlyContribution)
		}
		if got.ProjectedMonthsToComplete == nil {
			t.Fatal("ProjectedMonthsToComplete = nil, want 15")
		}
		if *got.ProjectedMonthsToComplete != 15 {
			t.Errorf("ProjectedMonthsToComplete = %v, want 15", *got.ProjectedMonthsToComplete)
		}
	})

	t.Run("no contributions means no projection", func(t *testing.T) {
		hive := makeHive()
		hive.EndDate = now.AddDate(0, 0, -10)

		got := HiveProgress(hive, nil, now)
		if got.ProjectedMonthsToComplete != nil {
			t.Errorf("ProjectedMonthsToComplete = %v, want nil", *got.ProjectedMonthsToComplete)
		}
		if got.MonthsRemaining != 0 {
			t.Errorf("MonthsRemaining = %d, want 0", got.MonthsRemaining)
		}
	})

	t.Run("overfunded clamps to 100", func(t *testing.T) {
		hive := makeHive()
		hive.CurrentAmount = decimal.NewFromInt(250000)
		hive.EndDate = now.AddDate(0, 1, 0)
		members := []*models.HiveMember{
			{MonthlyContribution: decimal.NewFromInt(5000)},
		}

		got := HiveProgress(hive, members, now)
		if got.Progress != 100 {
			t.Errorf("Progress = %v, want 100", got.Progress)
		}
		if got.ProjectedMonthsToComplete == nil || *got.ProjectedMonthsToComplete != 0 {
			t.Errorf("ProjectedMonthsToComplete = %v, want 0", got.ProjectedMonthsToComplete)
		}
	})

	t.Run("zero target", func(t *testing.T) {
		hive := makeHive()
		hive.TargetAmount = decimal.Zero
		hive.CurrentAmount = decimal.Zero
		hive.EndDate = now.AddDate(0, 1, 0)

		got := HiveProgress(hive, nil, now)
		if got.Progress != 0 {
			t.Errorf("Progress = %v, want 0", got.Progress)
		}
	})
}

func TestHiveCapacity(t *testing.T) {
	if got := hiveCapacity(0); got != 15 {
		t.Errorf("hiveCapacity(0) = %d, want the default of 15", got)
	}
	if got := hiveCapacity(-3); got != 15 {
		t.Errorf("hiveCapacity(-3) = %d, want 15", got)
	}
	if got := hiveCapacity(8); got != 8 {
		t.Errorf("hiveCapacity(8) = %d, want 8", got)
	}
}

func TestNewHiveMember(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	userID, hiveID := uuid.New(), uuid.New()

	member := newHiveMember(userID, hiveID, models.RoleAdmin, decimal.NewFromInt(5000), now)
	if member.UserID != userID || member.HiveID != hiveID {
		t.Error("member IDs do not match the inputs")
	}
	if member.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want admin", member.Role)
	}
	if member.Status != models.MemberActive {
		t.Errorf("Status = %q, want active", member.Status)
	}
	// Consistency lives on a 0-1 scale and starts perfect.
	if !member.ConsistencyScore.Equal(decimal.NewFromInt(1)) {
		t.Errorf("ConsistencyScore = %s, want 1", member.ConsistencyScore)
	}
	if !member.JoinedAt.Equal(now) {
		t.Errorf("JoinedAt = %v, want %v", member.JoinedAt, now)
	}
}

func TestToMembershipResponse(t *testing.T) {
	joined := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	member := &models.HiveMember{
		ID:                  uuid.New(),
		HiveID:              uuid.New(),
		Role:                models.RoleAdmin,
		MonthlyContribution: decimal.NewFromInt(5000),
		TotalContributed:    decimal.NewFromInt(15000),
		Status:              models.MemberActive,
		JoinedAt:            joined,
	}

	got := ToMembershipResponse(member)
	if got.Role != "admin" {
		t.Errorf("Role = %q, want admin", got.Role)
	}
	if got.TotalContributed != 15000 {
		t.Errorf("TotalContributed = %v, want 15000", got.TotalContributed)
	}
	if got.JoinedAt != "2025-08-01T10:00:00Z" {
		t.Errorf("JoinedAt = %q, want 2025-08-01T10:00:00Z", got.JoinedAt)
	}
}
