package service

import (
	"testing"
	"time"

	"neowealth/internal/models"

	"github.com/shopspring/decimal"
)

func testRewardParams() RewardParams {
	return RewardParams{
		InitialBalance:   decimal.NewFromInt(100),
		DailyBase:        decimal.NewFromInt(5),
		StreakMultiplier: decimal.RequireFromString("1.5"),
		StreakThreshold:  5,
		CashbackRate:     decimal.RequireFromString("0.01"),
	}
}

func TestCalculateDailyReward(t *testing.T) {
	params := testRewardParams()
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := time.Date(2025, 8, 20, 0, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastReward  *time.Time
		recentCount int
		want        string
	}{
		{"never rewarded", nil, 0, "5"},
		{"rewarded yesterday", &yesterday, 0, "5"},
		{"already rewarded today", &earlierToday, 10, "0"},
		{"streak bonus at threshold", &yesterday, 5, "7.5"},
		{"below streak threshold", &yesterday, 4, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallet := &models.Wallet{LastRewardDate: tt.lastReward}
			got := CalculateDailyReward(wallet, tt.recentCount, params, now)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("CalculateDailyReward() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCalculateDailyRewardDayBoundary(t *testing.T) {
	params := testRewardParams()
	lastReward := time.Date(2025, 8, 19, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, 8, 20, 0, 1, 0, 0, time.UTC)

	wallet := &models.Wallet{LastRewardDate: &lastReward}
	got := CalculateDailyReward(wallet, 0, params, now)
	if !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("CalculateDailyReward() across midnight = %s, want 5", got)
	}
}

func TestCashbackReward(t *testing.T) {
	params := testRewardParams()

	tests := []struct {
		name       string
		txType     models.TransactionType
		amount     string
		multiplier string
		want       string
	}{
		{"expense earns cashback", models.TypeExpense, "2000", "1", "20"},
		{"negative expense uses magnitude", models.TypeExpense, "-2000", "1", "20"},
		{"multiplier scales cashback", models.TypeExpense, "2000", "2", "40"},
		{"income earns nothing here", models.TypeIncome, "2000", "1", "0"},
		{"transfer earns nothing", models.TypeTransfer, "2000", "1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CashbackReward(tt.txType, decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.multiplier), params)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("CashbackReward() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApplyCashLedger(t *testing.T) {
	t.Run("expense", func(t *testing.T) {
		wallet := &models.Wallet{CashBalance: decimal.NewFromInt(10000)}
		ApplyCashLedger(wallet, models.TypeExpense, decimal.NewFromInt(2000))
		if !wallet.CashBalance.Equal(decimal.NewFromInt(8000)) {
			t.Errorf("CashBalance = %s, want 8000", wallet.CashBalance)
		}
		if !wallet.TotalSpent.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("TotalSpent = %s, want 2000", wallet.TotalSpent)
		}
	})

	t.Run("income", func(t *testing.T) {
		wallet := &models.Wallet{}
		ApplyCashLedger(wallet, models.TypeIncome, decimal.NewFromInt(60000))
		if !wallet.CashBalance.Equal(decimal.NewFromInt(60000)) {
			t.Errorf("CashBalance = %s, want 60000", wallet.CashBalance)
		}
		if !wallet.TotalEarned.Equal(decimal.NewFromInt(60000)) {
			t.Errorf("TotalEarned = %s, want 60000", wallet.TotalEarned)
		}
	})

	t.Run("transfer leaves cash untouched", func(t *testing.T) {
		wallet := &models.Wallet{CashBalance: decimal.NewFromInt(500)}
		ApplyCashLedger(wallet, models.TypeTransfer, decimal.NewFromInt(100))
		if !wallet.CashBalance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("CashBalance = %s, want 500", wallet.CashBalance)
		}
	})
}

func TestApplyRewardLedger(t *testing.T) {
	params := testRewardParams()

	t.Run("expense cashback", func(t *testing.T) {
		wallet := &models.Wallet{
			NeoCoins:         decimal.NewFromInt(100),
			RewardMultiplier: decimal.NewFromInt(1),
		}
		coins := ApplyRewardLedger(wallet, models.TypeExpense, decimal.NewFromInt(2000), params)
		if !coins.Equal(decimal.NewFromInt(20)) {
			t.Errorf("coins = %s, want 20", coins)
		}
		if !wallet.NeoCoins.Equal(decimal.NewFromInt(120)) {
			t.Errorf("NeoCoins = %s, want 120", wallet.NeoCoins)
		}
	})

	t.Run("income flat rate", func(t *testing.T) {
		wallet := &models.Wallet{RewardMultiplier: decimal.NewFromInt(1)}
		coins := ApplyRewardLedger(wallet, models.TypeIncome, decimal.NewFromInt(60000), params)
		if !coins.Equal(decimal.NewFromInt(600)) {
			t.Errorf("coins = %s, want 600", coins)
		}
	})

	t.Run("transfer grants nothing", func(t *testing.T) {
		wallet := &models.Wallet{NeoCoins: decimal.NewFromInt(50)}
		coins := ApplyRewardLedger(wallet, models.TypeTransfer, decimal.NewFromInt(1000), params)
		if !coins.IsZero() {
			t.Errorf("coins = %s, want 0", coins)
		}
		if !wallet.NeoCoins.Equal(decimal.NewFromInt(50)) {
			t.Errorf("NeoCoins = %s, want 50", wallet.NeoCoins)
		}
	})
}

// A 2000 expense must move both ledgers together: cash down 2000, spent
// up 2000, and a 20 coin cashback.
func TestLedgersForExpense(t *testing.T) {
	params := testRewardParams()
	wallet := &models.Wallet{
		NeoCoins:         decimal.NewFromInt(100),
		CashBalance:      decimal.NewFromInt(10000),
		RewardMultiplier: decimal.NewFromInt(1),
	}

	magnitude := decimal.NewFromInt(2000)
	ApplyCashLedger(wallet, models.TypeExpense, magnitude)
	coins := ApplyRewardLedger(wallet, models.TypeExpense, magnitude, params)

	if !wallet.CashBalance.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("CashBalance = %s, want 8000", wallet.CashBalance)
	}
	if !wallet.TotalSpent.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("TotalSpent = %s, want 2000", wallet.TotalSpent)
	}
	if !coins.Equal(decimal.NewFromInt(20)) {
		t.Errorf("cashback = %s, want 20", coins)
	}
	if !wallet.NeoCoins.Equal(decimal.NewFromInt(120)) {
		t.Errorf("NeoCoins = %s, want 120", wallet.NeoCoins)
	}
}

func TestToWalletResponse(t *testing.T) {
	rewardedAt := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	wallet := &models.Wallet{
		NeoCoins:         decimal.NewFromInt(120),
		CashBalance:      decimal.NewFromInt(8000),
		TotalEarned:      decimal.NewFromInt(100),
		TotalSpent:       decimal.NewFromInt(2000),
		RewardMultiplier: decimal.NewFromInt(1),
		LastRewardDate:   &rewardedAt,
	}

	resp := ToWalletResponse(wallet)
	if resp.NeoCoins != 120 {
		t.Errorf("NeoCoins = %v, want 120", resp.NeoCoins)
	}
	if resp.LastRewardDate != "2025-08-20T09:00:00Z" {
		t.Errorf("LastRewardDate = %q, want 2025-08-20T09:00:00Z", resp.LastRewardDate)
	}

	wallet.LastRewardDate = nil
	resp = ToWalletResponse(wallet)
	if resp.LastRewardDate != "" {
		t.Errorf("LastRewardDate = %q, want empty", resp.LastRewardDate)
	}
}
