package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newTestClassifier() *ClassifierService {
	return NewClassifierService(zap.NewNop())
}

func TestClassify(t *testing.T) {
	classifier := newTestClassifier()

	tests := []struct {
		name           string
		text           string
		amount         int64
		wantCategory   string
		wantConfidence float64
	}{
		{
			name:           "salary credit",
			text:           "Salary credited to your account",
			amount:         45000,
			wantCategory:   "income",
			wantConfidence: 0.85,
		},
		{
			name:           "large amount forces income",
			text:           "NEFT transfer received",
			amount:         60000,
			wantCategory:   "income",
			wantConfidence: 0.85,
		},
		{
			name:           "sparse keywords fall back to other",
			text:           "Rs 450 spent at Dominos Pizza",
			amount:         450,
			wantCategory:   "other",
			wantConfidence: 0.6,
		},
		{
			name:           "no keywords",
			text:           "Miscellaneous payment",
			amount:         200,
			wantCategory:   "other",
			wantConfidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.Classify(tt.text, decimal.NewFromInt(tt.amount), "HDFCBK")
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.Sender != "HDFCBK" {
				t.Errorf("Sender = %q, want HDFCBK", got.Sender)
			}
		})
	}
}

func TestClassifyEmptyText(t *testing.T) {
	classifier := newTestClassifier()

	_, err := classifier.Classify("   ", decimal.NewFromInt(100), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Classify() error = %v, want ErrInvalidInput", err)
	}
}

func TestClassifySalarySubcategory(t *testing.T) {
	classifier := newTestClassifier()

	got, err := classifier.Classify("Salary credited", decimal.NewFromInt(55000), "")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Subcategory != "salary" {
		t.Errorf("Subcategory = %q, want salary", got.Subcategory)
	}

	got, err = classifier.Classify("Refund credited to account", decimal.NewFromInt(500), "")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Subcategory != "other_income" {
		t.Errorf("Subcategory = %q, want other_income", got.Subcategory)
	}
}

func TestAssessRiskLevel(t *testing.T) {
	classifier := newTestClassifier()

	tests := []struct {
		category string
		amount   int64
		want     string
	}{
		{"food", 1499, "low"},
		{"food", 1500, "medium"},
		{"food", 3000, "high"},
		{"shopping", 2999, "low"},
		{"shopping", 8000, "high"},
		{"healthcare", 14999, "medium"},
		{"unknown-category", 1999, "low"},
		{"unknown-category", 2000, "medium"},
		{"unknown-category", 10000, "high"},
	}

	for _, tt := range tests {
		got := classifier.AssessRiskLevel(tt.category, decimal.NewFromInt(tt.amount))
		if got != tt.want {
			t.Errorf("AssessRiskLevel(%q, %d) = %q, want %q", tt.category, tt.amount, got, tt.want)
		}
	}
}

func TestAssessRiskLevelNegativeAmount(t *testing.T) {
	classifier := newTestClassifier()

	if got := classifier.AssessRiskLevel("food", decimal.NewFromInt(-3000)); got != "high" {
		t.Errorf("AssessRiskLevel with negative amount = %q, want high", got)
	}
}

func TestSuggestionsFor(t *testing.T) {
	classifier := newTestClassifier()

	// Categories with three base suggestions stay capped at three even for
	// high-value amounts.
	got := classifier.SuggestionsFor("food", decimal.NewFromInt(6000))
	if len(got) != 3 {
		t.Fatalf("SuggestionsFor(food) returned %d suggestions, want 3", len(got))
	}

	// A category without a base list gets the generic nudge plus the
	// high-value warning.
	got = classifier.SuggestionsFor("investment", decimal.NewFromInt(6000))
	if len(got) != 2 {
		t.Fatalf("SuggestionsFor(investment, high value) returned %d suggestions, want 2", len(got))
	}

	got = classifier.SuggestionsFor("investment", decimal.NewFromInt(100))
	if len(got) != 1 {
		t.Fatalf("SuggestionsFor(investment, low value) returned %d suggestions, want 1", len(got))
	}
}

func TestExtractFromFreeText(t *testing.T) {
	classifier := newTestClassifier()

	t.Run("debit with merchant", func(t *testing.T) {
		got := classifier.ExtractFromFreeText("Rs.450 debited at Dominos on 12-08-25")
		if got == nil {
			t.Fatal("ExtractFromFreeText() = nil, want transaction")
		}
		if got.Type != "debit" {
			t.Errorf("Type = %q, want debit", got.Type)
		}
		if !got.Amount.Equal(decimal.NewFromInt(-450)) {
			t.Errorf("Amount = %s, want -450", got.Amount)
		}
		if got.Description != "Dominos" {
			t.Errorf("Description = %q, want Dominos", got.Description)
		}
	})

	t.Run("credit with UPI", func(t *testing.T) {
		got := classifier.ExtractFromFreeText("INR 5,000.00 credited to a/c via UPI")
		if got == nil {
			t.Fatal("ExtractFromFreeText() = nil, want transaction")
		}
		if got.Type != "credit" {
			t.Errorf("Type = %q, want credit", got.Type)
		}
		if !got.Amount.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("Amount = %s, want 5000", got.Amount)
		}
		if got.Method != "UPI" {
			t.Errorf("Method = %q, want UPI", got.Method)
		}
	})

	t.Run("card payment", func(t *testing.T) {
		got := classifier.ExtractFromFreeText("Rs 1200 debited from card ending 4321")
		if got == nil {
			t.Fatal("ExtractFromFreeText() = nil, want transaction")
		}
		if got.Method != "Card" {
			t.Errorf("Method = %q, want Card", got.Method)
		}
	})

	t.Run("no amount", func(t *testing.T) {
		if got := classifier.ExtractFromFreeText("Your OTP is 123456"); got != nil {
			t.Errorf("ExtractFromFreeText() = %+v, want nil", got)
		}
	})

	t.Run("empty message", func(t *testing.T) {
		if got := classifier.ExtractFromFreeText(""); got != nil {
			t.Errorf("ExtractFromFreeText() = %+v, want nil", got)
		}
	})
}

func TestIsDebitText(t *testing.T) {
	classifier := newTestClassifier()

	if !classifier.IsDebitText("Rs 100 debited from your account") {
		t.Error("IsDebitText(debited) = false, want true")
	}
	if classifier.IsDebitText("Rs 100 credited to your account") {
		t.Error("IsDebitText(credited) = true, want false")
	}
}
