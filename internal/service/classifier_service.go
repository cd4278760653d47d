package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// categoryPattern is one row of the keyword classifier. Categories are
// evaluated in the fixed order of categoryPatterns; on equal scores the
// earliest category wins.
type categoryPattern struct {
	category   string
	keywords   []string
	confidence float64
}

var categoryPatterns = []categoryPattern{
	{"food", []string{"zomato", "swiggy", "food", "restaurant", "cafe", "dominos", "pizza", "burger", "kfc", "mcdonalds"}, 0.95},
	{"transport", []string{"uber", "ola", "metro", "petrol", "fuel", "parking", "taxi", "bus", "train"}, 0.9},
	{"shopping", []string{"amazon", "flipkart", "myntra", "shopping", "purchase", "buy", "order"}, 0.85},
	{"entertainment", []string{"netflix", "spotify", "movie", "cinema", "game", "youtube", "prime"}, 0.9},
	{"utilities", []string{"electricity", "water", "gas", "internet", "mobile", "recharge", "bill"}, 0.95},
	{"healthcare", []string{"hospital", "medical", "pharmacy", "doctor", "medicine", "clinic"}, 0.9},
	{"investment", []string{"sip", "mutual fund", "stock", "investment", "zerodha", "groww", "equity"}, 0.95},
	{"income", []string{"salary", "credited", "bonus", "refund", "cashback"}, 0.8},
}

type subcategoryPattern struct {
	subcategory string
	keywords    []string
}

var subcategoryPatterns = map[string][]subcategoryPattern{
	"food": {
		{"delivery", []string{"zomato", "swiggy", "delivery"}},
		{"dining", []string{"restaurant", "cafe", "dine"}},
		{"groceries", []string{"grocery", "supermarket", "vegetables"}},
	},
	"transport": {
		{"rideshare", []string{"uber", "ola", "taxi"}},
		{"fuel", []string{"petrol", "diesel", "fuel"}},
		{"public", []string{"metro", "bus", "train"}},
	},
	"shopping": {
		{"online", []string{"amazon", "flipkart", "myntra"}},
		{"clothing", []string{"clothes", "shirt", "dress"}},
		{"electronics", []string{"mobile", "laptop", "gadget"}},
	},
	"entertainment": {
		{"streaming", []string{"netflix", "spotify", "prime"}},
		{"movies", []string{"cinema", "movie", "film"}},
		{"gaming", []string{"game", "gaming", "xbox"}},
	},
	"utilities": {
		{"electricity", []string{"electricity", "power"}},
		{"internet", []string{"internet", "wifi", "broadband"}},
		{"mobile", []string{"mobile", "phone", "recharge"}},
	},
}

type riskThreshold struct {
	medium decimal.Decimal
	high   decimal.Decimal
}

var riskThresholds = map[string]riskThreshold{
	"food":          {decimal.NewFromInt(1500), decimal.NewFromInt(3000)},
	"shopping":      {decimal.NewFromInt(3000), decimal.NewFromInt(8000)},
	"entertainment": {decimal.NewFromInt(1000), decimal.NewFromInt(3000)},
	"transport":     {decimal.NewFromInt(2000), decimal.NewFromInt(5000)},
	"utilities":     {decimal.NewFromInt(3000), decimal.NewFromInt(6000)},
	"healthcare":    {decimal.NewFromInt(5000), decimal.NewFromInt(15000)},
	"other":         {decimal.NewFromInt(2000), decimal.NewFromInt(10000)},
}

var categorySuggestions = map[string][]string{
	"food": {
		"Cook at home 3 days this week to save ₹800+",
		"Use food delivery discount codes",
		"Try bulk cooking on weekends",
	},
	"shopping": {
		"Wait 24 hours before buying items over ₹1000",
		"Compare prices on multiple platforms",
		"Check for cashback offers before purchasing",
	},
	"entertainment": {
		"Share streaming subscriptions with family",
		"Look for free events in your city",
		"Set a monthly entertainment budget of ₹2000",
	},
	"transport": {
		"Use public transport to save ₹500/week",
		"Carpool with colleagues",
		"Plan multiple errands in one trip",
	},
	"utilities": {
		"Switch to energy-efficient appliances",
		"Monitor usage to avoid bill spikes",
		"Set up auto-pay to avoid late fees",
	},
	"healthcare": {
		"Keep all medical receipts for tax benefits",
		"Consider health insurance coverage",
		"Use generic medicines when possible",
	},
}

var categoryTags = map[string][]string{
	"food":          {"dining", "meal", "hunger"},
	"transport":     {"travel", "commute", "mobility"},
	"shopping":      {"purchase", "retail", "goods"},
	"entertainment": {"leisure", "fun", "relaxation"},
	"utilities":     {"essential", "bills", "services"},
	"healthcare":    {"medical", "wellness", "health"},
	"investment":    {"wealth", "growth", "future"},
	"income":        {"earnings", "money", "salary"},
}

var categoryLabels = map[string]string{
	"food":          "Food & Dining",
	"transport":     "Transportation",
	"shopping":      "Shopping",
	"entertainment": "Entertainment",
	"utilities":     "Utilities",
	"healthcare":    "Healthcare",
	"investment":    "Investment",
	"income":        "Income",
	"other":         "Other",
}

// incomeOverrideThreshold forces category=income for very large amounts
// even without a keyword hit.
var incomeOverrideThreshold = decimal.NewFromInt(50000)

// highValueThreshold appends the high-value suggestion.
var highValueThreshold = decimal.NewFromInt(5000)

// Amount patterns are tried in priority order; the first match wins.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:,\d+)*(?:\.\d{2})?)\s*(?:rs\.?|inr|₹)`),
	regexp.MustCompile(`(?i)amount\s*(?:rs\.?|inr|₹)?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)debited\s*(?:rs\.?|inr|₹)?\s*(\d+(?:,\d+)*(?:\.\d{2})?)`),
}

var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)at\s+(\S+(?:\s+\S+)*?)\s+on`),
	regexp.MustCompile(`(?i)to\s+(\S+(?:\s+\S+)*?)\s+on`),
	regexp.MustCompile(`(?i)for\s+(\S+(?:\s+\S+)*?)\s+on`),
}

var (
	debitKeywords  = []string{"debited", "spent", "paid"}
	creditKeywords = []string{"credited", "received", "deposited"}
	upiPattern     = regexp.MustCompile(`(?i)upi|paytm|phonepe|googlepay|bhim`)
	cardPattern    = regexp.MustCompile(`(?i)card\s*(?:ending\s*)?\d{4}`)
)

// Classification is the classifier's verdict on a single transaction.
type Classification struct {
	Category    string
	Subcategory string
	Confidence  float64
	Description string
	Tags        []string
	RiskLevel   string
	Suggestions []string
	Sender      string
}

// ExtractedTransaction is the best-effort parse of a bank notification.
// Amount is signed: credits positive, debits negative.
type ExtractedTransaction struct {
	Amount      decimal.Decimal
	Description string
	Type        string
	Method      string
	Date        time.Time
}

// ClassifierService maps free-text transaction descriptions to categories
// via keyword density. It holds no state and performs no I/O.
type ClassifierService struct {
	logger *zap.Logger
}

func NewClassifierService(logger *zap.Logger) *ClassifierService {
	return &ClassifierService{logger: logger}
}

var ErrEmptyText = fmt.Errorf("%w: transaction text is required", ErrInvalidInput)

// Classify scores text against every category pattern and returns the
// best match, starting from a floor of {other, 0.6}.
func (s *ClassifierService) Classify(text string, amount decimal.Decimal, sender string) (*Classification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	normalized := strings.ToLower(strings.TrimSpace(text))

	bestCategory := "other"
	bestConfidence := 0.6

	for _, pattern := range categoryPatterns {
		matchCount := 0
		for _, keyword := range pattern.keywords {
			if strings.Contains(normalized, keyword) {
				matchCount++
			}
		}
		if matchCount == 0 {
			continue
		}
		matchConfidence := pattern.confidence * (float64(matchCount) / float64(len(pattern.keywords)))
		if matchConfidence > bestConfidence {
			bestCategory = pattern.category
			bestConfidence = matchConfidence
		}
	}

	subcategory := s.subcategoryFor(normalized, bestCategory)

	// Income override beats any keyword match: explicit credit wording or
	// a very large amount means money coming in.
	if strings.Contains(normalized, "credited") || strings.Contains(normalized, "salary") || amount.GreaterThan(incomeOverrideThreshold) {
		bestCategory = "income"
		if strings.Contains(normalized, "salary") {
			subcategory = "salary"
		} else {
			subcategory = "other_income"
		}
		bestConfidence = 0.85
	}

	if sender == "" {
		sender = "unknown"
	}

	return &Classification{
		Category:    bestCategory,
		Subcategory: subcategory,
		Confidence:  math.Round(bestConfidence*100) / 100,
		Description: s.describe(bestCategory, subcategory, amount),
		Tags:        s.tagsFor(bestCategory),
		RiskLevel:   s.AssessRiskLevel(bestCategory, amount),
		Suggestions: s.SuggestionsFor(bestCategory, amount),
		Sender:      sender,
	}, nil
}

func (s *ClassifierService) subcategoryFor(text, category string) string {
	for _, pattern := range subcategoryPatterns[category] {
		for _, keyword := range pattern.keywords {
			if strings.Contains(text, keyword) {
				return pattern.subcategory
			}
		}
	}
	return ""
}

// AssessRiskLevel grades the amount against the category's two-threshold
// table, falling back to the "other" thresholds.
func (s *ClassifierService) AssessRiskLevel(category string, amount decimal.Decimal) string {
	thresholds, ok := riskThresholds[category]
	if !ok {
		thresholds = riskThresholds["other"]
	}

	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(thresholds.high):
		return "high"
	case abs.GreaterThanOrEqual(thresholds.medium):
		return "medium"
	default:
		return "low"
	}
}

// SuggestionsFor returns at most three nudges for the category. A
// high-value warning is appended before capping, so it only surfaces for
// categories with short base lists.
func (s *ClassifierService) SuggestionsFor(category string, amount decimal.Decimal) []string {
	base, ok := categorySuggestions[category]
	if !ok {
		base = []string{"Track this expense for better budgeting"}
	}

	suggestions := make([]string, len(base))
	copy(suggestions, base)

	if amount.Abs().GreaterThan(highValueThreshold) {
		suggestions = append(suggestions, "This is a high-value transaction - consider if it aligns with your goals")
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

func (s *ClassifierService) tagsFor(category string) []string {
	if tags, ok := categoryTags[category]; ok {
		out := make([]string, len(tags))
		copy(out, tags)
		return out
	}
	return []string{"expense"}
}

func (s *ClassifierService) describe(category, subcategory string, amount decimal.Decimal) string {
	label, ok := categoryLabels[category]
	if !ok {
		label = "Transaction"
	}
	if subcategory != "" {
		label += " (" + strings.ReplaceAll(subcategory, "_", " ") + ")"
	}
	return fmt.Sprintf("%s of ₹%s", label, amount.Abs().String())
}

// ExtractFromFreeText parses a bank SMS/notification into a transaction.
// Returns nil when no amount can be found; partial matches are expected.
func (s *ClassifierService) ExtractFromFreeText(message string) *ExtractedTransaction {
	if strings.TrimSpace(message) == "" {
		return nil
	}

	var amount decimal.Decimal
	found := false
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		amount = parsed
		found = true
		break
	}
	if !found {
		return nil
	}

	normalized := strings.ToLower(message)
	isCredit := containsAny(normalized, creditKeywords)

	description := message
	for _, pattern := range merchantPatterns {
		if match := pattern.FindStringSubmatch(message); match != nil {
			description = strings.TrimSpace(match[1])
			break
		}
	}
	if len(description) > 100 {
		description = description[:100]
	}

	method := ""
	if upiPattern.MatchString(normalized) {
		method = "UPI"
	} else if cardPattern.MatchString(normalized) {
		method = "Card"
	}

	txType := "debit"
	signed := amount.Neg()
	if isCredit {
		txType = "credit"
		signed = amount
	}

	return &ExtractedTransaction{
		Amount:      signed,
		Description: description,
		Type:        txType,
		Method:      method,
		Date:        time.Now().UTC(),
	}
}

// IsDebitText reports whether the message carries explicit debit wording.
func (s *ClassifierService) IsDebitText(message string) bool {
	return containsAny(strings.ToLower(message), debitKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
