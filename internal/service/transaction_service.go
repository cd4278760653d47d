package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neowealth/internal/dto"
	"neowealth/internal/models"
	"neowealth/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrNoTransactionInText = fmt.Errorf("%w: no transaction found in message", ErrInvalidInput)

// TransactionService owns the financial transaction history. Creation
// applies the wallet's cash and reward ledgers in the same database
// transaction as the history row; the attached AI classification is
// best-effort and never fails the create.
type TransactionService struct {
	db         *pgxpool.Pool
	txRepo     *repository.TransactionRepository
	walletSvc  *WalletService
	classifier *ClassifierService
	logger     *zap.Logger
}

func NewTransactionService(
	db *pgxpool.Pool,
	txRepo *repository.TransactionRepository,
	walletSvc *WalletService,
	classifier *ClassifierService,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		db:         db,
		txRepo:     txRepo,
		walletSvc:  walletSvc,
		classifier: classifier,
		logger:     logger,
	}
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	txType := models.TransactionType(req.Type)
	switch txType {
	case models.TypeIncome, models.TypeExpense, models.TypeInvestment, models.TypeTransfer:
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, req.Type)
	}

	magnitude := decimal.NewFromFloat(req.Amount).Abs()
	if !magnitude.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if req.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		date = parsed
	}

	// Expenses are stored negative, everything else positive.
	amount := magnitude
	if txType == models.TypeExpense {
		amount = magnitude.Neg()
	}

	now := time.Now().UTC()
	record := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        txType,
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Secondary analysis must never block the create.
	if req.Description != "" {
		if classification, err := s.classifier.Classify(req.Description, magnitude, ""); err == nil {
			record.Confidence = classification.Confidence
			record.RiskLevel = classification.RiskLevel
		} else {
			s.logger.Warn("Classification failed", zap.Error(err))
		}
	}

	err := repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.txRepo.Create(ctx, tx, record); err != nil {
			return err
		}
		return s.walletSvc.ApplyTransaction(ctx, tx, userID, txType, magnitude)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// IngestFreeText parses a bank SMS/notification and, when it contains a
// transaction, records it through the normal create path.
func (s *TransactionService) IngestFreeText(ctx context.Context, userID uuid.UUID, message, sender string) (*models.Transaction, *Classification, error) {
	extracted := s.classifier.ExtractFromFreeText(message)
	if extracted == nil {
		return nil, nil, ErrNoTransactionInText
	}

	classification, err := s.classifier.Classify(message, extracted.Amount.Abs(), sender)
	if err != nil {
		return nil, nil, err
	}

	txType := models.TypeExpense
	if extracted.Type == "credit" {
		txType = models.TypeIncome
	}

	tags := classification.Tags
	if extracted.Method != "" {
		tags = append(tags, extracted.Method)
	}

	req := &dto.CreateTransactionRequest{
		Type:        string(txType),
		Category:    classification.Category,
		Amount:      extracted.Amount.Abs().InexactFloat64(),
		Description: extracted.Description,
		Tags:        tags,
	}

	record, err := s.Create(ctx, userID, req)
	if err != nil {
		return nil, nil, err
	}

	record.Confidence = classification.Confidence
	record.RiskLevel = classification.RiskLevel
	return record, classification, nil
}

func (s *TransactionService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error) {
	record, err := s.txRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]*models.Transaction, int, error) {
	return s.txRepo.List(ctx, userID, filter)
}

func (s *TransactionService) Update(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	record, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Type != "" {
		record.Type = models.TransactionType(req.Type)
	}
	if req.Category != "" {
		record.Category = req.Category
	}
	if req.Amount != nil {
		magnitude := decimal.NewFromFloat(*req.Amount).Abs()
		if !magnitude.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
		}
		if record.Type == models.TypeExpense {
			record.Amount = magnitude.Neg()
		} else {
			record.Amount = magnitude
		}
	}
	if req.Description != "" {
		record.Description = req.Description
	}
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		record.Date = parsed
	}
	if req.Tags != nil {
		record.Tags = req.Tags
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.txRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	err := s.txRepo.Delete(ctx, id, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Analytics aggregates a period of transactions into per-type totals and
// a category breakdown. Expense rows are stored negative; totals report
// absolute values.
func (s *TransactionService) Analytics(ctx context.Context, userID uuid.UUID, period string) (*dto.AnalyticsResponse, error) {
	since, err := periodStart(period, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	return SummarizeTransactions(transactions, period), nil
}

// SummarizeTransactions is the pure aggregation over a window.
func SummarizeTransactions(transactions []*models.Transaction, period string) *dto.AnalyticsResponse {
	var income, expenses, investments decimal.Decimal
	breakdown := make(map[string]float64)

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
		breakdown[tx.Category] += abs.InexactFloat64()
	}

	return &dto.AnalyticsResponse{
		TotalIncome:       income.InexactFloat64(),
		TotalExpenses:     expenses.InexactFloat64(),
		TotalInvestments:  investments.InexactFloat64(),
		NetSavings:        income.Sub(expenses).InexactFloat64(),
		CategoryBreakdown: breakdown,
		TransactionCount:  len(transactions),
		Period:            period,
	}
}

// RewardHistory lists the user's reward transactions, paginated.
func (s *TransactionService) RewardHistory(ctx context.Context, userID uuid.UUID, page, limit int) ([]*models.Transaction, int, error) {
	return s.txRepo.List(ctx, userID, repository.TransactionFilter{
		Category: models.CategoryRewards,
		Page:     page,
		Limit:    limit,
	})
}

func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "", "month":
		return now.AddDate(0, -1, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}
}

func ToTransactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Amount:      tx.Amount.InexactFloat64(),
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
		Tags:        tx.Tags,
		Confidence:  tx.Confidence,
		RiskLevel:   tx.RiskLevel,
		Merchant:    tx.Merchant,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}
