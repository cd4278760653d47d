package repository

import (
	"context"
	"time"

	"neowealth/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "user_id", "type", "category", "amount", "description", "date",
	"tags", "confidence", "risk_level", "merchant", "created_at", "updated_at",
}

// DefaultPageSize applies when a list request does not set a limit.
const DefaultPageSize = 20

// TransactionFilter narrows List results. Zero values mean "no filter".
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate time.Time
	EndDate   time.Time
	Page      int
	Limit     int
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, q Querier, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.Type, tx.Category, tx.Amount, tx.Description, tx.Date,
			tx.Tags, tx.Confidence, tx.RiskLevel, tx.Merchant, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}

	return scanTransaction(rows)
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("type", tx.Type).
		Set("category", tx.Category).
		Set("amount", tx.Amount).
		Set("description", tx.Description).
		Set("date", tx.Date).
		Set("tags", tx.Tags).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID, "user_id": tx.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List returns a page of transactions newest-first plus the unpaged total.
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*models.Transaction, int, error) {
	where := squirrel.And{squirrel.Eq{"user_id": userID}}
	if filter.Type != "" {
		where = append(where, squirrel.Eq{"type": filter.Type})
	}
	if filter.Category != "" {
		where = append(where, squirrel.Eq{"category": filter.Category})
	}
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
		where = append(where, squirrel.GtOrEq{"date": filter.StartDate}, squirrel.LtOrEq{"date": filter.EndDate})
	}

	countQuery := squirrel.Select("COUNT(*)").From("transactions").Where(where).PlaceholderFormat(squirrel.Dollar)
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(where).
		OrderBy("date DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return nil, 0, err
	}

	transactions, err := r.queryMany(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// ListSince returns all of a user's transactions created at or after the
// cutoff, newest-first. Used by the insight and decision engines.
func (r *TransactionRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.And{
			squirrel.Eq{"user_id": userID},
			squirrel.GtOrEq{"created_at": since},
		}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryMany(ctx, sql, args)
}

// ListBetween returns transactions created in [from, to).
func (r *TransactionRepository) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.And{
			squirrel.Eq{"user_id": userID},
			squirrel.GtOrEq{"created_at": from},
			squirrel.Lt{"created_at": to},
		}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryMany(ctx, sql, args)
}

func (r *TransactionRepository) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(squirrel.And{
			squirrel.Eq{"user_id": userID},
			squirrel.GtOrEq{"created_at": since},
		}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	return count, err
}

func (r *TransactionRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryMany(ctx, sql, args)
}

func (r *TransactionRepository) queryMany(ctx context.Context, sql string, args []interface{}) ([]*models.Transaction, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(rows pgx.Rows) (*models.Transaction, error) {
	var tx models.Transaction
	err := rows.Scan(
		&tx.ID, &tx.UserID, &tx.Type, &tx.Category, &tx.Amount, &tx.Description, &tx.Date,
		&tx.Tags, &tx.Confidence, &tx.RiskLevel, &tx.Merchant, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
