package repository

import (
	"context"
	"encoding/json"

	"neowealth/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var goalColumns = []string{
	"id", "user_id", "title", "description", "target_amount", "current_amount",
	"target_date", "category", "priority", "status", "last_optimization",
	"created_at", "updated_at",
}

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	opt, err := marshalOptimization(goal.LastOptimization)
	if err != nil {
		return err
	}

	query := squirrel.Insert("goals").
		Columns(goalColumns...).
		Values(goal.ID, goal.UserID, goal.Title, goal.Description, goal.TargetAmount,
			goal.CurrentAmount, goal.TargetDate, goal.Category, goal.Priority, goal.Status,
			opt, goal.CreatedAt, goal.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
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

	return scanGoal(rows)
}

// ListByUser returns the user's goals; status "" means all statuses.
// Ordered high-priority first, then newest.
func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID, status models.GoalStatus) ([]*models.Goal, error) {
	where := squirrel.And{squirrel.Eq{"user_id": userID}}
	if status != "" {
		where = append(where, squirrel.Eq{"status": status})
	}

	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(where).
		OrderBy("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END", "created_at DESC").
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

	var goals []*models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	opt, err := marshalOptimization(goal.LastOptimization)
	if err != nil {
		return err
	}

	query := squirrel.Update("goals").
		Set("title", goal.Title).
		Set("description", goal.Description).
		Set("target_amount", goal.TargetAmount).
		Set("current_amount", goal.CurrentAmount).
		Set("target_date", goal.TargetDate).
		Set("category", goal.Category).
		Set("priority", goal.Priority).
		Set("status", goal.Status).
		Set("last_optimization", opt).
		Set("updated_at", goal.UpdatedAt).
		Where(squirrel.Eq{"id": goal.ID, "user_id": goal.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("goals").
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

func scanGoal(rows pgx.Rows) (*models.Goal, error) {
	var goal models.Goal
	var opt []byte
	err := rows.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.TargetAmount,
		&goal.CurrentAmount, &goal.TargetDate, &goal.Category, &goal.Priority, &goal.Status,
		&opt, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(opt) > 0 {
		var last models.LastOptimization
		if err := json.Unmarshal(opt, &last); err != nil {
			return nil, err
		}
		goal.LastOptimization = &last
	}

	return &goal, nil
}

func marshalOptimization(opt *models.LastOptimization) ([]byte, error) {
	if opt == nil {
		return nil, nil
	}
	return json.Marshal(opt)
}
