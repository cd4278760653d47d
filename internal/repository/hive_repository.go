package repository

import (
	"context"

	"neowealth/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var hiveColumns = []string{
	"id", "name", "description", "max_members", "current_members", "goal_type",
	"target_amount", "current_amount", "risk_level", "monthly_contribution",
	"status", "end_date", "created_at", "updated_at",
}

var memberColumns = []string{
	"id", "user_id", "hive_id", "role", "monthly_contribution", "total_contributed",
	"status", "consistency_score", "joined_at", "updated_at",
}

type HiveRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewHiveRepository(db *pgxpool.Pool, logger *zap.Logger) *HiveRepository {
	return &HiveRepository{
		db:     db,
		logger: logger,
	}
}

func (r *HiveRepository) Create(ctx context.Context, q Querier, hive *models.Hive) error {
	query := squirrel.Insert("hives").
		Columns(hiveColumns...).
		Values(hive.ID, hive.Name, hive.Description, hive.MaxMembers, hive.CurrentMembers,
			hive.GoalType, hive.TargetAmount, hive.CurrentAmount, hive.RiskLevel,
			hive.MonthlyContribution, hive.Status, hive.EndDate, hive.CreatedAt, hive.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *HiveRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Hive, error) {
	return r.getByID(ctx, r.db, id, false)
}

// GetByIDForUpdate locks the hive row so member-count updates serialize
// with concurrent joins and leaves. Must run inside a transaction.
func (r *HiveRepository) GetByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.Hive, error) {
	return r.getByID(ctx, q, id, true)
}

func (r *HiveRepository) getByID(ctx context.Context, q Querier, id uuid.UUID, forUpdate bool) (*models.Hive, error) {
	query := squirrel.Select(hiveColumns...).
		From("hives").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
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

	return scanHive(rows)
}

// ListActive returns active hives newest-first, the candidate order the
// first-fit matcher scans in.
func (r *HiveRepository) ListActive(ctx context.Context) ([]*models.Hive, error) {
	query := squirrel.Select(hiveColumns...).
		From("hives").
		Where(squirrel.Eq{"status": models.HiveActive}).
		OrderBy("created_at DESC").
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

	var hives []*models.Hive
	for rows.Next() {
		hive, err := scanHive(rows)
		if err != nil {
			return nil, err
		}
		hives = append(hives, hive)
	}

	return hives, rows.Err()
}

func (r *HiveRepository) Update(ctx context.Context, q Querier, hive *models.Hive) error {
	query := squirrel.Update("hives").
		Set("current_members", hive.CurrentMembers).
		Set("current_amount", hive.CurrentAmount).
		Set("status", hive.Status).
		Set("updated_at", hive.UpdatedAt).
		Where(squirrel.Eq{"id": hive.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *HiveRepository) CreateMember(ctx context.Context, q Querier, member *models.HiveMember) error {
	query := squirrel.Insert("hive_members").
		Columns(memberColumns...).
		Values(member.ID, member.UserID, member.HiveID, member.Role, member.MonthlyContribution,
			member.TotalContributed, member.Status, member.ConsistencyScore,
			member.JoinedAt, member.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *HiveRepository) UpdateMember(ctx context.Context, q Querier, member *models.HiveMember) error {
	query := squirrel.Update("hive_members").
		Set("monthly_contribution", member.MonthlyContribution).
		Set("total_contributed", member.TotalContributed).
		Set("status", member.Status).
		Set("consistency_score", member.ConsistencyScore).
		Set("updated_at", member.UpdatedAt).
		Where(squirrel.Eq{"id": member.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

// GetActiveMembership returns the user's single active membership, or
// pgx.ErrNoRows when the user is not in any hive.
func (r *HiveRepository) GetActiveMembership(ctx context.Context, q Querier, userID uuid.UUID) (*models.HiveMember, error) {
	query := squirrel.Select(memberColumns...).
		From("hive_members").
		Where(squirrel.Eq{"user_id": userID, "status": models.MemberActive}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql, args...)
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

	return scanMember(rows)
}

func (r *HiveRepository) ListActiveMembers(ctx context.Context, hiveID uuid.UUID) ([]*models.HiveMember, error) {
	query := squirrel.Select(memberColumns...).
		From("hive_members").
		Where(squirrel.Eq{"hive_id": hiveID, "status": models.MemberActive}).
		OrderBy("joined_at ASC").
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

	var members []*models.HiveMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func scanHive(rows pgx.Rows) (*models.Hive, error) {
	var hive models.Hive
	err := rows.Scan(
		&hive.ID, &hive.Name, &hive.Description, &hive.MaxMembers, &hive.CurrentMembers,
		&hive.GoalType, &hive.TargetAmount, &hive.CurrentAmount, &hive.RiskLevel,
		&hive.MonthlyContribution, &hive.Status, &hive.EndDate, &hive.CreatedAt, &hive.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hive, nil
}

func scanMember(rows pgx.Rows) (*models.HiveMember, error) {
	var member models.HiveMember
	err := rows.Scan(
		&member.ID, &member.UserID, &member.HiveID, &member.Role, &member.MonthlyContribution,
		&member.TotalContributed, &member.Status, &member.ConsistencyScore,
		&member.JoinedAt, &member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}
