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

const defaultHiveSize = 15

// hiveCapacity resolves the member limit for a new hive.
func hiveCapacity(requested int) int {
	if requested <= 0 {
		return defaultHiveSize
	}
	return requested
}

// newHiveMember builds a membership record. Consistency starts at a
// perfect 1.0 on the 0-1 scale.
func newHiveMember(userID, hiveID uuid.UUID, role models.MemberRole, contribution decimal.Decimal, now time.Time) *models.HiveMember {
	return &models.HiveMember{
		ID:                  uuid.New(),
		UserID:              userID,
		HiveID:              hiveID,
		Role:                role,
		MonthlyContribution: contribution,
		Status:              models.MemberActive,
		ConsistencyScore:    decimal.NewFromInt(1),
		JoinedAt:            now,
		UpdatedAt:           now,
	}
}

// HiveService coordinates group savings pools. Membership writes and the
// hive's member counter always move together inside one transaction, with
// the hive row locked first.
type HiveService struct {
	db       *pgxpool.Pool
	hiveRepo *repository.HiveRepository
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewHiveService(db *pgxpool.Pool, hiveRepo *repository.HiveRepository, userRepo *repository.UserRepository, logger *zap.Logger) *HiveService {
	return &HiveService{
		db:       db,
		hiveRepo: hiveRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create opens a new hive with the creator as its admin member.
func (s *HiveService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateHiveRequest) (*models.Hive, error) {
	target := decimal.NewFromFloat(req.TargetAmount)
	contribution := decimal.NewFromFloat(req.MonthlyContribution)
	if !target.IsPositive() || !contribution.IsPositive() {
		return nil, fmt.Errorf("%w: target and contribution must be positive", ErrInvalidInput)
	}

	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
		}
	}

	riskLevel := models.RiskTolerance(req.RiskLevel)
	if riskLevel == "" {
		riskLevel = models.RiskMedium
	}

	now := time.Now().UTC()
	hive := &models.Hive{
		ID:                  uuid.New(),
		Name:                req.Name,
		Description:         req.Description,
		MaxMembers:          hiveCapacity(req.MaxMembers),
		CurrentMembers:      1,
		GoalType:            models.GoalCategory(req.GoalType),
		TargetAmount:        target,
		RiskLevel:           riskLevel,
		MonthlyContribution: contribution,
		Status:              models.HiveActive,
		EndDate:             endDate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	member := newHiveMember(userID, hive.ID, models.RoleAdmin, contribution, now)

	err = repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.hiveRepo.GetActiveMembership(ctx, tx, userID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if err := s.hiveRepo.Create(ctx, tx, hive); err != nil {
			return err
		}
		return s.hiveRepo.CreateMember(ctx, tx, member)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Hive created",
		zap.String("hive_id", hive.ID.String()),
		zap.String("creator_id", userID.String()))
	return hive, nil
}

func (s *HiveService) Get(ctx context.Context, id uuid.UUID) (*models.Hive, error) {
	hive, err := s.hiveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return hive, nil
}

func (s *HiveService) ListActive(ctx context.Context) ([]*models.Hive, error) {
	return s.hiveRepo.ListActive(ctx)
}

// Join adds the user to a hive. The hive row is locked for the capacity
// check so concurrent joins cannot overfill it.
func (s *HiveService) Join(ctx context.Context, userID, hiveID uuid.UUID, contribution decimal.Decimal) (*models.HiveMember, error) {
	if !contribution.IsPositive() {
		return nil, fmt.Errorf("%w: contribution must be positive", ErrInvalidInput)
	}

	now := time.Now().UTC()
	member := newHiveMember(userID, hiveID, models.RoleMember, contribution, now)

	err := repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.hiveRepo.GetActiveMembership(ctx, tx, userID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		hive, err := s.hiveRepo.GetByIDForUpdate(ctx, tx, hiveID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if hive.Status != models.HiveActive {
			return fmt.Errorf("%w: hive is not active", ErrInvalidInput)
		}
		if hive.CurrentMembers >= hive.MaxMembers {
			return ErrHiveFull
		}

		if err := s.hiveRepo.CreateMember(ctx, tx, member); err != nil {
			return err
		}

		hive.CurrentMembers++
		hive.UpdatedAt = now
		return s.hiveRepo.Update(ctx, tx, hive)
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// Leave marks the membership left and decrements the hive counter in the
// same transaction.
func (s *HiveService) Leave(ctx context.Context, userID uuid.UUID) error {
	now := time.Now().UTC()
	return repository.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		member, err := s.hiveRepo.GetActiveMembership(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		hive, err := s.hiveRepo.GetByIDForUpdate(ctx, tx, member.HiveID)
		if err != nil {
			return err
		}

		member.Status = models.MemberLeft
		member.UpdatedAt = now
		if err := s.hiveRepo.UpdateMember(ctx, tx, member); err != nil {
			return err
		}

		if hive.CurrentMembers > 0 {
			hive.CurrentMembers--
		}
		hive.UpdatedAt = now
		return s.hiveRepo.Update(ctx, tx, hive)
	})
}

func (s *HiveService) Membership(ctx context.Context, userID uuid.UUID) (*models.HiveMember, error) {
	member, err := s.hiveRepo.GetActiveMembership(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return member, nil
}

// HiveProgress computes funding progress and completion projections from
// the active members' pledged contributions.
func HiveProgress(hive *models.Hive, members []*models.HiveMember, now time.Time) *dto.HiveProgressResponse {
	progress := 0.0
	if hive.TargetAmount.IsPositive() {
		progress, _ = hive.CurrentAmount.Div(hive.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
		if progress > 100 {
			progress = 100
		}
	}

	var totalContribution decimal.Decimal
	for _, member := range members {
		totalContribution = totalContribution.Add(member.MonthlyContribution)
	}

	monthsRemaining := 0
	if hive.EndDate.After(now) {
		days := hive.EndDate.Sub(now).Hours() / 24
		monthsRemaining = int(days/30) + 1
	}

	var projected *float64
	if totalContribution.IsPositive() {
		remaining := hive.TargetAmount.Sub(hive.CurrentAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		months, _ := remaining.Div(totalContribution).Float64()
		projected = &months
	}

	return &dto.HiveProgressResponse{
		Hive:                      ToHiveResponse(hive),
		Progress:                  progress,
		MonthsRemaining:           monthsRemaining,
		TotalMonthlyContribution:  totalContribution.InexactFloat64(),
		ProjectedMonthsToComplete: projected,
	}
}

func (s *HiveService) Progress(ctx context.Context, hiveID uuid.UUID) (*dto.HiveProgressResponse, error) {
	hive, err := s.Get(ctx, hiveID)
	if err != nil {
		return nil, err
	}

	members, err := s.hiveRepo.ListActiveMembers(ctx, hiveID)
	if err != nil {
		return nil, err
	}

	return HiveProgress(hive, members, time.Now().UTC()), nil
}

// MatchesHive reports whether a hive suits a user: matching risk level,
// open capacity, and member incomes within 50% of the user's.
func MatchesHive(hive *models.Hive, user *models.User, memberIncomes []decimal.Decimal) bool {
	if hive.Status != models.HiveActive {
		return false
	}
	if hive.CurrentMembers >= hive.MaxMembers {
		return false
	}
	if hive.RiskLevel != user.RiskTolerance {
		return false
	}

	if len(memberIncomes) == 0 {
		return true
	}

	var total decimal.Decimal
	for _, income := range memberIncomes {
		total = total.Add(income)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(memberIncomes))))

	if !user.MonthlyIncome.IsPositive() {
		return !avg.IsPositive()
	}

	half := user.MonthlyIncome.Mul(decimal.NewFromFloat(0.5))
	return avg.Sub(user.MonthlyIncome).Abs().LessThanOrEqual(half)
}

// FindMatch scans active hives newest-first and returns the first one the
// user fits, or nil when nothing matches.
func (s *HiveService) FindMatch(ctx context.Context, userID uuid.UUID) (*models.Hive, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	hives, err := s.hiveRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	for _, hive := range hives {
		members, err := s.hiveRepo.ListActiveMembers(ctx, hive.ID)
		if err != nil {
			return nil, err
		}

		incomes := make([]decimal.Decimal, 0, len(members))
		for _, member := range members {
			memberUser, err := s.userRepo.GetByID(ctx, member.UserID)
			if err != nil {
				s.logger.Warn("Skipping hive member without user record",
					zap.String("member_id", member.ID.String()),
					zap.Error(err))
				continue
			}
			incomes = append(incomes, memberUser.MonthlyIncome)
		}

		if MatchesHive(hive, user, incomes) {
			return hive, nil
		}
	}

	return nil, nil
}

func ToHiveResponse(hive *models.Hive) dto.HiveResponse {
	return dto.HiveResponse{
		ID:                  hive.ID.String(),
		Name:                hive.Name,
		Description:         hive.Description,
		MaxMembers:          hive.MaxMembers,
		CurrentMembers:      hive.CurrentMembers,
		GoalType:            string(hive.GoalType),
		TargetAmount:        hive.TargetAmount.InexactFloat64(),
		CurrentAmount:       hive.CurrentAmount.InexactFloat64(),
		RiskLevel:           string(hive.RiskLevel),
		MonthlyContribution: hive.MonthlyContribution.InexactFloat64(),
		Status:              string(hive.Status),
		EndDate:             hive.EndDate.Format(time.RFC3339),
	}
}

func ToMembershipResponse(member *models.HiveMember) dto.MembershipResponse {
	return dto.MembershipResponse{
		ID:                  member.ID.String(),
		HiveID:              member.HiveID.String(),
		Role:                string(member.Role),
		MonthlyContribution: member.MonthlyContribution.InexactFloat64(),
		TotalContributed:    member.TotalContributed.InexactFloat64(),
		Status:              string(member.Status),
		JoinedAt:            member.JoinedAt.Format(time.RFC3339),
	}
}
