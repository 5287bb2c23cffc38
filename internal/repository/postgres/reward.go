package postgres

import (
	"context"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

const rewardColumns = `id, name, description, points_cost, is_active, total_quantity, created_at`

type rewardRepository struct {
	db DBTX
}

func NewRewardRepository(db DBTX) repository.RewardRepository {
	return &rewardRepository{db: db}
}

func scanReward(row rowScanner) (*domain.Reward, error) {
	rw := &domain.Reward{}
	if err := row.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.PointsCost, &rw.IsActive, &rw.TotalQuantity, &rw.CreatedAt); err != nil {
		return nil, err
	}
	return rw, nil
}

func (r *rewardRepository) Create(ctx context.Context, rw *domain.Reward) error {
	query := `INSERT INTO rewards (name, description, points_cost, is_active, total_quantity) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, rw.Name, rw.Description, rw.PointsCost, rw.IsActive, rw.TotalQuantity).
		Scan(&rw.ID, &rw.CreatedAt)
}

func (r *rewardRepository) GetByID(ctx context.Context, id int32) (*domain.Reward, error) {
	rw, err := scanReward(r.db.QueryRowContext(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rw, nil
}

// GetForUpdate locks the reward row so concurrent redemptions see a stable stock count.
func (r *rewardRepository) GetForUpdate(ctx context.Context, id int32) (*domain.Reward, error) {
	rw, err := scanReward(r.db.QueryRowContext(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rw, nil
}

func (r *rewardRepository) Update(ctx context.Context, rw *domain.Reward) error {
	query := `UPDATE rewards SET name=$1, description=$2, points_cost=$3, is_active=$4, total_quantity=$5 WHERE id=$6`
	return expectOne(r.db.ExecContext(ctx, query, rw.Name, rw.Description, rw.PointsCost, rw.IsActive, rw.TotalQuantity, rw.ID))
}

func (r *rewardRepository) List(ctx context.Context, activeOnly bool) ([]domain.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY points_cost ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.Reward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, *rw)
	}
	return rewards, rows.Err()
}

const redemptionColumns = `rr.id, rr.user_id, rr.reward_id, rr.points_spent, rr.status, rr.expires_at,
	rr.requested_at, rr.updated_at, rw.name`

const redemptionJoin = ` FROM reward_redemptions rr JOIN rewards rw ON rw.id = rr.reward_id`

type redemptionRepository struct {
	db DBTX
}

func NewRedemptionRepository(db DBTX) repository.RedemptionRepository {
	return &redemptionRepository{db: db}
}

func scanRedemption(row rowScanner) (*domain.RewardRedemption, error) {
	rr := &domain.RewardRedemption{}
	err := row.Scan(&rr.ID, &rr.UserID, &rr.RewardID, &rr.PointsSpent, &rr.Status, &rr.ExpiresAt,
		&rr.RequestedAt, &rr.UpdatedAt, &rr.RewardName)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (r *redemptionRepository) Create(ctx context.Context, rr *domain.RewardRedemption) error {
	query := `INSERT INTO reward_redemptions (user_id, reward_id, points_spent, status, expires_at, requested_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now().UTC()
	rr.RequestedAt = now
	rr.UpdatedAt = now
	logger.DatabaseCall("INSERT", "reward_redemptions", "user_id", rr.UserID, "reward_id", rr.RewardID)
	return r.db.QueryRowContext(ctx, query, rr.UserID, rr.RewardID, rr.PointsSpent, rr.Status, rr.ExpiresAt, now).Scan(&rr.ID)
}

func (r *redemptionRepository) GetByID(ctx context.Context, id int32) (*domain.RewardRedemption, error) {
	rr, err := scanRedemption(r.db.QueryRowContext(ctx, `SELECT `+redemptionColumns+redemptionJoin+` WHERE rr.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rr, nil
}

// GetForUpdate locks the redemption row, leaving the reward row unlocked.
func (r *redemptionRepository) GetForUpdate(ctx context.Context, id int32) (*domain.RewardRedemption, error) {
	rr, err := scanRedemption(r.db.QueryRowContext(ctx, `SELECT `+redemptionColumns+redemptionJoin+` WHERE rr.id = $1 FOR UPDATE OF rr`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rr, nil
}

func (r *redemptionRepository) Update(ctx context.Context, rr *domain.RewardRedemption) error {
	rr.UpdatedAt = time.Now().UTC()
	query := `UPDATE reward_redemptions SET status=$1, expires_at=$2, updated_at=$3 WHERE id=$4`
	logger.DatabaseCall("UPDATE", "reward_redemptions", "id", rr.ID, "status", rr.Status)
	return expectOne(r.db.ExecContext(ctx, query, rr.Status, rr.ExpiresAt, rr.UpdatedAt, rr.ID))
}

func (r *redemptionRepository) list(ctx context.Context, query string, args ...any) ([]domain.RewardRedemption, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RewardRedemption
	for rows.Next() {
		rr, err := scanRedemption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rr)
	}
	return out, rows.Err()
}

func (r *redemptionRepository) ListByUser(ctx context.Context, userID int32) ([]domain.RewardRedemption, error) {
	return r.list(ctx, `SELECT `+redemptionColumns+redemptionJoin+` WHERE rr.user_id = $1 ORDER BY rr.requested_at DESC`, userID)
}

func (r *redemptionRepository) List(ctx context.Context, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RewardRedemption, int32, error) {
	w := &whereBuilder{}
	if status != "" {
		w.where("rr.status = %s", status)
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reward_redemptions rr`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + redemptionColumns + redemptionJoin + w.String() + ` ORDER BY rr.requested_at ASC`
	query += w.page(page, pageSize)
	out, err := r.list(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// CountOutstanding counts redemptions that hold stock: requested, approved and redeemed.
func (r *redemptionRepository) CountOutstanding(ctx context.Context, rewardID int32) (int32, error) {
	var n int32
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reward_redemptions WHERE reward_id = $1 AND status IN ('requested', 'approved', 'redeemed')`,
		rewardID).Scan(&n)
	return n, err
}

func (r *redemptionRepository) ListExpired(ctx context.Context, now time.Time) ([]domain.RewardRedemption, error) {
	return r.list(ctx, `SELECT `+redemptionColumns+redemptionJoin+
		` WHERE rr.status = 'approved' AND rr.expires_at IS NOT NULL AND rr.expires_at < $1 ORDER BY rr.expires_at ASC`, now)
}
