package postgres

import (
	"context"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"

	"github.com/lib/pq"
)

const challengeColumns = `id, title, description, start_date, end_date, status, bonus_points, target_count,
	void_reason, published_at, voided_at, ended_at, created_at`

type challengeRepository struct {
	db DBTX
}

func NewChallengeRepository(db DBTX) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

func scanChallenge(row rowScanner) (*domain.Challenge, error) {
	c := &domain.Challenge{}
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.StartDate, &c.EndDate, &c.Status, &c.BonusPoints,
		&c.TargetCount, &c.VoidReason, &c.PublishedAt, &c.VoidedAt, &c.EndedAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *challengeRepository) Create(ctx context.Context, c *domain.Challenge) error {
	query := `INSERT INTO challenges (title, description, start_date, end_date, status, bonus_points, target_count)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	logger.DatabaseCall("INSERT", "challenges", "title", c.Title)
	return r.db.QueryRowContext(ctx, query, c.Title, c.Description, c.StartDate, c.EndDate, c.Status,
		c.BonusPoints, c.TargetCount).Scan(&c.ID, &c.CreatedAt)
}

func (r *challengeRepository) GetByID(ctx context.Context, id int32) (*domain.Challenge, error) {
	c, err := scanChallenge(r.db.QueryRowContext(ctx, `SELECT `+challengeColumns+` FROM challenges WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *challengeRepository) GetForUpdate(ctx context.Context, id int32) (*domain.Challenge, error) {
	c, err := scanChallenge(r.db.QueryRowContext(ctx, `SELECT `+challengeColumns+` FROM challenges WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *challengeRepository) Update(ctx context.Context, c *domain.Challenge) error {
	query := `UPDATE challenges SET title=$1, description=$2, start_date=$3, end_date=$4, status=$5, bonus_points=$6,
	          target_count=$7, void_reason=$8, published_at=$9, voided_at=$10, ended_at=$11 WHERE id=$12`
	logger.DatabaseCall("UPDATE", "challenges", "id", c.ID, "status", c.Status)
	return expectOne(r.db.ExecContext(ctx, query, c.Title, c.Description, c.StartDate, c.EndDate, c.Status,
		c.BonusPoints, c.TargetCount, c.VoidReason, c.PublishedAt, c.VoidedAt, c.EndedAt, c.ID))
}

func (r *challengeRepository) Delete(ctx context.Context, id int32) error {
	logger.DatabaseCall("DELETE", "challenges", "id", id)
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1 AND status = 'pending'`, id))
}

func (r *challengeRepository) List(ctx context.Context, f domain.ChallengeFilter) ([]domain.Challenge, int32, error) {
	w := &whereBuilder{}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		w.where("status = ANY(%s)", pq.Array(statuses))
	}
	if f.Search != "" {
		w.where("(title ILIKE %s OR description ILIKE %s)", likePattern(f.Search), likePattern(f.Search))
	}
	if !f.IncludeArchived {
		w.where("(void_reason IS NULL OR POSITION(%s IN void_reason) = 0)", domain.ArchiveMarker)
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM challenges`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + challengeColumns + ` FROM challenges` + w.String() + ` ORDER BY start_date ASC, id ASC`
	query += w.page(f.Page, f.PageSize)
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, 0, err
		}
		challenges = append(challenges, *c)
	}
	return challenges, total, rows.Err()
}
