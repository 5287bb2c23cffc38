package postgres

import (
	"context"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

type pointsRepository struct {
	db DBTX
}

func NewPointsRepository(db DBTX) repository.PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) CreateTransaction(ctx context.Context, t *domain.PointsTransaction) error {
	query := `INSERT INTO points_transactions (user_id, points_change, kind, remarks, booking_id, redemption_id, submission_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	logger.DatabaseCall("INSERT", "points_transactions", "user_id", t.UserID, "kind", t.Kind, "change", t.PointsChange)
	return r.db.QueryRowContext(ctx, query, t.UserID, t.PointsChange, t.Kind, t.Remarks, t.BookingID,
		t.RedemptionID, t.SubmissionID).Scan(&t.ID, &t.CreatedAt)
}

func (r *pointsRepository) ListTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.PointsTransaction, int32, error) {
	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM points_transactions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(page, pageSize)
	query := `SELECT id, user_id, points_change, kind, remarks, booking_id, redemption_id, submission_id, created_at
	          FROM points_transactions WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.PointsTransaction
	for rows.Next() {
		var t domain.PointsTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.PointsChange, &t.Kind, &t.Remarks, &t.BookingID,
			&t.RedemptionID, &t.SubmissionID, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, total, rows.Err()
}
