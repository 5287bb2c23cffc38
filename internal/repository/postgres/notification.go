package postgres

import (
	"context"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"

	"github.com/lib/pq"
)

const notificationColumns = `id, user_id, message, event_id, challenge_id, is_read, created_at`

type notificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	n := &domain.Notification{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.EventID, &n.ChallengeID, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (user_id, message, event_id, challenge_id, is_read)
	          VALUES ($1, $2, $3, $4, FALSE) RETURNING id, created_at`
	n.IsRead = false
	return r.db.QueryRowContext(ctx, query, n.UserID, n.Message, n.EventID, n.ChallengeID).Scan(&n.ID, &n.CreatedAt)
}

// CreateBatch writes every recipient row in a single statement.
func (r *notificationRepository) CreateBatch(ctx context.Context, b domain.Broadcast) (int64, error) {
	if len(b.UserIDs) == 0 {
		return 0, nil
	}
	ids := make([]int64, len(b.UserIDs))
	for i, id := range b.UserIDs {
		ids[i] = int64(id)
	}
	query := `INSERT INTO notifications (user_id, message, event_id, challenge_id, is_read)
	          SELECT uid, $2, $3, $4, FALSE FROM unnest($1::int[]) AS uid`
	logger.DatabaseCall("INSERT", "notifications", "recipients", len(ids))
	result, err := r.db.ExecContext(ctx, query, pq.Array(ids), b.Message, b.EventID, b.ChallengeID)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err)
		return 0, err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult("INSERT", n, err)
	return n, err
}

func (r *notificationRepository) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	notes, err := r.list(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *notificationRepository) ListUnread(ctx context.Context, userID int32) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 AND is_read = FALSE ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *notificationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	return count, err
}

// MarkAsRead is idempotent; it only fails when the row does not belong to userID.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	return expectOne(r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int32) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
