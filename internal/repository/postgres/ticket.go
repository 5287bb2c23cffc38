package postgres

import (
	"context"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

const ticketColumns = `id, user_id, subject, category, message, status, admin_reply, replied_by, created_at, updated_at`

type ticketRepository struct {
	db DBTX
}

func NewTicketRepository(db DBTX) repository.TicketRepository {
	return &ticketRepository{db: db}
}

func scanTicket(row rowScanner) (*domain.SupportTicket, error) {
	t := &domain.SupportTicket{}
	err := row.Scan(&t.ID, &t.UserID, &t.Subject, &t.Category, &t.Message, &t.Status, &t.AdminReply, &t.RepliedBy,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) Create(ctx context.Context, t *domain.SupportTicket) error {
	query := `INSERT INTO support_tickets (user_id, subject, category, message, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query, t.UserID, t.Subject, t.Category, t.Message, t.Status, now).Scan(&t.ID)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int32) (*domain.SupportTicket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *ticketRepository) Update(ctx context.Context, t *domain.SupportTicket) error {
	t.UpdatedAt = time.Now().UTC()
	query := `UPDATE support_tickets SET status=$1, admin_reply=$2, replied_by=$3, updated_at=$4 WHERE id=$5`
	return expectOne(r.db.ExecContext(ctx, query, t.Status, t.AdminReply, t.RepliedBy, t.UpdatedAt, t.ID))
}

func (r *ticketRepository) List(ctx context.Context, f domain.TicketFilter) ([]domain.SupportTicket, int32, error) {
	w := &whereBuilder{}
	if f.Status != "" {
		w.where("status = %s", f.Status)
	}
	if f.UserID != nil {
		w.where("user_id = %s", *f.UserID)
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM support_tickets`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + ticketColumns + ` FROM support_tickets` + w.String() + ` ORDER BY created_at DESC`
	query += w.page(f.Page, f.PageSize)
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []domain.SupportTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, total, rows.Err()
}
