package postgres

import (
	"context"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

const chatSessionColumns = `s.id, s.user_id, s.status, s.created_at, s.last_message_at, u.name`

const chatSessionJoin = ` FROM live_chat_sessions s JOIN users u ON u.id = s.user_id`

type chatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) repository.ChatRepository {
	return &chatRepository{db: db}
}

func scanChatSession(row rowScanner) (*domain.ChatSession, error) {
	s := &domain.ChatSession{}
	if err := row.Scan(&s.ID, &s.UserID, &s.Status, &s.CreatedAt, &s.LastMessageAt, &s.UserName); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *chatRepository) CreateSession(ctx context.Context, s *domain.ChatSession) error {
	query := `INSERT INTO live_chat_sessions (user_id, status, created_at, last_message_at) VALUES ($1, $2, $3, $3) RETURNING id`
	now := time.Now().UTC()
	s.CreatedAt = now
	s.LastMessageAt = now
	return r.db.QueryRowContext(ctx, query, s.UserID, s.Status, now).Scan(&s.ID)
}

func (r *chatRepository) GetSession(ctx context.Context, id int32) (*domain.ChatSession, error) {
	s, err := scanChatSession(r.db.QueryRowContext(ctx, `SELECT `+chatSessionColumns+chatSessionJoin+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *chatRepository) GetActiveSessionByUser(ctx context.Context, userID int32) (*domain.ChatSession, error) {
	query := `SELECT ` + chatSessionColumns + chatSessionJoin + ` WHERE s.user_id = $1 AND s.status = 'active'
	          ORDER BY s.created_at DESC LIMIT 1`
	s, err := scanChatSession(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *chatRepository) UpdateSession(ctx context.Context, s *domain.ChatSession) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE live_chat_sessions SET status=$1, last_message_at=$2 WHERE id=$3`, s.Status, s.LastMessageAt, s.ID))
}

func (r *chatRepository) ListSessions(ctx context.Context, status domain.ChatSessionStatus) ([]domain.ChatSession, error) {
	w := &whereBuilder{}
	if status != "" {
		w.where("s.status = %s", status)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+chatSessionColumns+chatSessionJoin+w.String()+` ORDER BY s.last_message_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.ChatSession
	for rows.Next() {
		s, err := scanChatSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// AddMessage stores m and bumps the session's last activity time.
func (r *chatRepository) AddMessage(ctx context.Context, m *domain.ChatMessage) error {
	query := `INSERT INTO live_chat_messages (session_id, sender_type, sender_id, message_text, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	m.CreatedAt = time.Now().UTC()
	if err := r.db.QueryRowContext(ctx, query, m.SessionID, m.SenderType, m.SenderID, m.Text, m.CreatedAt).Scan(&m.ID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE live_chat_sessions SET last_message_at = $1 WHERE id = $2`, m.CreatedAt, m.SessionID)
	return err
}

func (r *chatRepository) ListMessages(ctx context.Context, sessionID int32) ([]domain.ChatMessage, error) {
	query := `SELECT id, session_id, sender_type, sender_id, message_text, created_at
	          FROM live_chat_messages WHERE session_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.SenderType, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *chatRepository) CloseIdleSessions(ctx context.Context, idleSince time.Time) (int64, error) {
	logger.DatabaseCall("UPDATE", "live_chat_sessions", "idle_since", idleSince)
	result, err := r.db.ExecContext(ctx,
		`UPDATE live_chat_sessions SET status = 'closed' WHERE status = 'active' AND last_message_at < $1`, idleSince)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	return n, err
}
