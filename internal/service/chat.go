package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

const chatGreeting = "Hi! Thanks for reaching out. An administrator will reply here shortly."

const maxChatMessageLength = 2000

var ErrChatClosed = fmt.Errorf("%w: chat session is closed", ErrConflict)

type chatService struct {
	repos     repository.Repos
	tx        repository.Transactor
	idleAfter time.Duration
	now       func() time.Time
}

// NewChatService builds the polling chat. Active sessions without a message
// for idleMinutes are closed by CloseIdle.
func NewChatService(repos repository.Repos, tx repository.Transactor, idleMinutes int) ChatService {
	return &chatService{
		repos:     repos,
		tx:        tx,
		idleAfter: time.Duration(idleMinutes) * time.Minute,
		now:       time.Now,
	}
}

func validMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("message", "is required")
	}
	if len(text) > maxChatMessageLength {
		return "", invalid("message", fmt.Sprintf("must be at most %d characters", maxChatMessageLength))
	}
	return text, nil
}

// Start returns the user's active session, opening one with a greeting when
// none exists.
func (s *chatService) Start(ctx context.Context, userID int32) (*domain.ChatSession, []domain.ChatMessage, error) {
	session, err := s.repos.Chats.GetActiveSessionByUser(ctx, userID)
	if err == nil {
		messages, err := s.repos.Chats.ListMessages(ctx, session.ID)
		return session, messages, err
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	var greeting *domain.ChatMessage
	err = s.tx.WithinTx(ctx, func(r repository.Repos) error {
		now := s.now()
		session = &domain.ChatSession{
			UserID:        userID,
			Status:        domain.ChatSessionActive,
			CreatedAt:     now,
			LastMessageAt: now,
		}
		if err := r.Chats.CreateSession(ctx, session); err != nil {
			return fmt.Errorf("failed to open chat session: %w", err)
		}
		greeting = &domain.ChatMessage{
			SessionID:  session.ID,
			SenderType: domain.ChatSenderSystem,
			Text:       chatGreeting,
			CreatedAt:  now,
		}
		return r.Chats.AddMessage(ctx, greeting)
	})
	if err != nil {
		return nil, nil, err
	}
	logger.InfoContext(ctx, "Chat session opened", "sessionID", session.ID, "userID", userID)
	return session, []domain.ChatMessage{*greeting}, nil
}

func (s *chatService) Active(ctx context.Context, userID int32) (*domain.ChatSession, []domain.ChatMessage, error) {
	session, err := s.repos.Chats.GetActiveSessionByUser(ctx, userID)
	if err != nil {
		return nil, nil, translate(err, "chat session")
	}
	messages, err := s.repos.Chats.ListMessages(ctx, session.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, messages, nil
}

// ownSession loads a session and hides sessions of other users.
func (s *chatService) ownSession(ctx context.Context, userID, sessionID int32) (*domain.ChatSession, error) {
	session, err := s.repos.Chats.GetSession(ctx, sessionID)
	if err != nil {
		return nil, translate(err, "chat session")
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("%w: chat session", ErrNotFound)
	}
	return session, nil
}

func (s *chatService) send(ctx context.Context, session *domain.ChatSession, sender domain.ChatSenderType, senderID int32, text string) (*domain.ChatMessage, error) {
	if session.Status != domain.ChatSessionActive {
		return nil, ErrChatClosed
	}
	msg := &domain.ChatMessage{
		SessionID:  session.ID,
		SenderType: sender,
		SenderID:   &senderID,
		Text:       text,
		CreatedAt:  s.now(),
	}
	if err := s.repos.Chats.AddMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}
	return msg, nil
}

func (s *chatService) SendAsUser(ctx context.Context, userID, sessionID int32, text string) (*domain.ChatMessage, error) {
	text, err := validMessage(text)
	if err != nil {
		return nil, err
	}
	session, err := s.ownSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, session, domain.ChatSenderUser, userID, text)
}

func (s *chatService) History(ctx context.Context, userID, sessionID int32) ([]domain.ChatMessage, error) {
	if _, err := s.ownSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.repos.Chats.ListMessages(ctx, sessionID)
}

func (s *chatService) ListSessions(ctx context.Context, status domain.ChatSessionStatus) ([]domain.ChatSession, error) {
	return s.repos.Chats.ListSessions(ctx, status)
}

func (s *chatService) Messages(ctx context.Context, sessionID int32) ([]domain.ChatMessage, error) {
	if _, err := s.repos.Chats.GetSession(ctx, sessionID); err != nil {
		return nil, translate(err, "chat session")
	}
	return s.repos.Chats.ListMessages(ctx, sessionID)
}

func (s *chatService) SendAsAdmin(ctx context.Context, adminID, sessionID int32, text string) (*domain.ChatMessage, error) {
	text, err := validMessage(text)
	if err != nil {
		return nil, err
	}
	session, err := s.repos.Chats.GetSession(ctx, sessionID)
	if err != nil {
		return nil, translate(err, "chat session")
	}
	return s.send(ctx, session, domain.ChatSenderAdmin, adminID, text)
}

func (s *chatService) Close(ctx context.Context, sessionID int32) (*domain.ChatSession, error) {
	session, err := s.repos.Chats.GetSession(ctx, sessionID)
	if err != nil {
		return nil, translate(err, "chat session")
	}
	if session.Status == domain.ChatSessionClosed {
		return session, nil
	}
	session.Status = domain.ChatSessionClosed
	if err := s.repos.Chats.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *chatService) CloseIdle(ctx context.Context) (int64, error) {
	return s.repos.Chats.CloseIdleSessions(ctx, s.now().Add(-s.idleAfter))
}
