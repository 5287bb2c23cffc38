package domain

import "time"

type ChatSessionStatus string

const (
	ChatSessionActive ChatSessionStatus = "active"
	ChatSessionClosed ChatSessionStatus = "closed"
)

type ChatSenderType string

const (
	ChatSenderUser   ChatSenderType = "user"
	ChatSenderAdmin  ChatSenderType = "admin"
	ChatSenderSystem ChatSenderType = "system"
)

type ChatSession struct {
	ID            int32             `json:"id"`
	UserID        int32             `json:"user_id"`
	Status        ChatSessionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	LastMessageAt time.Time         `json:"last_message_at"`

	UserName string `json:"user_name,omitempty"`
}

type ChatMessage struct {
	ID         int32          `json:"id"`
	SessionID  int32          `json:"session_id"`
	SenderType ChatSenderType `json:"sender_type"`
	SenderID   *int32         `json:"sender_id,omitempty"`
	Text       string         `json:"message_text"`
	CreatedAt  time.Time      `json:"created_at"`
}
