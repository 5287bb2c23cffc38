package domain

import "time"

type Notification struct {
	ID          int32     `json:"id"`
	UserID      int32     `json:"user_id"`
	Message     string    `json:"message"`
	EventID     *int32    `json:"event_id,omitempty"`
	ChallengeID *int32    `json:"challenge_id,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Broadcast is one message fanned out to many inboxes.
type Broadcast struct {
	UserIDs     []int32
	Message     string
	EventID     *int32
	ChallengeID *int32
}
