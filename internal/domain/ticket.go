package domain

import "time"

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusReplied  TicketStatus = "replied"
	TicketStatusResolved TicketStatus = "resolved"
)

func (s TicketStatus) Valid() bool {
	return s == TicketStatusOpen || s == TicketStatusReplied || s == TicketStatusResolved
}

type SupportTicket struct {
	ID         int32        `json:"id"`
	UserID     int32        `json:"user_id"`
	Subject    string       `json:"subject"`
	Category   string       `json:"category"`
	Message    string       `json:"message"`
	Status     TicketStatus `json:"status"`
	AdminReply *string      `json:"admin_reply,omitempty"`
	RepliedBy  *int32       `json:"replied_by,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type TicketFilter struct {
	Status   TicketStatus
	UserID   *int32
	Page     int32
	PageSize int32
}
