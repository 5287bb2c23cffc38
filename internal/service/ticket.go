package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

var ErrTicketResolved = fmt.Errorf("%w: ticket is already resolved", ErrConflict)

type ticketService struct {
	repos    repository.Repos
	tx       repository.Transactor
	emailSvc EmailService
	now      func() time.Time
}

func NewTicketService(repos repository.Repos, tx repository.Transactor, emailSvc EmailService) TicketService {
	return &ticketService{repos: repos, tx: tx, emailSvc: emailSvc, now: time.Now}
}

func (s *ticketService) Submit(ctx context.Context, userID int32, in TicketInput) (*domain.SupportTicket, error) {
	var errs fieldErrors
	if strings.TrimSpace(in.Subject) == "" {
		errs.add("subject", "is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		errs.add("message", "is required")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "general"
	}

	now := s.now()
	ticket := &domain.SupportTicket{
		UserID:    userID,
		Subject:   strings.TrimSpace(in.Subject),
		Category:  category,
		Message:   strings.TrimSpace(in.Message),
		Status:    domain.TicketStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repos.Tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	logger.InfoContext(ctx, "Support ticket submitted", "ticketID", ticket.ID, "userID", userID)
	return ticket, nil
}

func (s *ticketService) ListMine(ctx context.Context, userID int32, page, pageSize int32) ([]domain.SupportTicket, int32, error) {
	return s.repos.Tickets.List(ctx, domain.TicketFilter{UserID: &userID, Page: page, PageSize: pageSize})
}

func (s *ticketService) List(ctx context.Context, filter domain.TicketFilter) ([]domain.SupportTicket, int32, error) {
	return s.repos.Tickets.List(ctx, filter)
}

func (s *ticketService) Get(ctx context.Context, id int32) (*domain.SupportTicket, error) {
	ticket, err := s.repos.Tickets.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "ticket")
	}
	return ticket, nil
}

// Reply stores the admin's answer and notifies the user in their inbox.
// The email copy is best effort.
func (s *ticketService) Reply(ctx context.Context, adminID, ticketID int32, reply string) (*domain.SupportTicket, error) {
	logger.EnterMethod("ticketService.Reply", "adminID", adminID, "ticketID", ticketID)

	reply = strings.TrimSpace(reply)
	if reply == "" {
		err := invalid("reply", "is required")
		logger.ExitMethodWithError("ticketService.Reply", err, "ticketID", ticketID)
		return nil, err
	}

	var ticket *domain.SupportTicket
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		var err error
		ticket, err = r.Tickets.GetByID(ctx, ticketID)
		if err != nil {
			return translate(err, "ticket")
		}
		if ticket.Status == domain.TicketStatusResolved {
			return ErrTicketResolved
		}
		ticket.AdminReply = &reply
		ticket.RepliedBy = &adminID
		ticket.Status = domain.TicketStatusReplied
		ticket.UpdatedAt = s.now()
		if err := r.Tickets.Update(ctx, ticket); err != nil {
			return err
		}
		return r.Notifications.Create(ctx, &domain.Notification{
			UserID:  ticket.UserID,
			Message: fmt.Sprintf("Your support request %q has a new reply.", ticket.Subject),
		})
	})
	if err != nil {
		logger.ExitMethodWithError("ticketService.Reply", err, "ticketID", ticketID)
		return nil, err
	}

	if user, err := s.repos.Users.GetByID(ctx, ticket.UserID); err != nil {
		logger.WarnContext(ctx, "Could not load ticket owner for email", "ticketID", ticketID, "error", err)
	} else if err := s.emailSvc.SendTicketReply(ctx, user.Email, user.Name, ticket.Subject, reply); err != nil {
		logger.WarnContext(ctx, "Failed to email ticket reply", "ticketID", ticketID, "error", err)
	}

	logger.ExitMethod("ticketService.Reply", "ticketID", ticketID)
	return ticket, nil
}

func (s *ticketService) Resolve(ctx context.Context, ticketID int32) (*domain.SupportTicket, error) {
	ticket, err := s.repos.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, translate(err, "ticket")
	}
	if ticket.Status == domain.TicketStatusResolved {
		return ticket, nil
	}
	ticket.Status = domain.TicketStatusResolved
	ticket.UpdatedAt = s.now()
	if err := s.repos.Tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
