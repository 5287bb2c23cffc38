package service

import (
	"context"
	"fmt"
	"net/http"

	"skillswap-backend/internal/config"
	"skillswap-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// NewEmailService returns the SendGrid mailer, or a console mailer when no
// API key is configured.
func NewEmailService(cfg config.MailConfig) EmailService {
	if cfg.SendGridAPIKey == "" {
		return &consoleEmailService{fromName: cfg.FromName, fromEmail: cfg.FromEmail}
	}
	return &sendgridEmailService{
		key:  cfg.SendGridAPIKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

func ticketReplyBody(name, subject, reply string) string {
	return fmt.Sprintf("Hello %s,\n\nAn administrator replied to your support request %q:\n\n%s\n\nYou can follow up from the Support page.\n\nBest regards,\nThe SkillSwap Team", name, subject, reply)
}

type sendgridEmailService struct {
	key  string
	from *sgmail.Email
}

func (s *sendgridEmailService) SendTicketReply(ctx context.Context, email, name, subject, reply string) error {
	p := sgmail.NewPersonalization()
	p.Subject = "Re: " + subject
	p.AddTos(sgmail.NewEmail(name, email))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", ticketReplyBody(name, subject, reply)))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	logger.ExternalServiceCall("sendgrid", "SendTicketReply", "to", email)
	res, err := sendgrid.API(req)
	if err == nil && res.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("sendgrid returned status %d: %s", res.StatusCode, res.Body)
	}
	logger.ExternalServiceResult("sendgrid", "SendTicketReply", err, "to", email)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	return nil
}

// consoleEmailService logs mail instead of sending it.
type consoleEmailService struct {
	fromName  string
	fromEmail string
}

func (s *consoleEmailService) SendTicketReply(ctx context.Context, email, name, subject, reply string) error {
	logger.InfoContext(ctx, "Email (console)",
		"from", fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		"to", email,
		"subject", "Re: "+subject,
		"body", ticketReplyBody(name, subject, reply),
	)
	return nil
}
