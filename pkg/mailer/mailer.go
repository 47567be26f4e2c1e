package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/itprodirect/surplus-backend/pkg/config"
	"github.com/itprodirect/surplus-backend/pkg/logger"
)

// Message is a plain-text notification email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers notification messages. Implementations must be safe
// for concurrent use; the intake services issue joint sends.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the delivery backend from configuration. Without an API
// key the log-only sender is used so local environments behave like
// the site with no delivery backend configured.
func New(cfg config.MailConfig, logg *logger.Logger) Sender {
	if cfg.SendgridAPIKey == "" {
		return &logSender{logg: logg}
	}
	return &sendgridSender{
		client:   sendgrid.NewSendClient(cfg.SendgridAPIKey),
		from:     cfg.FromEmail,
		fromName: cfg.SiteName,
	}
}

type sendgridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func (s *sendgridSender) Send(ctx context.Context, msg Message) error {
	email := sgmail.NewSingleEmailPlainText(
		sgmail.NewEmail(s.fromName, s.from),
		msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Body,
	)
	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}

type logSender struct {
	logg *logger.Logger
}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"to":      msg.To,
			"subject": msg.Subject,
		})
		s.logg.Info(ctx, "mailer.dry_run")
	}
	return nil
}
