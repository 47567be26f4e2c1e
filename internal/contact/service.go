package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/itprodirect/surplus-backend/internal/forms"
	"github.com/itprodirect/surplus-backend/pkg/config"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
	"github.com/itprodirect/surplus-backend/pkg/logger"
	"github.com/itprodirect/surplus-backend/pkg/mailer"
	"github.com/itprodirect/surplus-backend/pkg/metrics"
)

// SuccessMessage is the public acknowledgment for accepted (and
// honeypot-discarded) submissions. Discards must be indistinguishable
// from real acceptances.
const SuccessMessage = "Thank you for your message. We'll respond within 24 hours."

const deliveryFailureMessage = "Failed to send message. Please try again."

// Submission is the contact form payload. Website is the hidden
// honeypot field; humans never fill it.
type Submission struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,site_email"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
	Website string `json:"website"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// The site's historical email pattern, not the RFC superset the
	// built-in tag accepts.
	_ = v.RegisterValidation("site_email", func(fl validator.FieldLevel) bool {
		return forms.ValidEmail(fl.Field().String())
	})
	return v
}

// Service accepts contact submissions and forwards them to the owner.
type Service interface {
	Submit(ctx context.Context, sub Submission) (string, error)
}

type service struct {
	sender  mailer.Sender
	cfg     config.MailConfig
	logg    *logger.Logger
	metrics *metrics.FormMetrics
}

func NewService(sender mailer.Sender, cfg config.MailConfig, logg *logger.Logger, m *metrics.FormMetrics) (Service, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail sender required")
	}
	return &service{sender: sender, cfg: cfg, logg: logg, metrics: m}, nil
}

func (s *service) Submit(ctx context.Context, sub Submission) (string, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Message = strings.TrimSpace(sub.Message)

	// Honeypot check comes before validation: a bot must see the same
	// success a human would, with zero side effects.
	if sub.Website != "" {
		if s.logg != nil {
			s.logg.Info(ctx, "contact.honeypot_discarded")
		}
		s.metrics.IncSubmission("contact", metrics.OutcomeDiscarded)
		return SuccessMessage, nil
	}

	if details := validationDetails(sub); len(details) > 0 {
		s.metrics.IncSubmission("contact", metrics.OutcomeRejected)
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").WithDetails(details)
	}

	msg := mailer.Message{
		To:      s.cfg.OwnerEmail,
		Subject: fmt.Sprintf("[%s] Contact Form: %s", s.cfg.SiteName, sub.Name),
		Body:    buildNotification(sub, s.cfg.SiteName),
	}

	start := time.Now()
	if err := s.sender.Send(ctx, msg); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "contact.delivery_failed", err)
		}
		s.metrics.IncSubmission("contact", metrics.OutcomeFailed)
		return "", pkgerrors.Wrap(pkgerrors.CodeDelivery, err, deliveryFailureMessage)
	}
	s.metrics.ObserveDelivery("contact", time.Since(start))
	s.metrics.IncSubmission("contact", metrics.OutcomeAccepted)

	return SuccessMessage, nil
}

func validationDetails(sub Submission) []string {
	err := validate.Struct(sub)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"Invalid submission"}
	}

	var details []string
	for _, fe := range fieldErrs {
		details = append(details, messageFor(fe))
	}
	return details
}

func messageFor(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Name":
		if fe.Tag() == "max" {
			return "Name is too long"
		}
		return "Name is required"
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email format"
	case "Phone":
		return "Phone number is too long"
	case "Message":
		if fe.Tag() == "min" {
			return "Message must be at least 10 characters"
		}
		if fe.Tag() == "max" {
			return "Message is too long"
		}
		return "Message is required"
	}
	return fmt.Sprintf("%s is invalid", fe.StructField())
}

func buildNotification(sub Submission, siteName string) string {
	phone := sub.Phone
	if phone == "" {
		phone = "Not provided"
	}

	var b strings.Builder
	b.WriteString("New contact form submission:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	fmt.Fprintf(&b, "Phone: %s\n\n", phone)
	b.WriteString("Message:\n")
	b.WriteString(sub.Message)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "Sent from %s Telecom Equipment Site", siteName)
	return b.String()
}
