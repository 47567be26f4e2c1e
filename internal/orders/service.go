package orders

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itprodirect/surplus-backend/internal/forms"
	"github.com/itprodirect/surplus-backend/pkg/config"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
	"github.com/itprodirect/surplus-backend/pkg/logger"
	"github.com/itprodirect/surplus-backend/pkg/mailer"
	"github.com/itprodirect/surplus-backend/pkg/metrics"
)

// SuccessMessage is returned for accepted and honeypot-discarded
// requests alike.
const SuccessMessage = "Order request received! We'll contact you to confirm details and payment."

const deliveryFailureMessage = "Failed to process order. Please try again or contact us directly."

// Receipt is what the caller gets back for an accepted request.
type Receipt struct {
	OrderID string
	Message string
}

// Service validates order requests and notifies the owner. Nothing is
// persisted; the notification email is the order's only destination.
type Service interface {
	Submit(ctx context.Context, req Request) (Receipt, error)
}

type service struct {
	sender  mailer.Sender
	mail    config.MailConfig
	forms   config.FormsConfig
	logg    *logger.Logger
	metrics *metrics.FormMetrics
	now     func() time.Time
}

func NewService(sender mailer.Sender, mailCfg config.MailConfig, formsCfg config.FormsConfig, logg *logger.Logger, m *metrics.FormMetrics) (Service, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail sender required")
	}
	return &service{
		sender:  sender,
		mail:    mailCfg,
		forms:   formsCfg,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, req Request) (Receipt, error) {
	req.Customer.Name = strings.TrimSpace(req.Customer.Name)
	req.Customer.Email = strings.TrimSpace(req.Customer.Email)
	req.Customer.Phone = strings.TrimSpace(req.Customer.Phone)
	req.Notes = strings.TrimSpace(req.Notes)

	now := s.now()

	// Bots get the same success a human would, with zero sends.
	if req.Website != "" {
		id := NewOrderID(now)
		if s.logg != nil {
			s.logg.Info(s.logg.WithOrderID(ctx, id), "orders.honeypot_discarded")
		}
		s.metrics.IncSubmission("orders", metrics.OutcomeDiscarded)
		return Receipt{OrderID: id, Message: SuccessMessage}, nil
	}

	method := s.fulfillmentMethod(req)
	if details := s.validate(req, method); len(details) > 0 {
		s.metrics.IncSubmission("orders", metrics.OutcomeRejected)
		return Receipt{}, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").WithDetails(details)
	}

	o := order{
		ID:                NewOrderID(now),
		Customer:          req.Customer,
		Items:             normalizeItems(req.Items),
		FulfillmentMethod: method,
		PaymentPreference: paymentPreference(req),
		Notes:             req.Notes,
	}
	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, o.ID)
	}

	ownerMsg := mailer.Message{
		To:      s.mail.OwnerEmail,
		Subject: "[ORDER REQUEST] " + o.ID + " - " + o.Customer.Name,
		Body:    buildOwnerNotification(o, now),
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.sender.Send(gctx, ownerMsg)
	})
	if s.mail.SendCustomerCopy && o.Customer.Email != "" {
		customerMsg := mailer.Message{
			To:      o.Customer.Email,
			Subject: "Order Request Received - " + o.ID + " - " + s.mail.SiteName,
			Body:    buildCustomerConfirmation(o, s.mail.OwnerEmail),
		}
		g.Go(func() error {
			return s.sender.Send(gctx, customerMsg)
		})
	}
	if err := g.Wait(); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "orders.delivery_failed", err)
		}
		s.metrics.IncSubmission("orders", metrics.OutcomeFailed)
		return Receipt{}, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, deliveryFailureMessage)
	}
	s.metrics.ObserveDelivery("orders", time.Since(start))
	s.metrics.IncSubmission("orders", metrics.OutcomeAccepted)
	if s.logg != nil {
		s.logg.Info(ctx, "orders.request_accepted")
	}

	return Receipt{OrderID: o.ID, Message: SuccessMessage}, nil
}

func (s *service) validate(req Request, method string) []string {
	var details []string
	if req.Customer.Name == "" {
		details = append(details, "Customer name is required")
	}
	if req.Customer.Phone == "" {
		details = append(details, "Phone number is required")
	} else if min := s.forms.PhoneMinDigits; min > 0 && forms.DigitCount(req.Customer.Phone) < min {
		details = append(details, "Phone number is too short")
	}
	if len(req.Items) == 0 {
		details = append(details, "Order must contain at least one item")
	}
	if req.Customer.Email != "" && !forms.ValidEmail(req.Customer.Email) {
		details = append(details, "Invalid email format")
	}
	if method != "pickup" && method != "ship" {
		details = append(details, "Fulfillment method must be pickup or ship")
	}
	return details
}

// The fulfillment block arrived as "shipping" in older form revisions.
func (s *service) fulfillmentMethod(req Request) string {
	block := req.Shipping
	if block == nil {
		block = req.Fulfillment
	}
	if block == nil {
		return "pickup"
	}
	method := strings.ToLower(strings.TrimSpace(block.Method))
	if method == "" {
		return "pickup"
	}
	return method
}

func paymentPreference(req Request) string {
	candidates := []string{req.PaymentA, req.PaymentB, req.PaymentC}
	if req.Payment != nil {
		candidates = append([]string{req.Payment.Method}, candidates...)
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}
