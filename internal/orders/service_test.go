package orders

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itprodirect/surplus-backend/pkg/config"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
	"github.com/itprodirect/surplus-backend/pkg/mailer"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		OwnerEmail: "owner@itprodirect.com",
		FromEmail:  "noreply@itprodirect.com",
		SiteName:   "IT Pro Direct",
	}
}

func newTestService(t *testing.T, sender mailer.Sender, mailCfg config.MailConfig, formsCfg config.FormsConfig) *service {
	t.Helper()
	svc, err := NewService(sender, mailCfg, formsCfg, nil, nil)
	require.NoError(t, err)
	s, ok := svc.(*service)
	require.True(t, ok)
	s.now = func() time.Time {
		return time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	}
	return s
}

func validRequest(t *testing.T) Request {
	t.Helper()
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{
		"customer": {"name": "Dana Smith", "phone": "727-555-0101", "email": "dana@example.com"},
		"items": [{"sku": "UBNT-PBE-5AC", "name": "PowerBeam 5AC", "quantity": 3, "unitPrice": 49.99}],
		"fulfillment": {"method": "pickup"},
		"notes": "Call after 5pm."
	}`), &req))
	return req
}

func TestSubmitSendsOwnerNotification(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

	receipt, err := svc.Submit(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Regexp(t, orderIDRE, receipt.OrderID)
	assert.Equal(t, SuccessMessage, receipt.Message)

	require.Len(t, sender.sent, 1)
	sent := sender.sent[0]
	assert.Equal(t, "owner@itprodirect.com", sent.To)
	assert.Equal(t, "[ORDER REQUEST] "+receipt.OrderID+" - Dana Smith", sent.Subject)
	assert.Contains(t, sent.Body, "Order ID: "+receipt.OrderID)
	assert.Contains(t, sent.Body, "- PowerBeam 5AC (UBNT-PBE-5AC) x3 @ $49.99 = $149.97")
	assert.Contains(t, sent.Body, "NOTES:\nCall after 5pm.")
}

func TestSubmitCustomerCopyFlag(t *testing.T) {
	t.Run("off by default", func(t *testing.T) {
		sender := &fakeSender{}
		svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

		_, err := svc.Submit(context.Background(), validRequest(t))
		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
	})

	t.Run("on with customer email", func(t *testing.T) {
		cfg := testMailConfig()
		cfg.SendCustomerCopy = true
		sender := &fakeSender{}
		svc := newTestService(t, sender, cfg, config.FormsConfig{})

		receipt, err := svc.Submit(context.Background(), validRequest(t))
		require.NoError(t, err)
		require.Len(t, sender.sent, 2)

		recipients := []string{sender.sent[0].To, sender.sent[1].To}
		assert.Contains(t, recipients, "owner@itprodirect.com")
		assert.Contains(t, recipients, "dana@example.com")
		for _, msg := range sender.sent {
			if msg.To == "dana@example.com" {
				assert.Equal(t, "Order Request Received - "+receipt.OrderID+" - IT Pro Direct", msg.Subject)
			}
		}
	})

	t.Run("on without customer email", func(t *testing.T) {
		cfg := testMailConfig()
		cfg.SendCustomerCopy = true
		sender := &fakeSender{}
		svc := newTestService(t, sender, cfg, config.FormsConfig{})

		req := validRequest(t)
		req.Customer.Email = ""
		_, err := svc.Submit(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
	})
}

func TestSubmitConcurrentRequests(t *testing.T) {
	cfg := testMailConfig()
	cfg.SendCustomerCopy = true
	sender := &fakeSender{}
	svc := newTestService(t, sender, cfg, config.FormsConfig{})

	const submissions = 8
	req := validRequest(t)
	var wg sync.WaitGroup
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), req)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.sent, submissions*2)
}

func TestSubmitHoneypotDiscardsSilently(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

	req := validRequest(t)
	req.Website = "https://spam.example.com"

	receipt, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Regexp(t, orderIDRE, receipt.OrderID)
	assert.Equal(t, SuccessMessage, receipt.Message)
	assert.Empty(t, sender.sent)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		detail string
	}{
		{"missing name", func(r *Request) { r.Customer.Name = "  " }, "Customer name is required"},
		{"missing phone", func(r *Request) { r.Customer.Phone = "" }, "Phone number is required"},
		{"no items", func(r *Request) { r.Items = nil }, "Order must contain at least one item"},
		{"bad email", func(r *Request) { r.Customer.Email = "not-an-email" }, "Invalid email format"},
		{"bad fulfillment", func(r *Request) { r.Fulfillment = &Fulfillment{Method: "teleport"} }, "Fulfillment method must be pickup or ship"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

			req := validRequest(t)
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			require.Error(t, err)

			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
			assert.Contains(t, appErr.Details(), tt.detail)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestSubmitEmailOptional(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

	req := validRequest(t)
	req.Customer.Email = ""
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Body, "Email: (not provided)")
}

func TestSubmitPhoneMinDigits(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{PhoneMinDigits: 10})

	req := validRequest(t)
	req.Customer.Phone = "555-0101"

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details(), "Phone number is too short")
}

func TestSubmitFulfillmentDefaultsToPickup(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

	req := validRequest(t)
	req.Fulfillment = nil
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Body, "Method: PICKUP")
}

func TestSubmitShippingBlockAlias(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

	req := validRequest(t)
	req.Fulfillment = nil
	req.Shipping = &Fulfillment{Method: "ship"}
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Body, "Method: SHIP")
}

func TestSubmitPaymentPreferencePrecedence(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

	req := validRequest(t)
	req.Payment = &Payment{Method: "paypal"}
	req.PaymentB = "wire"
	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Body, "Preference: PAYPAL")
}

func TestSubmitDeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("upstream 500")}
	svc := newTestService(t, sender, testMailConfig(), config.FormsConfig{})

	_, err := svc.Submit(context.Background(), validRequest(t))
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDelivery, appErr.Code())
	assert.Contains(t, appErr.Error(), "Failed to process order")
}
