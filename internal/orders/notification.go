package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/itprodirect/surplus-backend/internal/pricing"
)

// order is a validated, normalized request ready for rendering.
type order struct {
	ID                string
	Customer          Customer
	Items             []Item
	FulfillmentMethod string
	PaymentPreference string
	Notes             string
}

func itemLines(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "- %s", it.Name)
		if it.SKU != "" {
			fmt.Fprintf(&b, " (%s)", it.SKU)
		}
		fmt.Fprintf(&b, " x%d", it.Quantity)
		if it.UnitPrice.IsPositive() {
			fmt.Fprintf(&b, " @ %s", pricing.FormatCurrency(it.UnitPrice))
		}
		if it.LineTotal.IsPositive() {
			fmt.Fprintf(&b, " = %s", pricing.FormatCurrency(it.LineTotal))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// buildOwnerNotification renders the plain-text email the owner works
// from when calling the customer back. Section order is load-bearing
// for the owner's phone workflow; keep it stable.
func buildOwnerNotification(o order, now time.Time) string {
	email := o.Customer.Email
	if email == "" {
		email = "(not provided)"
	}

	fulfillment := "Local pickup / local follow-up (Palm Harbor, FL area)"
	if o.FulfillmentMethod == "ship" {
		addr := o.Customer.Address
		if addr == nil {
			addr = &Address{}
		}
		fulfillment = fmt.Sprintf("Shipping address (if provided):\n%s\n%s, %s %s",
			addr.Street, addr.City, addr.State, addr.Zip)
	}

	preference := "To be confirmed by phone"
	if o.PaymentPreference != "" {
		preference = strings.ToUpper(o.PaymentPreference)
	}

	var b strings.Builder
	b.WriteString("NEW ORDER REQUEST RECEIVED\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", now.UTC().Format("Jan 2, 2006 3:04 PM MST"))
	b.WriteString("CUSTOMER:\n")
	fmt.Fprintf(&b, "Name: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", o.Customer.Phone)
	fmt.Fprintf(&b, "Email: %s\n\n", email)
	b.WriteString("FULFILLMENT:\n")
	fmt.Fprintf(&b, "Method: %s\n", strings.ToUpper(o.FulfillmentMethod))
	b.WriteString(fulfillment)
	b.WriteString("\n\nITEMS:\n")
	b.WriteString(itemLines(o.Items))
	b.WriteString("\n\nPAYMENT:\n")
	fmt.Fprintf(&b, "Preference: %s\n", preference)
	b.WriteString("(No online payment collected)\n")
	if o.Notes != "" {
		fmt.Fprintf(&b, "\nNOTES:\n%s\n", o.Notes)
	}
	b.WriteString("\n---\n")
	b.WriteString("Next step: Call/text customer to confirm inventory, pickup/shipping, and payment.")
	return b.String()
}

// buildCustomerConfirmation renders the optional copy sent to the
// customer when the feature flag is on and they left an email.
func buildCustomerConfirmation(o order, ownerEmail string) string {
	var b strings.Builder
	b.WriteString("Thanks — we received your order request.\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	b.WriteString("We do not take online payment. We will contact you within 24 hours to confirm availability, pickup/shipping, and payment.\n\n")
	b.WriteString("ITEMS:\n")
	b.WriteString(itemLines(o.Items))
	fmt.Fprintf(&b, "\n\nQuestions? Reply to this email or contact %s", ownerEmail)
	return b.String()
}
