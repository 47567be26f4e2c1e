package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the buyer's stated settlement preference. Only
// PayPal carries a surcharge.
type PaymentMethod string

const (
	PaymentWire   PaymentMethod = "wire"
	PaymentACH    PaymentMethod = "ach"
	PaymentPayPal PaymentMethod = "paypal"
	PaymentCash   PaymentMethod = "cash"
)

// ParsePaymentMethod normalizes a free-form method string. Unknown
// values come back as-is with ok=false; fees only ever apply to the
// known PayPal method so unknowns are safe.
func ParsePaymentMethod(value string) (PaymentMethod, bool) {
	method := PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
	switch method {
	case PaymentWire, PaymentACH, PaymentPayPal, PaymentCash:
		return method, true
	}
	return method, false
}

var payPalFeeRate = decimal.NewFromFloat(0.03)

// Tier is one quantity range of a product's volume price break.
// A nil MaxQty means the tier is unbounded above.
type Tier struct {
	Name            string
	MinQty          int
	MaxQty          *int
	PricePerUnit    decimal.Decimal
	DiscountPercent int
}

// Matches reports whether the quantity falls inside the tier's range.
func (t Tier) Matches(quantity int) bool {
	if quantity < t.MinQty {
		return false
	}
	return t.MaxQty == nil || quantity <= *t.MaxQty
}

// ResolveTier scans tiers in order and returns the first whose range
// contains quantity. Quantities below one are the caller's problem;
// this layer stays total over its inputs.
func ResolveTier(tiers []Tier, quantity int) (Tier, bool) {
	for _, tier := range tiers {
		if tier.Matches(quantity) {
			return tier, true
		}
	}
	return Tier{}, false
}

// UnitPriceFor returns the per-unit price for the quantity. When no
// tier matches, the first tier's price is the deliberate soft
// fallback rather than an error.
func UnitPriceFor(tiers []Tier, quantity int) decimal.Decimal {
	if tier, ok := ResolveTier(tiers, quantity); ok {
		return tier.PricePerUnit
	}
	if len(tiers) > 0 {
		return tiers[0].PricePerUnit
	}
	return decimal.Zero
}

// LineTotal computes unitPrice x quantity rounded to the cent.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// PayPalFee is the flat 3% surcharge on a subtotal, rounded to the cent.
func PayPalFee(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(payPalFeeRate).Round(2)
}

// LineItem is a transient cart/order line; totals are per-line
// pre-rounded amounts.
type LineItem struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Totals is a cart summary. Every field is independently rounded to
// two decimals and Total is never below Subtotal.
type Totals struct {
	Subtotal     decimal.Decimal
	PayPalFee    decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// CartTotals sums the pre-rounded line totals, applies the PayPal
// surcharge when that method is selected, and adds shipping.
func CartTotals(items []LineItem, method PaymentMethod, shippingCost decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}

	fee := decimal.Zero
	if method == PaymentPayPal {
		fee = PayPalFee(subtotal)
	}

	total := subtotal.Add(fee).Add(shippingCost)

	return Totals{
		Subtotal:     subtotal.Round(2),
		PayPalFee:    fee.Round(2),
		ShippingCost: shippingCost.Round(2),
		Total:        total.Round(2),
	}
}
