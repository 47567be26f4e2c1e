package orders

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Request is the submitted order-request payload. The site has shipped
// several generations of the checkout form, so the shape is deliberately
// tolerant: item numerics may arrive under alias keys or as strings, the
// fulfillment block may be named "shipping", and the payment preference
// may live in any of four places. Website is the hidden honeypot field.
type Request struct {
	Customer    Customer     `json:"customer"`
	Items       []RawItem    `json:"items"`
	Fulfillment *Fulfillment `json:"fulfillment"`
	Shipping    *Fulfillment `json:"shipping"`
	Payment     *Payment     `json:"payment"`
	PaymentA    string       `json:"payment_method"`
	PaymentB    string       `json:"paymentMethod"`
	PaymentC    string       `json:"paymentPreference"`
	Notes       string       `json:"notes"`
	Website     string       `json:"website"`
}

type Customer struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address"`
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type Fulfillment struct {
	Method string `json:"method"`
	Cost   Number `json:"cost"`
}

type Payment struct {
	Method string `json:"method"`
}

// RawItem mirrors one submitted line item before normalization.
type RawItem struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  Number `json:"quantity"`
	Qty       Number `json:"qty"`
	UnitPrice Number `json:"unitPrice"`
	Price     Number `json:"price"`
	PriceAlt  Number `json:"unit_price"`
	LineTotal Number `json:"lineTotal"`
	TotalAlt  Number `json:"line_total"`
}

// Item is a normalized line item: positive integer quantity,
// non-negative prices.
type Item struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Number decodes a JSON number, a quoted numeric string, or garbage
// without ever failing the enclosing decode. Malformed values are
// coerced to safe defaults during normalization instead.
type Number struct {
	set bool
	ok  bool
	val decimal.Decimal
}

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	n.set = true
	if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	n.val = d
	n.ok = true
	return nil
}

// firstSet returns the first candidate a caller actually supplied,
// regardless of whether it parsed cleanly.
func firstSet(candidates ...Number) (Number, bool) {
	for _, c := range candidates {
		if c.set {
			return c, true
		}
	}
	return Number{}, false
}
