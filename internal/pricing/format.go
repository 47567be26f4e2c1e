package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a US-dollar display string with thousands
// separators, e.g. 1234.5 -> "$1,234.50". Output is stable for golden
// comparisons.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	fixed := rounded.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	return fmt.Sprintf("%s$%s.%s", sign, groupThousands(whole), cents)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// TierLabel renders the quantity range of a tier for display:
// unbounded -> "10+ units", single -> "5 unit", range -> "1-4 units".
func TierLabel(tier Tier) string {
	if tier.MaxQty == nil {
		return fmt.Sprintf("%d+ units", tier.MinQty)
	}
	if tier.MinQty == *tier.MaxQty {
		return fmt.Sprintf("%d unit", tier.MinQty)
	}
	return fmt.Sprintf("%d-%d units", tier.MinQty, *tier.MaxQty)
}
