package orders

import "github.com/shopspring/decimal"

// Quantities above this are treated as malformed input, not real orders.
const maxQuantity = 1_000_000

// Alias precedence, fixed and applied uniformly:
//
//	quantity   quantity, qty
//	unit price unitPrice, price, unit_price
//	line total lineTotal, line_total, else quantity x unit price
//
// Malformed or out-of-range numerics never reject the item: quantity
// coerces to 1, prices to 0. The intake boundary accepts whatever the
// browser sends and the owner follows up by phone anyway.
func normalizeItem(raw RawItem) Item {
	item := Item{
		SKU:       raw.SKU,
		Name:      raw.Name,
		Quantity:  1,
		UnitPrice: decimal.Zero,
		LineTotal: decimal.Zero,
	}
	if item.Name == "" {
		item.Name = "Item"
	}

	if n, found := firstSet(raw.Quantity, raw.Qty); found && n.ok {
		if q := n.val.IntPart(); q > 0 && q <= maxQuantity {
			item.Quantity = int(q)
		}
	}

	if n, found := firstSet(raw.UnitPrice, raw.Price, raw.PriceAlt); found && n.ok && !n.val.IsNegative() {
		item.UnitPrice = n.val
	}

	if n, found := firstSet(raw.LineTotal, raw.TotalAlt); found && n.ok && !n.val.IsNegative() {
		item.LineTotal = n.val.Round(2)
	} else {
		item.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
	}

	return item
}

func normalizeItems(raw []RawItem) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, normalizeItem(r))
	}
	return items
}
