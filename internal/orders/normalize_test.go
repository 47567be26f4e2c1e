package orders

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeItem(t *testing.T, raw string) RawItem {
	t.Helper()
	var item RawItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	return item
}

func TestNormalizeItemAliases(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		quantity  int
		unitPrice string
		lineTotal string
	}{
		{
			name:      "canonical fields",
			raw:       `{"sku":"UBNT-PBE-5AC","name":"PowerBeam","quantity":3,"unitPrice":49.99}`,
			quantity:  3,
			unitPrice: "49.99",
			lineTotal: "149.97",
		},
		{
			name:      "qty and price aliases",
			raw:       `{"name":"LiteBeam","qty":2,"price":39}`,
			quantity:  2,
			unitPrice: "39",
			lineTotal: "78",
		},
		{
			name:      "snake_case price alias",
			raw:       `{"name":"Sector","quantity":1,"unit_price":"199.00"}`,
			quantity:  1,
			unitPrice: "199",
			lineTotal: "199",
		},
		{
			name:      "submitted line total wins over computed",
			raw:       `{"name":"Bundle","quantity":2,"unitPrice":10,"lineTotal":18.50}`,
			quantity:  2,
			unitPrice: "10",
			lineTotal: "18.5",
		},
		{
			name:      "snake_case line total",
			raw:       `{"name":"Bundle","quantity":2,"unitPrice":10,"line_total":19}`,
			quantity:  2,
			unitPrice: "10",
			lineTotal: "19",
		},
		{
			name:      "quantity wins over qty",
			raw:       `{"name":"Radio","quantity":5,"qty":2,"price":1}`,
			quantity:  5,
			unitPrice: "1",
			lineTotal: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeItem(decodeItem(t, tt.raw))
			assert.Equal(t, tt.quantity, got.Quantity)
			assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString(tt.unitPrice)),
				"unit price %s", got.UnitPrice)
			assert.True(t, got.LineTotal.Equal(decimal.RequireFromString(tt.lineTotal)),
				"line total %s", got.LineTotal)
		})
	}
}

func TestNormalizeItemMalformedInput(t *testing.T) {
	got := normalizeItem(decodeItem(t, `{"qty":"abc","price":-5}`))
	assert.Equal(t, "Item", got.Name)
	assert.Equal(t, "", got.SKU)
	assert.Equal(t, 1, got.Quantity)
	assert.True(t, got.UnitPrice.IsZero(), "unit price %s", got.UnitPrice)
	assert.True(t, got.LineTotal.IsZero(), "line total %s", got.LineTotal)
}

func TestNormalizeItemZeroAndNegativeQuantity(t *testing.T) {
	assert.Equal(t, 1, normalizeItem(decodeItem(t, `{"quantity":0}`)).Quantity)
	assert.Equal(t, 1, normalizeItem(decodeItem(t, `{"quantity":-4}`)).Quantity)
	assert.Equal(t, 1, normalizeItem(decodeItem(t, `{}`)).Quantity)
}

func TestNormalizeItemAbsurdQuantity(t *testing.T) {
	got := normalizeItem(decodeItem(t, `{"quantity":1e30,"unitPrice":2.50}`))
	assert.Equal(t, 1, got.Quantity)
	assert.True(t, got.LineTotal.Equal(decimal.RequireFromString("2.50")), "line total %s", got.LineTotal)

	got = normalizeItem(decodeItem(t, `{"quantity":1000000}`))
	assert.Equal(t, 1000000, got.Quantity)

	got = normalizeItem(decodeItem(t, `{"quantity":1000001}`))
	assert.Equal(t, 1, got.Quantity)
}

func TestNormalizeItemNumericStrings(t *testing.T) {
	got := normalizeItem(decodeItem(t, `{"quantity":"4","unitPrice":"12.25"}`))
	assert.Equal(t, 4, got.Quantity)
	assert.True(t, got.LineTotal.Equal(decimal.RequireFromString("49")), "line total %s", got.LineTotal)
}

func TestNormalizeItemNeverRejects(t *testing.T) {
	got := normalizeItem(decodeItem(t, `{"quantity":{"nested":true},"unitPrice":[1,2]}`))
	assert.Equal(t, 1, got.Quantity)
	assert.True(t, got.UnitPrice.IsZero())
	assert.True(t, got.LineTotal.IsZero())
}

func TestNormalizeItemsPreservesOrder(t *testing.T) {
	items := normalizeItems([]RawItem{
		decodeItem(t, `{"name":"A","quantity":1}`),
		decodeItem(t, `{"name":"B","quantity":2}`),
	})
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "B", items[1].Name)
}
