package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog_test.db")), &gorm.Config{})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	return conn
}

const testFeed = `{
  "meta": {"company": "Test"},
  "products": [
    {
      "sku": "SKU-A",
      "brand": "Ubiquiti",
      "model": "A",
      "name": "Product A",
      "category": "radio",
      "condition": "new",
      "quantity": 3,
      "pricing": [
        {"tier": "single", "minQty": 1, "maxQty": 4, "pricePerUnit": 10.5, "discountPercent": 0},
        {"tier": "bulk5", "minQty": 5, "maxQty": null, "pricePerUnit": 9.5, "discountPercent": 10}
      ],
      "images": ["/images/a.jpg"],
      "tags": ["wisp"],
      "shipping": {"weight": 1.5, "shippable": true, "localPickupPreferred": false, "shippingNotes": ""},
      "specs": {"Gain": "5 dBi"},
      "featured": true,
      "active": true
    },
    {
      "sku": "SKU-B",
      "brand": "Cisco Meraki",
      "model": "B",
      "name": "Product B",
      "category": "accessory",
      "condition": "as-is",
      "quantity": 0,
      "pricing": [
        {"tier": "single", "minQty": 1, "maxQty": null, "pricePerUnit": 1, "discountPercent": 0}
      ],
      "shipping": {"weight": 0, "shippable": false, "localPickupPreferred": false, "shippingNotes": ""},
      "featured": false,
      "active": false
    }
  ]
}`

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportFileRoundTrip(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	require.NoError(t, repo.AutoMigrate())

	count, err := ImportFile(context.Background(), repo, writeFeed(t, testFeed))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Only the active product should surface, tiers in feed order.
	products, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	got := products[0]
	assert.Equal(t, "SKU-A", got.SKU)
	assert.Equal(t, []string{"/images/a.jpg"}, got.Images)
	assert.Equal(t, map[string]string{"Gain": "5 dBi"}, got.Specs)
	require.Len(t, got.Pricing, 2)
	assert.Equal(t, "single", got.Pricing[0].Name)
	assert.Equal(t, "10.50", got.Pricing[0].PricePerUnit.StringFixed(2))
	require.NotNil(t, got.Pricing[0].MaxQty)
	assert.Equal(t, 4, *got.Pricing[0].MaxQty)
	assert.Nil(t, got.Pricing[1].MaxQty)

	// Re-import replaces rather than appends.
	_, err = ImportFile(context.Background(), repo, writeFeed(t, testFeed))
	require.NoError(t, err)
	products, err = repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestImportFileRejectsBadFeeds(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	require.NoError(t, repo.AutoMigrate())

	_, err := ImportFile(context.Background(), repo, writeFeed(t, `{"products": [{"name": "missing sku"}]}`))
	require.Error(t, err)

	_, err = ImportFile(context.Background(), repo, writeFeed(t, `{"products": [{"sku": "X", "pricing": []}]}`))
	require.Error(t, err)

	_, err = ImportFile(context.Background(), repo, writeFeed(t, `not json`))
	require.Error(t, err)

	_, err = ImportFile(context.Background(), repo, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
