package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/itprodirect/surplus-backend/pkg/db/models"
)

// The feed file keeps the shape of the storefront's products.json so
// the same data ships to both the site and this backend.
type feedFile struct {
	Meta     map[string]any `json:"meta"`
	Products []feedProduct  `json:"products"`
}

type feedProduct struct {
	SKU              string            `json:"sku"`
	Brand            string            `json:"brand"`
	Model            string            `json:"model"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	ShortDescription string            `json:"shortDescription"`
	LongDescription  string            `json:"longDescription"`
	Condition        string            `json:"condition"`
	ConditionNotes   string            `json:"conditionNotes"`
	Quantity         int               `json:"quantity"`
	Pricing          []feedTier        `json:"pricing"`
	Images           []string          `json:"images"`
	Tags             []string          `json:"tags"`
	Shipping         feedShipping      `json:"shipping"`
	Specs            map[string]string `json:"specs"`
	Featured         bool              `json:"featured"`
	Active           bool              `json:"active"`
}

type feedTier struct {
	Tier            string          `json:"tier"`
	MinQty          int             `json:"minQty"`
	MaxQty          *int            `json:"maxQty"`
	PricePerUnit    decimal.Decimal `json:"pricePerUnit"`
	DiscountPercent int             `json:"discountPercent"`
}

type feedShipping struct {
	Weight               float64 `json:"weight"`
	Shippable            bool    `json:"shippable"`
	LocalPickupPreferred bool    `json:"localPickupPreferred"`
	ShippingNotes        string  `json:"shippingNotes"`
}

// ImportFile replaces the catalog with the contents of a product feed
// file. Returns the number of imported products.
func ImportFile(ctx context.Context, repo *Repository, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading feed %s: %w", path, err)
	}

	var feed feedFile
	if err := json.Unmarshal(raw, &feed); err != nil {
		return 0, fmt.Errorf("parsing feed %s: %w", path, err)
	}

	products := make([]models.Product, 0, len(feed.Products))
	for _, fp := range feed.Products {
		if fp.SKU == "" {
			return 0, fmt.Errorf("feed product without sku")
		}
		if len(fp.Pricing) == 0 {
			return 0, fmt.Errorf("feed product %s has no pricing tiers", fp.SKU)
		}
		products = append(products, toModel(fp))
	}

	if err := repo.ReplaceAll(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

func toModel(fp feedProduct) models.Product {
	tiers := make([]models.PricingTier, 0, len(fp.Pricing))
	for i, ft := range fp.Pricing {
		tiers = append(tiers, models.PricingTier{
			ProductSKU:      fp.SKU,
			Name:            ft.Tier,
			Position:        i,
			MinQty:          ft.MinQty,
			MaxQty:          ft.MaxQty,
			PricePerUnit:    ft.PricePerUnit,
			DiscountPercent: ft.DiscountPercent,
		})
	}

	return models.Product{
		SKU:                  fp.SKU,
		Brand:                fp.Brand,
		Model:                fp.Model,
		Name:                 fp.Name,
		Category:             fp.Category,
		ShortDescription:     fp.ShortDescription,
		LongDescription:      fp.LongDescription,
		Condition:            fp.Condition,
		ConditionNotes:       fp.ConditionNotes,
		Quantity:             fp.Quantity,
		Images:               fp.Images,
		Tags:                 fp.Tags,
		Specs:                fp.Specs,
		ShippingWeight:       fp.Shipping.Weight,
		Shippable:            fp.Shipping.Shippable,
		LocalPickupPreferred: fp.Shipping.LocalPickupPreferred,
		ShippingNotes:        fp.Shipping.ShippingNotes,
		Pricing:              tiers,
		Featured:             fp.Featured,
		Active:               fp.Active,
	}
}
