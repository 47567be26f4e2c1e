package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/itprodirect/surplus-backend/internal/pricing"
	"github.com/itprodirect/surplus-backend/pkg/db/models"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
)

// Service exposes read-only catalog lookups and quantity quotes. The
// catalog is reference data loaded once per process; all lookups run
// against the in-memory snapshot.
type Service interface {
	Products() []models.Product
	ProductBySKU(sku string) (*models.Product, bool)
	Featured() []models.Product
	Filter(brand, category string) []models.Product
	Brands() []string
	Categories() []string
	Quote(ctx context.Context, sku string, quantity int) (*Quote, error)
}

type lister interface {
	ListActive(ctx context.Context) ([]models.Product, error)
}

type service struct {
	products []models.Product
	bySKU    map[string]*models.Product
}

// NewService loads the active catalog once and serves it from memory.
func NewService(ctx context.Context, repo lister) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	products, err := repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading catalog")
	}

	svc := &service{
		products: products,
		bySKU:    make(map[string]*models.Product, len(products)),
	}
	for i := range products {
		svc.bySKU[products[i].SKU] = &products[i]
	}
	return svc, nil
}

func (s *service) Products() []models.Product {
	return s.products
}

func (s *service) ProductBySKU(sku string) (*models.Product, bool) {
	product, ok := s.bySKU[sku]
	return product, ok
}

func (s *service) Featured() []models.Product {
	var out []models.Product
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Filter narrows by brand and/or category; empty arguments match
// everything. Brand comparison is case-insensitive, matching the way
// the storefront filters worked.
func (s *service) Filter(brand, category string) []models.Product {
	var out []models.Product
	for _, p := range s.products {
		if brand != "" && !strings.EqualFold(p.Brand, brand) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *service) Brands() []string {
	return s.distinct(func(p models.Product) string { return p.Brand })
}

func (s *service) Categories() []string {
	return s.distinct(func(p models.Product) string { return p.Category })
}

func (s *service) distinct(key func(models.Product) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.products {
		k := key(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Quote is a priced quantity for one product.
type Quote struct {
	SKU       string
	Name      string
	Quantity  int
	Tier      *pricing.Tier
	TierLabel string
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote resolves the applicable tier and totals for a quantity of one
// product. Unknown or inactive SKUs are not found; quantity below one
// is rejected here so the pricing layer stays total.
func (s *service) Quote(ctx context.Context, sku string, quantity int) (*Quote, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails([]string{"Quantity must be at least 1"})
	}
	product, ok := s.ProductBySKU(sku)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	tiers := TiersOf(product)
	unitPrice := pricing.UnitPriceFor(tiers, quantity)

	quote := &Quote{
		SKU:       product.SKU,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: pricing.LineTotal(unitPrice, quantity),
	}
	if tier, matched := pricing.ResolveTier(tiers, quantity); matched {
		quote.Tier = &tier
		quote.TierLabel = pricing.TierLabel(tier)
	}
	return quote, nil
}

// TiersOf converts a product's stored price break into engine tiers.
func TiersOf(product *models.Product) []pricing.Tier {
	tiers := make([]pricing.Tier, 0, len(product.Pricing))
	for _, row := range product.Pricing {
		tiers = append(tiers, pricing.Tier{
			Name:            row.Name,
			MinQty:          row.MinQty,
			MaxQty:          row.MaxQty,
			PricePerUnit:    row.PricePerUnit,
			DiscountPercent: row.DiscountPercent,
		})
	}
	return tiers
}
