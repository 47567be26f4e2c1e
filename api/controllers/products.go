package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/itprodirect/surplus-backend/api/responses"
	"github.com/itprodirect/surplus-backend/api/validators"
	"github.com/itprodirect/surplus-backend/internal/catalog"
	"github.com/itprodirect/surplus-backend/internal/pricing"
	"github.com/itprodirect/surplus-backend/pkg/db/models"
	pkgerrors "github.com/itprodirect/surplus-backend/pkg/errors"
	"github.com/itprodirect/surplus-backend/pkg/logger"
)

// ListProducts returns active catalog entries, optionally filtered by
// brand, category, or featured=true.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query := r.URL.Query()
		brand := strings.TrimSpace(query.Get("brand"))
		category := strings.TrimSpace(query.Get("category"))

		var products []models.Product
		switch {
		case query.Get("featured") == "true":
			products = svc.Featured()
		case brand != "" || category != "":
			products = svc.Filter(brand, category)
		default:
			products = svc.Products()
		}

		out := make([]productResponse, 0, len(products))
		for i := range products {
			out = append(out, toProductResponse(&products[i]))
		}
		responses.WriteData(w, out)
	}
}

// GetProduct returns one active catalog entry by SKU.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		sku := chi.URLParam(r, "sku")
		product, ok := svc.ProductBySKU(sku)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteData(w, toProductResponse(product))
	}
}

type quoteRequest struct {
	Quantity int `json:"quantity"`
}

// QuoteProduct prices a quantity of one product against its tiers.
func QuoteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), chi.URLParam(r, "sku"), payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, toQuoteResponse(quote))
	}
}

// ListBrands returns the distinct brands of active products.
func ListBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteData(w, svc.Brands())
	}
}

// ListCategories returns the distinct categories of active products.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteData(w, svc.Categories())
	}
}

// Response DTOs mirror the storefront's products.json shape so the
// site can consume either source unchanged.

type productResponse struct {
	SKU              string            `json:"sku"`
	Brand            string            `json:"brand"`
	Model            string            `json:"model"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	ShortDescription string            `json:"shortDescription"`
	LongDescription  string            `json:"longDescription"`
	Condition        string            `json:"condition"`
	ConditionNotes   string            `json:"conditionNotes,omitempty"`
	Quantity         int               `json:"quantity"`
	Pricing          []tierResponse    `json:"pricing"`
	Images           []string          `json:"images"`
	Tags             []string          `json:"tags"`
	Shipping         shippingResponse  `json:"shipping"`
	Specs            map[string]string `json:"specs"`
	Featured         bool              `json:"featured"`
}

type tierResponse struct {
	Tier            string  `json:"tier"`
	Label           string  `json:"label"`
	MinQty          int     `json:"minQty"`
	MaxQty          *int    `json:"maxQty"`
	PricePerUnit    float64 `json:"pricePerUnit"`
	DiscountPercent int     `json:"discountPercent"`
}

type shippingResponse struct {
	Weight               float64 `json:"weight"`
	Shippable            bool    `json:"shippable"`
	LocalPickupPreferred bool    `json:"localPickupPreferred"`
	ShippingNotes        string  `json:"shippingNotes,omitempty"`
}

type quoteResponse struct {
	SKU       string        `json:"sku"`
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	Tier      *tierResponse `json:"tier,omitempty"`
	TierLabel string        `json:"tierLabel,omitempty"`
	UnitPrice float64       `json:"unitPrice"`
	LineTotal float64       `json:"lineTotal"`
}

func toProductResponse(p *models.Product) productResponse {
	tiers := make([]tierResponse, 0, len(p.Pricing))
	for _, row := range p.Pricing {
		tiers = append(tiers, tierResponse{
			Tier:            row.Name,
			Label:           tierLabel(row.MinQty, row.MaxQty),
			MinQty:          row.MinQty,
			MaxQty:          row.MaxQty,
			PricePerUnit:    row.PricePerUnit.InexactFloat64(),
			DiscountPercent: row.DiscountPercent,
		})
	}

	return productResponse{
		SKU:              p.SKU,
		Brand:            p.Brand,
		Model:            p.Model,
		Name:             p.Name,
		Category:         p.Category,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Condition:        p.Condition,
		ConditionNotes:   p.ConditionNotes,
		Quantity:         p.Quantity,
		Pricing:          tiers,
		Images:           p.Images,
		Tags:             p.Tags,
		Shipping: shippingResponse{
			Weight:               p.ShippingWeight,
			Shippable:            p.Shippable,
			LocalPickupPreferred: p.LocalPickupPreferred,
			ShippingNotes:        p.ShippingNotes,
		},
		Specs:    p.Specs,
		Featured: p.Featured,
	}
}

func toQuoteResponse(q *catalog.Quote) quoteResponse {
	out := quoteResponse{
		SKU:       q.SKU,
		Name:      q.Name,
		Quantity:  q.Quantity,
		TierLabel: q.TierLabel,
		UnitPrice: q.UnitPrice.InexactFloat64(),
		LineTotal: q.LineTotal.InexactFloat64(),
	}
	if q.Tier != nil {
		out.Tier = &tierResponse{
			Tier:            q.Tier.Name,
			Label:           q.TierLabel,
			MinQty:          q.Tier.MinQty,
			MaxQty:          q.Tier.MaxQty,
			PricePerUnit:    q.Tier.PricePerUnit.InexactFloat64(),
			DiscountPercent: q.Tier.DiscountPercent,
		}
	}
	return out
}

func tierLabel(minQty int, maxQty *int) string {
	return pricing.TierLabel(pricing.Tier{MinQty: minQty, MaxQty: maxQty})
}
