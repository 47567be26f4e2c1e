package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingTier captures one row of a product's volume price break.
// Position preserves the feed's tier order; a nil MaxQty means the
// tier is unbounded.
type PricingTier struct {
	ID              uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ProductSKU      string          `gorm:"column:product_sku;not null;index"`
	Name            string          `gorm:"column:name"`
	Position        int             `gorm:"column:position;not null;default:0"`
	MinQty          int             `gorm:"column:min_qty;not null"`
	MaxQty          *int            `gorm:"column:max_qty"`
	PricePerUnit    decimal.Decimal `gorm:"column:price_per_unit;type:numeric(10,2);not null"`
	DiscountPercent int             `gorm:"column:discount_percent;not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
