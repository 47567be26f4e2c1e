package models

import (
	"time"
)

// Product is a catalog listing. Catalog rows are reference data: they
// are imported from the product feed and read-only at runtime.
type Product struct {
	SKU              string `gorm:"column:sku;primaryKey"`
	Brand            string `gorm:"column:brand;not null"`
	Model            string `gorm:"column:model;not null"`
	Name             string `gorm:"column:name;not null"`
	Category         string `gorm:"column:category;not null"`
	ShortDescription string `gorm:"column:short_description"`
	LongDescription  string `gorm:"column:long_description"`
	Condition        string `gorm:"column:condition;not null"`
	ConditionNotes   string `gorm:"column:condition_notes"`
	Quantity         int    `gorm:"column:quantity;not null;default:0"`

	// JSON-serialized so the same schema works on postgres and sqlite.
	Images []string          `gorm:"column:images;serializer:json"`
	Tags   []string          `gorm:"column:tags;serializer:json"`
	Specs  map[string]string `gorm:"column:specs;serializer:json"`

	ShippingWeight       float64 `gorm:"column:shipping_weight"`
	Shippable            bool    `gorm:"column:shippable;not null;default:true"`
	LocalPickupPreferred bool    `gorm:"column:local_pickup_preferred;not null;default:false"`
	ShippingNotes        string  `gorm:"column:shipping_notes"`

	Pricing []PricingTier `gorm:"foreignKey:ProductSKU;references:SKU;constraint:OnDelete:CASCADE"`

	Featured bool `gorm:"column:featured;not null;default:false"`
	Active   bool `gorm:"column:active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
