package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/itprodirect/surplus-backend/pkg/db/models"
)

// Repository reads catalog rows. Writes happen only through the feed
// importer; the API never mutates products.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns every active product with its pricing tiers in
// feed order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Pricing", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("active = ?", true).
		Order("sku ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("listing active products: %w", err)
	}
	return products, nil
}

// ReplaceAll swaps the catalog contents for the provided products
// inside one transaction. Used by the feed importer.
func (r *Repository) ReplaceAll(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.PricingTier{}).Error; err != nil {
			return fmt.Errorf("clearing pricing tiers: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("clearing products: %w", err)
		}
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return fmt.Errorf("inserting product %s: %w", products[i].SKU, err)
			}
		}
		return nil
	})
}

// AutoMigrate creates the catalog tables.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&models.Product{}, &models.PricingTier{})
}
