package pricing

import (
	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the pricing service.
type Repository interface {
	ListActiveItems(vendorID uint) ([]models.CatalogItem, error)
	UpdateItemPricing(itemID uint, costPrice, retailPrice, goldPerGramPrice float64) error
	AppendMetalRate(rate *models.MetalRate) error
	LatestMetalRate(vendorID uint, metal string) (*models.MetalRate, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a pricing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListActiveItems(vendorID uint) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Where("vendor_id = ? AND is_active = ?", vendorID, true).Find(&items).Error
	return items, err
}

func (r *gormRepository) UpdateItemPricing(itemID uint, costPrice, retailPrice, goldPerGramPrice float64) error {
	return r.db.Model(&models.CatalogItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"cost_price":          costPrice,
			"retail_price":        retailPrice,
			"gold_per_gram_price": goldPerGramPrice,
		}).Error
}

func (r *gormRepository) AppendMetalRate(rate *models.MetalRate) error {
	return r.db.Create(rate).Error
}

func (r *gormRepository) LatestMetalRate(vendorID uint, metal string) (*models.MetalRate, error) {
	var rate models.MetalRate
	err := r.db.Where("vendor_id = ? AND metal = ?", vendorID, metal).
		Order("effective_at DESC, id DESC").
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
