package repository

import (
	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// catalogItemRepository implements the CatalogItemRepository interface
type catalogItemRepository struct {
	db *gorm.DB
}

// NewCatalogItemRepository creates a new catalog item repository instance
func NewCatalogItemRepository(db *gorm.DB) CatalogItemRepository {
	return &catalogItemRepository{db: db}
}

func (r *catalogItemRepository) Create(item *models.CatalogItem) error {
	return r.db.Create(item).Error
}

func (r *catalogItemRepository) GetByID(id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogItemRepository) GetByVendorID(vendorID uint, offset, limit int) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *catalogItemRepository) Update(item *models.CatalogItem) error {
	return r.db.Save(item).Error
}

func (r *catalogItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.CatalogItem{}, id).Error
}

func (r *catalogItemRepository) CountByVendorID(vendorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CatalogItem{}).Where("vendor_id = ?", vendorID).Count(&count).Error
	return count, err
}
