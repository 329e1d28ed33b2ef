package repository

import (
	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// redemptionRepository implements the RedemptionRepository interface
type redemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository creates a new redemption repository instance
func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemptionRepository{db: db}
}

func (r *redemptionRepository) GetByUUID(uuid string) (*models.Redemption, error) {
	var redemption models.Redemption
	err := r.db.Where("uuid = ?", uuid).First(&redemption).Error
	if err != nil {
		return nil, err
	}
	return &redemption, nil
}

func (r *redemptionRepository) ListByVendorID(vendorID uint) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := r.db.Where("vendor_id = ?", vendorID).Order("created_at DESC").Find(&redemptions).Error
	return redemptions, err
}

// ListPending returns redemptions awaiting manual fulfillment, oldest first.
func (r *redemptionRepository) ListPending(offset, limit int) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := r.db.Where("status = ?", models.RedemptionStatusPending).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&redemptions).Error
	return redemptions, err
}
