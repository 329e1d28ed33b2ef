package repository

import (
	"strings"

	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// vendorRepository implements the VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor in the database
func (r *vendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// GetByID retrieves a vendor by their ID
func (r *vendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByEmail retrieves a vendor by their email address
func (r *vendorRepository) GetByEmail(email string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Where("email = ?", email).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByAPIKeyHash resolves an active API key hash to its vendor.
func (r *vendorRepository) GetByAPIKeyHash(hash string) (*models.Vendor, error) {
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var vendor models.Vendor
	err := r.db.Where("api_key_hash = ? AND api_key_hash <> '' AND api_key_revoked_at IS NULL", trimmed).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update updates an existing vendor in the database
func (r *vendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

// Delete soft deletes a vendor by their ID
func (r *vendorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vendor{}, id).Error
}

// List retrieves a paginated list of vendors
func (r *vendorRepository) List(offset, limit int) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&vendors).Error
	return vendors, err
}

// Count returns the total number of vendors
func (r *vendorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vendor{}).Count(&count).Error
	return count, err
}

// Search searches for vendors by business name or email
func (r *vendorRepository) Search(query string) ([]models.Vendor, error) {
	var vendors []models.Vendor
	searchPattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("business_name LIKE ? OR email LIKE ?", searchPattern, searchPattern).Find(&vendors).Error
	return vendors, err
}
