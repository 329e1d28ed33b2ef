package repository

import (
	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// VendorRepository defines the interface for vendor-related database operations
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByEmail(email string) (*models.Vendor, error)
	GetByAPIKeyHash(hash string) (*models.Vendor, error)
	Update(vendor *models.Vendor) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Vendor, error)
	Count() (int64, error)
	Search(query string) ([]models.Vendor, error)
}

// CatalogItemRepository defines the interface for catalog item operations
type CatalogItemRepository interface {
	Create(item *models.CatalogItem) error
	GetByID(id uint) (*models.CatalogItem, error)
	GetByVendorID(vendorID uint, offset, limit int) ([]models.CatalogItem, error)
	Update(item *models.CatalogItem) error
	Delete(id uint) error
	CountByVendorID(vendorID uint) (int64, error)
}

// RewardRepository defines the interface for reward catalog operations
type RewardRepository interface {
	Create(reward *models.RewardCatalogEntry) error
	GetByID(id uint) (*models.RewardCatalogEntry, error)
	ListActive() ([]models.RewardCatalogEntry, error)
	ListAll() ([]models.RewardCatalogEntry, error)
	Update(reward *models.RewardCatalogEntry) error
}

// RedemptionRepository defines read paths over redemption records
type RedemptionRepository interface {
	GetByUUID(uuid string) (*models.Redemption, error)
	ListByVendorID(vendorID uint) ([]models.Redemption, error)
	ListPending(offset, limit int) ([]models.Redemption, error)
}

// Repositories bundles all repository instances
type Repositories struct {
	Vendor      VendorRepository
	CatalogItem CatalogItemRepository
	Reward      RewardRepository
	Redemption  RedemptionRepository
}

// NewRepositories creates all repositories with the given database connection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vendor:      NewVendorRepository(db),
		CatalogItem: NewCatalogItemRepository(db),
		Reward:      NewRewardRepository(db),
		Redemption:  NewRedemptionRepository(db),
	}
}
