package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultMaxProducts   = 100
	DefaultMaxShareLinks = 10
)

// VendorPermissions holds the per-vendor quota caps adjustable through
// redeemed rewards. One row per vendor, created lazily with plan defaults.
type VendorPermissions struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	VendorID            uint       `gorm:"uniqueIndex" json:"vendor_id"`
	MaxProducts         uint       `gorm:"default:100" json:"max_products"`
	MaxShareLinks       uint       `gorm:"default:10" json:"max_share_links"`
	PremiumSupportUntil *time.Time `json:"premium_support_until,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// GetOrCreateVendorPermissions returns existing permissions or creates defaults
func GetOrCreateVendorPermissions(db *gorm.DB, vendorID uint) (*VendorPermissions, error) {
	var vp VendorPermissions
	if err := db.Where("vendor_id = ?", vendorID).First(&vp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			vp = VendorPermissions{
				VendorID:      vendorID,
				MaxProducts:   DefaultMaxProducts,
				MaxShareLinks: DefaultMaxShareLinks,
			}
			if err := db.Create(&vp).Error; err != nil {
				return nil, err
			}
			return &vp, nil
		}
		return nil, err
	}
	return &vp, nil
}

// HasPremiumSupport reports whether premium support is active right now.
func (vp *VendorPermissions) HasPremiumSupport() bool {
	return vp != nil && vp.PremiumSupportUntil != nil && vp.PremiumSupportUntil.After(time.Now())
}
