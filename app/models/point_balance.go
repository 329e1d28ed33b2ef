package models

import "time"

const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// PointBalance holds the current loyalty point total and tier for a vendor.
// One row per vendor, created lazily on the first award.
type PointBalance struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VendorID    uint      `gorm:"uniqueIndex" json:"vendor_id"`
	TotalPoints uint      `gorm:"default:0" json:"total_points"`
	Tier        string    `gorm:"type:varchar(20);default:'bronze'" json:"tier"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
