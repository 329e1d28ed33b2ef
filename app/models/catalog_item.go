package models

import (
	"time"

	"gorm.io/gorm"
)

// CatalogItem is one listed piece of jewelry. Weight and cost components are
// nullable: gemstone-only listings carry no metal weight and are skipped by
// price recalculation.
type CatalogItem struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	VendorID           uint           `gorm:"index" json:"vendor_id"`
	Name               string         `gorm:"type:varchar(200)" json:"name"`
	SKU                string         `gorm:"type:varchar(100);index" json:"sku"`
	Category           string         `gorm:"type:varchar(100)" json:"category"`
	NetWeight          *float64       `json:"net_weight,omitempty"`
	WeightGrams        *float64       `json:"weight_grams,omitempty"`
	PurityFractionUsed *float64       `json:"purity_fraction_used,omitempty"`
	DiamondValue       *float64       `json:"diamond_value,omitempty"`
	MakingCharges      *float64       `json:"making_charges,omitempty"`
	CertificationCost  *float64       `json:"certification_cost,omitempty"`
	GemstoneCost       *float64       `json:"gemstone_cost,omitempty"`
	CostPrice          float64        `json:"cost_price"`
	RetailPrice        float64        `json:"retail_price"`
	GoldPerGramPrice   float64        `json:"gold_per_gram_price"`
	ViewCount          uint64         `gorm:"default:0" json:"view_count"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// MetalWeight returns the weight used for pricing, preferring NetWeight.
// The second return is false when the item has no usable weight.
func (ci *CatalogItem) MetalWeight() (float64, bool) {
	if ci.NetWeight != nil && *ci.NetWeight > 0 {
		return *ci.NetWeight, true
	}
	if ci.WeightGrams != nil && *ci.WeightGrams > 0 {
		return *ci.WeightGrams, true
	}
	return 0, false
}
