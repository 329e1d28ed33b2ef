package models

import "time"

const MetalGold = "gold"

// MetalRate is an append-only log of the per-gram rates a vendor has set.
// The most recent row per vendor and metal is the current rate.
type MetalRate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VendorID    uint      `gorm:"index" json:"vendor_id"`
	Metal       string    `gorm:"type:varchar(30);default:'gold'" json:"metal"`
	RatePerGram float64   `json:"rate_per_gram"`
	EffectiveAt time.Time `json:"effective_at"`
	CreatedAt   time.Time `json:"created_at"`
}
