package models

import "time"

const (
	ActionProductAdded     = "product_added"
	ActionShareLinkCreated = "share_link_created"
	ActionProductViewed    = "product_viewed"
	ActionCatalogShared    = "catalog_shared"
	ActionFirstProduct     = "first_product"
	ActionProfileCompleted = "profile_completed"
	ActionRewardRedemption = "reward_redemption"
	ActionPointsExpired    = "points_expired"
)

// PointHistoryEntry is one append-only ledger record. Awards carry positive
// points and an expiry date; corrections (expiry sweep, redemption debits)
// carry negative points and no expiry. Only the Expired flag is ever
// mutated, and only from false to true.
type PointHistoryEntry struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	VendorID      uint       `gorm:"index" json:"vendor_id"`
	Points        int        `json:"points"`
	ActionType    string     `gorm:"type:varchar(50);index" json:"action_type"`
	ActionDetails string     `gorm:"type:text" json:"action_details,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `gorm:"index" json:"expires_at,omitempty"`
	Expired       bool       `gorm:"default:false;index" json:"expired"`
}

func (PointHistoryEntry) TableName() string {
	return "points_history"
}
