package models

import "time"

const (
	RedemptionStatusPending = "pending"
	RedemptionStatusApplied = "applied"
	RedemptionStatusFailed  = "failed"
)

// Redemption records one exchange of points for a reward. Points are always
// deducted before the row reaches status "applied"; rewards without an
// automatic side effect stay "pending" for manual fulfillment.
type Redemption struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UUID          string     `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	VendorID      uint       `gorm:"index" json:"vendor_id"`
	RewardID      uint       `gorm:"index" json:"reward_id"`
	PointsSpent   uint       `json:"points_spent"`
	RewardDetails string     `gorm:"type:text" json:"reward_details"`
	Status        string     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AppliedAt     *time.Time `json:"applied_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
