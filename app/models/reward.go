package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	RewardTypeExtraProducts   = "extra_products"
	RewardTypeExtraShareLinks = "extra_share_links"
	RewardTypePremiumSupport  = "premium_support"
)

// RewardCatalogEntry is admin-managed reference data describing a redeemable
// reward. RewardValue is a JSON payload whose shape depends on RewardType:
// {"amount": N} for quota rewards, {"duration_days": N} for premium support.
type RewardCatalogEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Description string    `gorm:"type:text" json:"description"`
	PointsCost  uint      `json:"points_cost" validate:"required,gt=0"`
	RewardType  string    `gorm:"type:varchar(50)" json:"reward_type" validate:"oneof=extra_products extra_share_links premium_support"`
	RewardValue string    `gorm:"type:text" json:"reward_value"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RewardCatalogEntry) TableName() string {
	return "rewards_catalog"
}

func (r *RewardCatalogEntry) Validate() error {
	return validator.New().Struct(r)
}

// RewardValuePayload is the decoded form of RewardValue.
type RewardValuePayload struct {
	Amount       uint `json:"amount,omitempty"`
	DurationDays uint `json:"duration_days,omitempty"`
}

// DecodeRewardValue parses the JSON reward payload. An empty payload decodes
// to the zero value so callers can treat missing fields as zero.
func (r *RewardCatalogEntry) DecodeRewardValue() (RewardValuePayload, error) {
	var p RewardValuePayload
	if r.RewardValue == "" {
		return p, nil
	}
	err := json.Unmarshal([]byte(r.RewardValue), &p)
	return p, err
}
