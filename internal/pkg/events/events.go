package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/velorajewels/velora/internal/pkg/cache"
)

const balanceChannel = "points:balance_changed"

// RedisPublisher pushes domain events onto Redis pub/sub channels. The
// ledger publishes; whoever feeds the frontend (websocket gateway, bell
// notifications) subscribes.
type RedisPublisher struct{}

func NewRedisPublisher() *RedisPublisher {
	return &RedisPublisher{}
}

type balanceChangedEvent struct {
	VendorID    uint      `json:"vendor_id"`
	TotalPoints uint      `json:"total_points"`
	Tier        string    `json:"tier"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BalanceChanged publishes a balance-change notification. Delivery is best
// effort: the ledger transaction has already committed, so a publish
// failure is logged and dropped rather than surfaced.
func (p *RedisPublisher) BalanceChanged(vendorID uint, totalPoints uint, tier string) {
	payload, err := json.Marshal(balanceChangedEvent{
		VendorID:    vendorID,
		TotalPoints: totalPoints,
		Tier:        tier,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		log.Printf("failed to encode balance event for vendor %d: %v", vendorID, err)
		return
	}
	if err := cache.Publish(balanceChannel, payload); err != nil {
		log.Printf("failed to publish balance event for vendor %d: %v", vendorID, err)
	}
}
