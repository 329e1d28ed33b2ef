package pricing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/velorajewels/velora/app/models"
	"github.com/velorajewels/velora/internal/pkg/cache"
	"gorm.io/gorm"
)

// ErrInvalidRate rejects non-positive per-gram rates.
var ErrInvalidRate = errors.New("rate per gram must be positive")

const rateCacheExpiration = 12 * time.Hour

// Service recomputes catalog item prices from the vendor's metal rate.
type Service struct {
	repo Repository
}

// NewService creates a pricing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a pricing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Recalculate reprices every weighted catalog item of the vendor at the
// given per-gram rate. Items without a usable weight (gemstone or
// diamond-only listings) are skipped. Updates are per item with no
// cross-item atomicity: failures are logged and counted, never rolled back.
func (s *Service) Recalculate(ctx context.Context, vendorID uint, ratePerGram float64) (int, error) {
	_ = ctx
	if vendorID == 0 {
		return 0, errors.New("vendor_id is required")
	}
	if ratePerGram <= 0 {
		return 0, ErrInvalidRate
	}

	items, err := s.repo.ListActiveItems(vendorID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range items {
		item := &items[i]
		weight, ok := item.MetalWeight()
		if !ok {
			continue
		}

		total := ItemCost(weight, deref(item.PurityFractionUsed), ratePerGram,
			deref(item.DiamondValue), deref(item.MakingCharges),
			deref(item.CertificationCost), deref(item.GemstoneCost))

		if err := s.repo.UpdateItemPricing(item.ID, total, total, ratePerGram); err != nil {
			log.Printf("price recalculation failed for item %d (vendor %d): %v", item.ID, vendorID, err)
			continue
		}
		updated++
	}
	return updated, nil
}

// ItemCost computes the repriced cost of one item. Retail equals cost after
// recalculation; margin is a product-level policy applied elsewhere.
func ItemCost(weight, rawPurity, ratePerGram, diamond, making, certification, gemstone float64) float64 {
	goldValue := weight * NormalizePurity(rawPurity) * ratePerGram
	return round2(goldValue + diamond + making + certification + gemstone)
}

// UpdateMetalRate records a new rate for the vendor and reprices the
// catalog against it. Returns the number of repriced items.
func (s *Service) UpdateMetalRate(ctx context.Context, vendorID uint, ratePerGram float64) (int, error) {
	if vendorID == 0 {
		return 0, errors.New("vendor_id is required")
	}
	if ratePerGram <= 0 {
		return 0, ErrInvalidRate
	}

	rate := &models.MetalRate{
		VendorID:    vendorID,
		Metal:       models.MetalGold,
		RatePerGram: ratePerGram,
		EffectiveAt: time.Now(),
	}
	if err := s.repo.AppendMetalRate(rate); err != nil {
		return 0, err
	}

	if err := cache.Set(rateCacheKey(vendorID), fmt.Sprintf("%.2f", ratePerGram), rateCacheExpiration); err != nil {
		log.Printf("failed to cache metal rate for vendor %d: %v", vendorID, err)
	}

	return s.Recalculate(ctx, vendorID, ratePerGram)
}

// CurrentMetalRate returns the vendor's latest gold rate.
func (s *Service) CurrentMetalRate(ctx context.Context, vendorID uint) (*models.MetalRate, error) {
	_ = ctx
	return s.repo.LatestMetalRate(vendorID, models.MetalGold)
}

func rateCacheKey(vendorID uint) string {
	return fmt.Sprintf("pricing:metalrate:%d", vendorID)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
