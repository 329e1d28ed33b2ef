package points

import (
	"context"
	"log"
	"time"

	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// SweepResult summarizes one expiry sweep across all vendors.
// AffectedAccounts counts vendors whose balance was corrected; orphaned
// history without a balance row is flagged but not counted.
type SweepResult struct {
	ExpiredCount     int `json:"expired_count"`
	AffectedAccounts int `json:"affected_accounts"`
}

// SweepExpired flags all due history entries and applies the matching
// balance corrections. Each vendor is handled in its own transaction:
// flagging and decrementing commit together, so a crash mid-sweep cannot
// double-decrement on retry, and a rerun before the next tick finds nothing
// to flag. Per-vendor failures are logged and skipped; the sweep reports a
// summary instead of propagating row errors.
func (s *Service) SweepExpired(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	vendorIDs, err := s.repo.ListDueVendorIDs(now)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, vendorID := range vendorIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		expired, corrected, err := s.sweepVendor(vendorID, now)
		if err != nil {
			log.Printf("[Sweeper] expiry sweep failed for vendor %d: %v", vendorID, err)
			continue
		}
		result.ExpiredCount += expired
		if corrected {
			result.AffectedAccounts++
		}
	}
	return result, nil
}

func (s *Service) sweepVendor(vendorID uint, now time.Time) (int, bool, error) {
	expired := 0
	corrected := false
	var total uint
	var tier string
	var oldTier string

	err := s.repo.Transaction(func(tx Repository) error {
		due, err := tx.ListDueHistoryForUpdate(vendorID, now)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(due))
		sum := 0
		for _, entry := range due {
			ids = append(ids, entry.ID)
			sum += entry.Points
		}
		if err := tx.MarkHistoryExpired(ids); err != nil {
			return err
		}

		balance, err := tx.GetBalanceForUpdate(vendorID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// Orphaned history with no balance row; flags are enough.
				expired = len(due)
				log.Printf("[Sweeper] vendor %d has expired history but no balance row", vendorID)
				return nil
			}
			return err
		}

		// Floor at zero: sums can exceed the balance after manual
		// adjustments.
		oldTier = balance.Tier
		if uint(sum) >= balance.TotalPoints {
			balance.TotalPoints = 0
		} else {
			balance.TotalPoints -= uint(sum)
		}
		balance.Tier = TierForPoints(balance.TotalPoints)
		if err := tx.SaveBalance(balance); err != nil {
			return err
		}

		correction := &models.PointHistoryEntry{
			VendorID:   vendorID,
			Points:     -sum,
			ActionType: models.ActionPointsExpired,
		}
		if err := tx.AppendHistory(correction); err != nil {
			return err
		}

		expired = len(due)
		corrected = true
		total = balance.TotalPoints
		tier = balance.Tier
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	if corrected {
		if tierRank(tier) < tierRank(oldTier) {
			log.Printf("[Sweeper] vendor %d dropped from tier %s to %s after expiry", vendorID, normalizeTier(oldTier), tier)
		}
		s.publishBalanceChanged(vendorID, total, tier)
	}
	return expired, corrected, nil
}
