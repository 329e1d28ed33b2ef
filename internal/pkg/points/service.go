package points

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// Sentinel errors for expected, user-facing outcomes. Anything else coming
// out of the service is a persistence failure and must stay opaque to the
// caller.
var (
	ErrInvalidAction      = errors.New("invalid action type")
	ErrBalanceNotFound    = errors.New("point balance not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// EventPublisher is notified after a balance-changing transaction commits.
// The notification layer (cache pub/sub) subscribes; the ledger itself does
// not manage subscribers.
type EventPublisher interface {
	BalanceChanged(vendorID uint, totalPoints uint, tier string)
}

// Service implements the loyalty ledger: awards, redemptions and reads.
type Service struct {
	repo   Repository
	events EventPublisher
}

// NewService creates a points service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a points service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// WithEvents attaches an event publisher and returns the service.
func (s *Service) WithEvents(events EventPublisher) *Service {
	s.events = events
	return s
}

// AwardResult is the outcome of a successful point award.
type AwardResult struct {
	PointsAwarded int    `json:"points_awarded"`
	ActionType    string `json:"action_type"`
	TotalPoints   uint   `json:"total_points"`
	Tier          string `json:"tier"`
}

// Award credits a vendor for a rewardable action. The balance update, tier
// recomputation and history append happen in one transaction; the balance
// row lock serializes concurrent awards for the same vendor.
func (s *Service) Award(ctx context.Context, vendorID uint, actionType string, actionDetails string) (*AwardResult, error) {
	_ = ctx
	if vendorID == 0 {
		return nil, errors.New("vendor_id is required")
	}
	pts, ok := PointsForAction(actionType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, actionType)
	}

	var result AwardResult
	err := s.repo.Transaction(func(tx Repository) error {
		balance, err := tx.GetOrCreateBalanceForUpdate(vendorID)
		if err != nil {
			return err
		}

		balance.TotalPoints += uint(pts)
		balance.Tier = TierForPoints(balance.TotalPoints)
		if err := tx.SaveBalance(balance); err != nil {
			return err
		}

		expiresAt := time.Now().Add(AwardExpiry)
		entry := &models.PointHistoryEntry{
			VendorID:      vendorID,
			Points:        pts,
			ActionType:    actionType,
			ActionDetails: actionDetails,
			ExpiresAt:     &expiresAt,
		}
		if err := tx.AppendHistory(entry); err != nil {
			return err
		}

		result = AwardResult{
			PointsAwarded: pts,
			ActionType:    actionType,
			TotalPoints:   balance.TotalPoints,
			Tier:          balance.Tier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishBalanceChanged(vendorID, result.TotalPoints, result.Tier)
	return &result, nil
}

// RedeemResult is the outcome of a successful redemption.
type RedeemResult struct {
	Redemption      *models.Redemption `json:"redemption"`
	RemainingPoints uint               `json:"remaining_points"`
	Tier            string             `json:"tier"`
}

// Redeem exchanges points for a cataloged reward. The point deduction, the
// debit history entry, the redemption record and the quota side effect all
// commit together; a side-effect failure rolls the deduction back, so no
// compensating refund path exists or is needed.
func (s *Service) Redeem(ctx context.Context, vendorID uint, rewardID uint) (*RedeemResult, error) {
	_ = ctx
	if vendorID == 0 || rewardID == 0 {
		return nil, errors.New("vendor_id and reward_id are required")
	}

	var result RedeemResult
	err := s.repo.Transaction(func(tx Repository) error {
		reward, err := tx.GetActiveReward(rewardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}
		payload, err := reward.DecodeRewardValue()
		if err != nil {
			return fmt.Errorf("reward %d has malformed value payload: %w", reward.ID, err)
		}

		balance, err := tx.GetBalanceForUpdate(vendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBalanceNotFound
			}
			return err
		}
		if balance.TotalPoints < reward.PointsCost {
			return ErrInsufficientPoints
		}

		balance.TotalPoints -= reward.PointsCost
		balance.Tier = TierForPoints(balance.TotalPoints)
		if err := tx.SaveBalance(balance); err != nil {
			return err
		}

		entry := &models.PointHistoryEntry{
			VendorID:      vendorID,
			Points:        -int(reward.PointsCost),
			ActionType:    models.ActionRewardRedemption,
			ActionDetails: fmt.Sprintf(`{"reward_id":%d,"reward_name":%q}`, reward.ID, reward.Name),
		}
		if err := tx.AppendHistory(entry); err != nil {
			return err
		}

		redemption := &models.Redemption{
			UUID:          uuid.New().String(),
			VendorID:      vendorID,
			RewardID:      reward.ID,
			PointsSpent:   reward.PointsCost,
			RewardDetails: reward.RewardValue,
			Status:        models.RedemptionStatusPending,
		}
		if reward.RewardType == models.RewardTypePremiumSupport && payload.DurationDays > 0 {
			until := time.Now().Add(time.Duration(payload.DurationDays) * 24 * time.Hour)
			redemption.ExpiresAt = &until
		}
		if err := tx.CreateRedemption(redemption); err != nil {
			return err
		}

		applied, err := s.applyRewardSideEffect(tx, vendorID, reward, payload, redemption)
		if err != nil {
			return err
		}
		if applied {
			now := time.Now()
			redemption.Status = models.RedemptionStatusApplied
			redemption.AppliedAt = &now
			if err := tx.SaveRedemption(redemption); err != nil {
				return err
			}
		}

		result = RedeemResult{
			Redemption:      redemption,
			RemainingPoints: balance.TotalPoints,
			Tier:            balance.Tier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishBalanceChanged(vendorID, result.RemainingPoints, result.Tier)
	return &result, nil
}

// applyRewardSideEffect performs the reward's effect inside the redemption
// transaction. Returns false for reward types that need manual fulfillment.
func (s *Service) applyRewardSideEffect(tx Repository, vendorID uint, reward *models.RewardCatalogEntry, payload models.RewardValuePayload, redemption *models.Redemption) (bool, error) {
	switch reward.RewardType {
	case models.RewardTypeExtraProducts, models.RewardTypeExtraShareLinks:
		if payload.Amount == 0 {
			return false, fmt.Errorf("reward %d has no quota amount", reward.ID)
		}
		vp, err := tx.GetOrCreatePermissionsForUpdate(vendorID)
		if err != nil {
			return false, err
		}
		if reward.RewardType == models.RewardTypeExtraProducts {
			vp.MaxProducts += payload.Amount
		} else {
			vp.MaxShareLinks += payload.Amount
		}
		return true, tx.SavePermissions(vp)
	case models.RewardTypePremiumSupport:
		if redemption.ExpiresAt == nil {
			return false, nil
		}
		vp, err := tx.GetOrCreatePermissionsForUpdate(vendorID)
		if err != nil {
			return false, err
		}
		// Extend rather than overwrite when support is already running.
		if vp.PremiumSupportUntil == nil || vp.PremiumSupportUntil.Before(*redemption.ExpiresAt) {
			vp.PremiumSupportUntil = redemption.ExpiresAt
		}
		return true, tx.SavePermissions(vp)
	default:
		return false, nil
	}
}

// Balance returns the vendor's current balance, lazily treating a missing
// row as zero points on the bronze tier.
func (s *Service) Balance(ctx context.Context, vendorID uint) (*models.PointBalance, error) {
	_ = ctx
	balance, err := s.repo.GetBalance(vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.PointBalance{VendorID: vendorID, TotalPoints: 0, Tier: models.TierBronze}, nil
		}
		return nil, err
	}
	return balance, nil
}

// History returns the vendor's ledger entries, newest first.
func (s *Service) History(ctx context.Context, vendorID uint, limit int) ([]models.PointHistoryEntry, error) {
	_ = ctx
	return s.repo.ListHistory(vendorID, limit)
}

// Rewards returns the active reward catalog.
func (s *Service) Rewards(ctx context.Context) ([]models.RewardCatalogEntry, error) {
	_ = ctx
	return s.repo.ListActiveRewards()
}

// Redemptions returns the vendor's redemption records, newest first.
func (s *Service) Redemptions(ctx context.Context, vendorID uint) ([]models.Redemption, error) {
	_ = ctx
	return s.repo.ListRedemptions(vendorID)
}

func (s *Service) publishBalanceChanged(vendorID uint, total uint, tier string) {
	if s.events == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("balance change notification panicked for vendor %d: %v", vendorID, r)
		}
	}()
	s.events.BalanceChanged(vendorID, total, tier)
}
