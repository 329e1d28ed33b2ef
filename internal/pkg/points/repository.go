package points

import (
	"time"

	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the points service and sweeper.
// Mutating operations are meant to run inside Transaction so that ledger
// writes stay atomic; the *ForUpdate variants take a row lock, which is the
// serialization point for concurrent awards, redemptions and sweeps against
// the same vendor.
type Repository interface {
	Transaction(fn func(Repository) error) error

	GetBalance(vendorID uint) (*models.PointBalance, error)
	GetOrCreateBalanceForUpdate(vendorID uint) (*models.PointBalance, error)
	GetBalanceForUpdate(vendorID uint) (*models.PointBalance, error)
	SaveBalance(pb *models.PointBalance) error

	AppendHistory(entry *models.PointHistoryEntry) error
	ListHistory(vendorID uint, limit int) ([]models.PointHistoryEntry, error)

	GetActiveReward(rewardID uint) (*models.RewardCatalogEntry, error)
	ListActiveRewards() ([]models.RewardCatalogEntry, error)
	CreateRedemption(r *models.Redemption) error
	SaveRedemption(r *models.Redemption) error
	ListRedemptions(vendorID uint) ([]models.Redemption, error)

	GetOrCreatePermissionsForUpdate(vendorID uint) (*models.VendorPermissions, error)
	SavePermissions(vp *models.VendorPermissions) error

	ListDueVendorIDs(now time.Time) ([]uint, error)
	ListDueHistoryForUpdate(vendorID uint, now time.Time) ([]models.PointHistoryEntry, error)
	MarkHistoryExpired(ids []uint) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a points repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) GetBalance(vendorID uint) (*models.PointBalance, error) {
	var pb models.PointBalance
	if err := r.db.Where("vendor_id = ?", vendorID).First(&pb).Error; err != nil {
		return nil, err
	}
	return &pb, nil
}

func (r *gormRepository) GetBalanceForUpdate(vendorID uint) (*models.PointBalance, error) {
	var pb models.PointBalance
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ?", vendorID).
		First(&pb).Error
	if err != nil {
		return nil, err
	}
	return &pb, nil
}

func (r *gormRepository) GetOrCreateBalanceForUpdate(vendorID uint) (*models.PointBalance, error) {
	pb, err := r.GetBalanceForUpdate(vendorID)
	if err == nil {
		return pb, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	fresh := models.PointBalance{VendorID: vendorID, TotalPoints: 0, Tier: models.TierBronze}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vendor_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	// Re-read under lock: a concurrent creator may have won the insert.
	return r.GetBalanceForUpdate(vendorID)
}

func (r *gormRepository) SaveBalance(pb *models.PointBalance) error {
	return r.db.Save(pb).Error
}

func (r *gormRepository) AppendHistory(entry *models.PointHistoryEntry) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) ListHistory(vendorID uint, limit int) ([]models.PointHistoryEntry, error) {
	var entries []models.PointHistoryEntry
	q := r.db.Where("vendor_id = ?", vendorID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (r *gormRepository) GetActiveReward(rewardID uint) (*models.RewardCatalogEntry, error) {
	var reward models.RewardCatalogEntry
	err := r.db.Where("id = ? AND is_active = ?", rewardID, true).First(&reward).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *gormRepository) ListActiveRewards() ([]models.RewardCatalogEntry, error) {
	var rewards []models.RewardCatalogEntry
	err := r.db.Where("is_active = ?", true).Order("points_cost ASC").Find(&rewards).Error
	return rewards, err
}

func (r *gormRepository) CreateRedemption(redemption *models.Redemption) error {
	return r.db.Create(redemption).Error
}

func (r *gormRepository) SaveRedemption(redemption *models.Redemption) error {
	return r.db.Save(redemption).Error
}

func (r *gormRepository) ListRedemptions(vendorID uint) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := r.db.Where("vendor_id = ?", vendorID).Order("created_at DESC").Find(&redemptions).Error
	return redemptions, err
}

func (r *gormRepository) GetOrCreatePermissionsForUpdate(vendorID uint) (*models.VendorPermissions, error) {
	var vp models.VendorPermissions
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ?", vendorID).
		First(&vp).Error
	if err == nil {
		return &vp, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	vp = models.VendorPermissions{
		VendorID:      vendorID,
		MaxProducts:   models.DefaultMaxProducts,
		MaxShareLinks: models.DefaultMaxShareLinks,
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vendor_id"}},
		DoNothing: true,
	}).Create(&vp).Error; err != nil {
		return nil, err
	}
	return r.GetOrCreatePermissionsForUpdate(vendorID)
}

func (r *gormRepository) SavePermissions(vp *models.VendorPermissions) error {
	return r.db.Save(vp).Error
}

func (r *gormRepository) ListDueVendorIDs(now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.PointHistoryEntry{}).
		Distinct("vendor_id").
		Where("expired = ? AND expires_at IS NOT NULL AND expires_at < ?", false, now).
		Pluck("vendor_id", &ids).Error
	return ids, err
}

func (r *gormRepository) ListDueHistoryForUpdate(vendorID uint, now time.Time) ([]models.PointHistoryEntry, error) {
	var entries []models.PointHistoryEntry
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ? AND expired = ? AND expires_at IS NOT NULL AND expires_at < ?", vendorID, false, now).
		Find(&entries).Error
	return entries, err
}

func (r *gormRepository) MarkHistoryExpired(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.PointHistoryEntry{}).
		Where("id IN ?", ids).
		Update("expired", true).Error
}
