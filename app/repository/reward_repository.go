package repository

import (
	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// rewardRepository implements the RewardRepository interface
type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new reward repository instance
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(reward *models.RewardCatalogEntry) error {
	return r.db.Create(reward).Error
}

func (r *rewardRepository) GetByID(id uint) (*models.RewardCatalogEntry, error) {
	var reward models.RewardCatalogEntry
	err := r.db.First(&reward, id).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) ListActive() ([]models.RewardCatalogEntry, error) {
	var rewards []models.RewardCatalogEntry
	err := r.db.Where("is_active = ?", true).Order("points_cost ASC").Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) ListAll() ([]models.RewardCatalogEntry, error) {
	var rewards []models.RewardCatalogEntry
	err := r.db.Order("points_cost ASC").Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) Update(reward *models.RewardCatalogEntry) error {
	return r.db.Save(reward).Error
}
