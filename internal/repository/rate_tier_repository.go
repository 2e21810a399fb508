package repository

import (
	"pathxpress/internal/models"

	"gorm.io/gorm"
)

type RateTierRepository interface {
	Create(tier *models.RateTier) error
	GetByID(id uint) (*models.RateTier, error)
	GetAll() ([]models.RateTier, error)
	GetActiveByService(serviceType models.ServiceType) ([]models.RateTier, error)
	Update(tier *models.RateTier) error
	Delete(id uint) error
}

type rateTierRepository struct {
	db *gorm.DB
}

func NewRateTierRepository(db *gorm.DB) RateTierRepository {
	return &rateTierRepository{db: db}
}

func (r *rateTierRepository) Create(tier *models.RateTier) error {
	return r.db.Create(tier).Error
}

func (r *rateTierRepository) GetByID(id uint) (*models.RateTier, error) {
	var tier models.RateTier
	err := r.db.First(&tier, id).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *rateTierRepository) GetAll() ([]models.RateTier, error) {
	var tiers []models.RateTier
	err := r.db.Find(&tiers).Error
	return tiers, err
}

// GetActiveByService returns active tiers for one service type ordered
// by bracket lower bound; the caller picks the bracket covering the
// client's volume.
func (r *rateTierRepository) GetActiveByService(serviceType models.ServiceType) ([]models.RateTier, error) {
	var tiers []models.RateTier
	err := r.db.Where("service_type = ? AND is_active = ?", serviceType, true).
		Order("min_volume asc").
		Find(&tiers).Error
	return tiers, err
}

func (r *rateTierRepository) Update(tier *models.RateTier) error {
	return r.db.Save(tier).Error
}

func (r *rateTierRepository) Delete(id uint) error {
	return r.db.Delete(&models.RateTier{}, id).Error
}
