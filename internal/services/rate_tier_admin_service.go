package services

import (
	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"
)

type RateTierService interface {
	Create(tier *models.RateTier) error
	GetByID(id uint) (*models.RateTier, error)
	GetAll() ([]models.RateTier, error)
	Update(tier *models.RateTier) error
	Delete(id uint) error
}

type rateTierService struct {
	rateTierRepo repository.RateTierRepository
}

func NewRateTierService(rateTierRepo repository.RateTierRepository) RateTierService {
	return &rateTierService{rateTierRepo: rateTierRepo}
}

func validateTier(tier *models.RateTier) error {
	if !tier.ServiceType.Valid() {
		return apperrors.Validation("unknown service type %q", tier.ServiceType)
	}
	if tier.BaseRate < 0 || tier.AdditionalKgRate < 0 {
		return apperrors.Validation("rates must not be negative")
	}
	if tier.MinVolume < 0 {
		return apperrors.Validation("min volume must not be negative")
	}
	if tier.MaxVolume != nil && *tier.MaxVolume < tier.MinVolume {
		return apperrors.Validation("max volume must not be below min volume")
	}
	if tier.MaxWeight <= 0 {
		tier.MaxWeight = models.DefaultTierMaxWeight
	}
	return nil
}

func (s *rateTierService) Create(tier *models.RateTier) error {
	if err := validateTier(tier); err != nil {
		return err
	}
	return s.rateTierRepo.Create(tier)
}

func (s *rateTierService) GetByID(id uint) (*models.RateTier, error) {
	tier, err := s.rateTierRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "rate tier")
	}
	return tier, nil
}

func (s *rateTierService) GetAll() ([]models.RateTier, error) {
	return s.rateTierRepo.GetAll()
}

func (s *rateTierService) Update(tier *models.RateTier) error {
	if err := validateTier(tier); err != nil {
		return err
	}
	if _, err := s.rateTierRepo.GetByID(tier.ID); err != nil {
		return notFoundOr(err, "rate tier")
	}
	return s.rateTierRepo.Update(tier)
}

func (s *rateTierService) Delete(id uint) error {
	return s.rateTierRepo.Delete(id)
}
