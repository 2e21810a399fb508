package services

import (
	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"
)

type ClientService interface {
	Create(client *models.ClientAccount) error
	GetByID(id uint) (*models.ClientAccount, error)
	GetAll() ([]models.ClientAccount, error)
	Update(client *models.ClientAccount) error
}

type clientService struct {
	clientRepo   repository.ClientRepository
	rateTierRepo repository.RateTierRepository
}

func NewClientService(clientRepo repository.ClientRepository, rateTierRepo repository.RateTierRepository) ClientService {
	return &clientService{clientRepo: clientRepo, rateTierRepo: rateTierRepo}
}

func (s *clientService) validate(client *models.ClientAccount) error {
	if client.CompanyName == "" {
		return apperrors.Validation("company name is required")
	}
	if client.CODFeePercent != nil && *client.CODFeePercent < 0 {
		return apperrors.Validation("COD fee percent must not be negative")
	}
	if client.CODMinFee != nil && client.CODMaxFee != nil && *client.CODMaxFee < *client.CODMinFee {
		return apperrors.Validation("COD max fee must not be below min fee")
	}
	if client.ManualRateTierID != nil {
		if _, err := s.rateTierRepo.GetByID(*client.ManualRateTierID); err != nil {
			return notFoundOr(err, "manual rate tier")
		}
	}
	return nil
}

func (s *clientService) Create(client *models.ClientAccount) error {
	if err := s.validate(client); err != nil {
		return err
	}
	return s.clientRepo.Create(client)
}

func (s *clientService) GetByID(id uint) (*models.ClientAccount, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "client")
	}
	return client, nil
}

func (s *clientService) GetAll() ([]models.ClientAccount, error) {
	return s.clientRepo.GetAll()
}

func (s *clientService) Update(client *models.ClientAccount) error {
	if err := s.validate(client); err != nil {
		return err
	}
	if _, err := s.clientRepo.GetByID(client.ID); err != nil {
		return notFoundOr(err, "client")
	}
	return s.clientRepo.Update(client)
}
