package repository

import (
	"time"

	"pathxpress/internal/models"

	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(client *models.ClientAccount) error
	GetByID(id uint) (*models.ClientAccount, error)
	GetAll() ([]models.ClientAccount, error)
	Update(client *models.ClientAccount) error
	Delete(id uint) error
	MonthlyShipmentVolume(clientID uint, since time.Time) (int, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(client *models.ClientAccount) error {
	return r.db.Create(client).Error
}

func (r *clientRepository) GetByID(id uint) (*models.ClientAccount, error) {
	var client models.ClientAccount
	err := r.db.First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetAll() ([]models.ClientAccount, error) {
	var clients []models.ClientAccount
	err := r.db.Find(&clients).Error
	return clients, err
}

func (r *clientRepository) Update(client *models.ClientAccount) error {
	return r.db.Save(client).Error
}

func (r *clientRepository) Delete(id uint) error {
	return r.db.Delete(&models.ClientAccount{}, id).Error
}

// MonthlyShipmentVolume counts the client's shipments created since the
// given time, excluding cancelled ones. Used to resolve the automatic
// rate tier bracket.
func (r *clientRepository) MonthlyShipmentVolume(clientID uint, since time.Time) (int, error) {
	var count int64
	err := r.db.Model(&models.Shipment{}).
		Where("client_id = ? AND created_at >= ? AND status <> ?", clientID, since, models.ShipmentCancelled).
		Count(&count).Error
	return int(count), err
}
