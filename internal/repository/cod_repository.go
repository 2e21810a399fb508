package repository

import (
	"pathxpress/internal/models"

	"gorm.io/gorm"
)

type CODRepository interface {
	CreateRecord(record *models.CODRecord) error
	GetRecordByID(id uint) (*models.CODRecord, error)
	GetRecordByShipment(shipmentID uint) (*models.CODRecord, error)
	GetRecordsByIDs(ids []uint) ([]models.CODRecord, error)
	ListByClientAndStatus(clientID uint, status models.CODRecordStatus) ([]models.CODRecord, error)
	UpdateRecord(record *models.CODRecord) error
}

type codRepository struct {
	db *gorm.DB
}

func NewCODRepository(db *gorm.DB) CODRepository {
	return &codRepository{db: db}
}

func (r *codRepository) CreateRecord(record *models.CODRecord) error {
	return r.db.Create(record).Error
}

func (r *codRepository) GetRecordByID(id uint) (*models.CODRecord, error) {
	var record models.CODRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *codRepository) GetRecordByShipment(shipmentID uint) (*models.CODRecord, error) {
	var record models.CODRecord
	err := r.db.Where("shipment_id = ?", shipmentID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *codRepository) GetRecordsByIDs(ids []uint) ([]models.CODRecord, error) {
	var records []models.CODRecord
	err := r.db.Where("id IN ?", ids).Find(&records).Error
	return records, err
}

func (r *codRepository) ListByClientAndStatus(clientID uint, status models.CODRecordStatus) ([]models.CODRecord, error) {
	var records []models.CODRecord
	err := r.db.Where("client_id = ? AND status = ?", clientID, status).
		Order("collected_date asc").
		Find(&records).Error
	return records, err
}

func (r *codRepository) UpdateRecord(record *models.CODRecord) error {
	return r.db.Save(record).Error
}
