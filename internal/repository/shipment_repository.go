package repository

import (
	"time"

	"pathxpress/internal/models"

	"gorm.io/gorm"
)

type ShipmentRepository interface {
	// CreateWithCOD persists the shipment, its initial tracking event
	// and, when codRecord is non-nil, the COD record, in one
	// transaction.
	CreateWithCOD(shipment *models.Shipment, event *models.TrackingEvent, codRecord *models.CODRecord) error
	GetByID(id uint) (*models.Shipment, error)
	GetByWaybill(waybillNumber string) (*models.Shipment, error)
	GetByClient(clientID uint) ([]models.Shipment, error)
	GetTrackingEvents(shipmentID uint) ([]models.TrackingEvent, error)
	// SaveStatusChange writes the shipment, a tracking event and an
	// optional COD record update atomically.
	SaveStatusChange(shipment *models.Shipment, event *models.TrackingEvent, codRecord *models.CODRecord) error
	AssignRoute(shipmentID uint, routeID uint) error
	// ListBillable returns the client's delivered shipments in the
	// period that no invoice item references yet.
	ListBillable(clientID uint, periodStart, periodEnd time.Time) ([]models.Shipment, error)
}

type shipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &shipmentRepository{db: db}
}

func (r *shipmentRepository) CreateWithCOD(shipment *models.Shipment, event *models.TrackingEvent, codRecord *models.CODRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shipment).Error; err != nil {
			return err
		}
		event.ShipmentID = shipment.ID
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if codRecord != nil {
			codRecord.ShipmentID = shipment.ID
			if err := tx.Create(codRecord).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *shipmentRepository) GetByID(id uint) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.First(&shipment, id).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) GetByWaybill(waybillNumber string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.Where("waybill_number = ?", waybillNumber).First(&shipment).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepository) GetByClient(clientID uint) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.Where("client_id = ?", clientID).Order("created_at desc").Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepository) GetTrackingEvents(shipmentID uint) ([]models.TrackingEvent, error) {
	var events []models.TrackingEvent
	err := r.db.Where("shipment_id = ?", shipmentID).Order("occurred_at asc").Find(&events).Error
	return events, err
}

func (r *shipmentRepository) SaveStatusChange(shipment *models.Shipment, event *models.TrackingEvent, codRecord *models.CODRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(shipment).Error; err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if codRecord != nil {
			if err := tx.Save(codRecord).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *shipmentRepository) AssignRoute(shipmentID uint, routeID uint) error {
	return r.db.Model(&models.Shipment{}).
		Where("id = ?", shipmentID).
		Update("route_id", routeID).Error
}

func (r *shipmentRepository) ListBillable(clientID uint, periodStart, periodEnd time.Time) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.Where("client_id = ? AND status = ? AND delivered_at BETWEEN ? AND ?",
		clientID, models.ShipmentDelivered, periodStart, periodEnd).
		Where("id NOT IN (SELECT shipment_id FROM invoice_items WHERE shipment_id IS NOT NULL)").
		Order("delivered_at asc").
		Find(&shipments).Error
	return shipments, err
}
