package services

import (
	"fmt"
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"
	"pathxpress/pkg/waybill"
)

// waybillAttempts bounds the retry loop when a generated waybill
// number collides with an existing shipment.
const waybillAttempts = 3

type CreateShipmentInput struct {
	ClientID         uint               `json:"client_id"`
	ServiceType      models.ServiceType `json:"service_type"`
	RecipientName    string             `json:"recipient_name"`
	RecipientPhone   string             `json:"recipient_phone"`
	RecipientAddress string             `json:"recipient_address"`
	RecipientCity    string             `json:"recipient_city"`
	Weight           float64            `json:"weight"`
	Length           float64            `json:"length"`
	Width            float64            `json:"width"`
	Height           float64            `json:"height"`
	CODRequired      bool               `json:"cod_required"`
	CODAmount        float64            `json:"cod_amount"`
	CODCurrency      string             `json:"cod_currency"`
	CreatedBy        uint               `json:"-"`
}

type TrackingInfo struct {
	WaybillNumber string                 `json:"waybill_number"`
	Status        models.ShipmentStatus  `json:"status"`
	ServiceType   models.ServiceType     `json:"service_type"`
	RecipientCity string                 `json:"recipient_city"`
	DeliveredAt   *time.Time             `json:"delivered_at,omitempty"`
	Events        []models.TrackingEvent `json:"events"`
}

type ShipmentService interface {
	CreateShipment(input CreateShipmentInput) (*models.Shipment, error)
	GetShipment(id uint) (*models.Shipment, error)
	ListByClient(clientID uint) ([]models.Shipment, error)
	Track(waybillNumber string) (*TrackingInfo, error)
	UpdateStatus(shipmentID uint, next models.ShipmentStatus, location, description string) (*models.Shipment, error)
	AssignRoute(shipmentID, routeID uint) error
	LabelPNG(shipmentID uint, size int) ([]byte, error)
}

type shipmentService struct {
	shipmentRepo repository.ShipmentRepository
	clientRepo   repository.ClientRepository
	codRepo      repository.CODRepository
	driverRepo   repository.DriverRepository
	rateService  RateService
}

func NewShipmentService(
	shipmentRepo repository.ShipmentRepository,
	clientRepo repository.ClientRepository,
	codRepo repository.CODRepository,
	driverRepo repository.DriverRepository,
	rateService RateService,
) ShipmentService {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		clientRepo:   clientRepo,
		codRepo:      codRepo,
		driverRepo:   driverRepo,
		rateService:  rateService,
	}
}

func (s *shipmentService) CreateShipment(input CreateShipmentInput) (*models.Shipment, error) {
	if input.Weight <= 0 {
		return nil, apperrors.Validation("weight must be greater than zero")
	}
	if !input.ServiceType.Valid() {
		return nil, apperrors.Validation("unknown service type %q", input.ServiceType)
	}
	if input.RecipientName == "" {
		return nil, apperrors.Validation("recipient name is required")
	}

	client, err := s.clientRepo.GetByID(input.ClientID)
	if err != nil {
		return nil, notFoundOr(err, "client")
	}
	if !client.IsActive {
		return nil, apperrors.Forbidden("client account is inactive")
	}
	if input.CODRequired {
		if !client.CODAllowed {
			return nil, apperrors.Forbidden("client is not enabled for COD shipments")
		}
		if input.CODAmount <= 0 {
			return nil, apperrors.Validation("COD amount must be greater than zero")
		}
	}

	quote, err := s.rateService.CalculateRate(input.ClientID, input.ServiceType,
		input.Weight, input.Length, input.Width, input.Height)
	if err != nil {
		return nil, err
	}

	currency := input.CODCurrency
	if currency == "" {
		currency = "AED"
	}

	shipment := &models.Shipment{
		ClientID:         input.ClientID,
		ServiceType:      input.ServiceType,
		RecipientName:    input.RecipientName,
		RecipientPhone:   input.RecipientPhone,
		RecipientAddress: input.RecipientAddress,
		RecipientCity:    input.RecipientCity,
		Weight:           input.Weight,
		Length:           input.Length,
		Width:            input.Width,
		Height:           input.Height,
		ChargeableWeight: quote.ChargeableWeight,
		TotalRate:        quote.TotalRate,
		CODRequired:      input.CODRequired,
		CODAmount:        input.CODAmount,
		CODCurrency:      currency,
		Status:           models.ShipmentCreated,
		CreatedBy:        input.CreatedBy,
	}

	var lastErr error
	for attempt := 0; attempt < waybillAttempts; attempt++ {
		number, err := waybill.Generate()
		if err != nil {
			return nil, err
		}
		shipment.WaybillNumber = number

		event := &models.TrackingEvent{
			Status:      models.ShipmentCreated,
			Description: "Shipment created",
			OccurredAt:  time.Now(),
		}
		var codRecord *models.CODRecord
		if input.CODRequired {
			codRecord = &models.CODRecord{
				ClientID:  input.ClientID,
				CODAmount: input.CODAmount,
				Currency:  currency,
				Status:    models.CODPendingCollection,
			}
		}

		lastErr = s.shipmentRepo.CreateWithCOD(shipment, event, codRecord)
		if lastErr == nil {
			return shipment, nil
		}
		if !isDuplicateKey(lastErr) {
			return nil, lastErr
		}
	}
	return nil, apperrors.Wrap(apperrors.CodeConflict, "could not allocate a unique waybill number", lastErr)
}

func (s *shipmentService) GetShipment(id uint) (*models.Shipment, error) {
	shipment, err := s.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "shipment")
	}
	return shipment, nil
}

func (s *shipmentService) ListByClient(clientID uint) ([]models.Shipment, error) {
	return s.shipmentRepo.GetByClient(clientID)
}

func (s *shipmentService) Track(waybillNumber string) (*TrackingInfo, error) {
	if !waybill.Valid(waybillNumber) {
		return nil, apperrors.Validation("invalid waybill number format")
	}
	shipment, err := s.shipmentRepo.GetByWaybill(waybillNumber)
	if err != nil {
		return nil, notFoundOr(err, "shipment")
	}
	events, err := s.shipmentRepo.GetTrackingEvents(shipment.ID)
	if err != nil {
		return nil, err
	}
	return &TrackingInfo{
		WaybillNumber: shipment.WaybillNumber,
		Status:        shipment.Status,
		ServiceType:   shipment.ServiceType,
		RecipientCity: shipment.RecipientCity,
		DeliveredAt:   shipment.DeliveredAt,
		Events:        events,
	}, nil
}

func (s *shipmentService) UpdateStatus(shipmentID uint, next models.ShipmentStatus, location, description string) (*models.Shipment, error) {
	if !next.Valid() {
		return nil, apperrors.Validation("unknown shipment status %q", next)
	}
	shipment, err := s.shipmentRepo.GetByID(shipmentID)
	if err != nil {
		return nil, notFoundOr(err, "shipment")
	}
	if !shipment.Status.CanTransitionTo(next) {
		return nil, apperrors.Validation("cannot move shipment from %s to %s", shipment.Status, next)
	}

	now := time.Now()
	shipment.Status = next
	if description == "" {
		description = fmt.Sprintf("Shipment %s", next)
	}
	event := &models.TrackingEvent{
		ShipmentID:  shipment.ID,
		Status:      next,
		Location:    location,
		Description: description,
		OccurredAt:  now,
	}

	var codRecord *models.CODRecord
	if next == models.ShipmentDelivered {
		shipment.DeliveredAt = &now
		if shipment.CODRequired {
			codRecord, err = s.codRepo.GetRecordByShipment(shipment.ID)
			if err != nil {
				return nil, notFoundOr(err, "COD record")
			}
			if !codRecord.Status.CanTransitionTo(models.CODCollected) {
				return nil, apperrors.Conflict("COD record for %s is %s, cannot mark collected", shipment.WaybillNumber, codRecord.Status)
			}
			codRecord.Status = models.CODCollected
			codRecord.CollectedDate = &now
		}
	}

	if err := s.shipmentRepo.SaveStatusChange(shipment, event, codRecord); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) AssignRoute(shipmentID, routeID uint) error {
	if _, err := s.shipmentRepo.GetByID(shipmentID); err != nil {
		return notFoundOr(err, "shipment")
	}
	if _, err := s.driverRepo.GetRouteByID(routeID); err != nil {
		return notFoundOr(err, "route")
	}
	return s.shipmentRepo.AssignRoute(shipmentID, routeID)
}

func (s *shipmentService) LabelPNG(shipmentID uint, size int) ([]byte, error) {
	shipment, err := s.shipmentRepo.GetByID(shipmentID)
	if err != nil {
		return nil, notFoundOr(err, "shipment")
	}
	return waybill.LabelPNG(shipment.WaybillNumber, size)
}
