package services

import (
	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"
)

type CreateRemittanceInput struct {
	ClientID         uint   `json:"client_id"`
	CODRecordIDs     []uint `json:"cod_record_ids"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	Notes            string `json:"notes"`
	CreatedBy        uint   `json:"-"`
}

type RemittanceService interface {
	// CreateRemittance batches the selected collected COD records into
	// one payout. Every record must belong to the client, be in the
	// collected state and share one currency.
	CreateRemittance(input CreateRemittanceInput) (*models.CODRemittance, error)
	GetRemittance(id uint) (*models.CODRemittance, error)
	GetItems(remittanceID uint) ([]models.CODRemittanceItem, error)
	ListByClient(clientID uint) ([]models.CODRemittance, error)
	// AdvanceStatus moves pending → processed → completed. Completion
	// flips every member COD record to remitted.
	AdvanceStatus(remittanceID uint, next models.RemittanceStatus) (*models.CODRemittance, error)
	// ListCollectedRecords returns the client's collected COD records
	// that no remittance has claimed yet.
	ListCollectedRecords(clientID uint) ([]models.CODRecord, error)
}

type remittanceService struct {
	remittanceRepo repository.RemittanceRepository
	codRepo        repository.CODRepository
	clientRepo     repository.ClientRepository
	rateService    RateService
}

func NewRemittanceService(
	remittanceRepo repository.RemittanceRepository,
	codRepo repository.CODRepository,
	clientRepo repository.ClientRepository,
	rateService RateService,
) RemittanceService {
	return &remittanceService{
		remittanceRepo: remittanceRepo,
		codRepo:        codRepo,
		clientRepo:     clientRepo,
		rateService:    rateService,
	}
}

func (s *remittanceService) CreateRemittance(input CreateRemittanceInput) (*models.CODRemittance, error) {
	if len(input.CODRecordIDs) == 0 {
		return nil, apperrors.Validation("at least one COD record is required")
	}
	if _, err := s.clientRepo.GetByID(input.ClientID); err != nil {
		return nil, notFoundOr(err, "client")
	}

	records, err := s.codRepo.GetRecordsByIDs(input.CODRecordIDs)
	if err != nil {
		return nil, err
	}
	if len(records) != len(input.CODRecordIDs) {
		return nil, apperrors.Validation("selection references unknown COD records")
	}

	currency := records[0].Currency
	var gross float64
	for _, record := range records {
		if record.ClientID != input.ClientID {
			return nil, apperrors.Validation("COD record %d does not belong to client %d", record.ID, input.ClientID)
		}
		if record.Status != models.CODCollected {
			return nil, apperrors.Validation("COD record %d is %s, expected collected", record.ID, record.Status)
		}
		if record.Currency != currency {
			return nil, apperrors.Validation("mixed currencies in selection; create one remittance per currency")
		}
		gross += record.CODAmount
	}

	fee, err := s.rateService.CalculateCODFee(gross, &input.ClientID)
	if err != nil {
		return nil, err
	}
	feePercent := 0.0
	if gross > 0 {
		feePercent = fee / gross * 100
	}

	remittance := &models.CODRemittance{
		ClientID:         input.ClientID,
		GrossAmount:      gross,
		FeeAmount:        fee,
		FeePercentage:    feePercent,
		TotalAmount:      gross - fee,
		Currency:         currency,
		ShipmentCount:    len(records),
		Status:           models.RemittancePending,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
		Notes:            input.Notes,
		CreatedBy:        input.CreatedBy,
	}

	var lastErr error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		lastErr = s.remittanceRepo.CreateWithItems(remittance, input.CODRecordIDs)
		if lastErr == nil {
			return remittance, nil
		}
		if !isDuplicateKey(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (s *remittanceService) GetRemittance(id uint) (*models.CODRemittance, error) {
	remittance, err := s.remittanceRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "remittance")
	}
	return remittance, nil
}

func (s *remittanceService) GetItems(remittanceID uint) ([]models.CODRemittanceItem, error) {
	if _, err := s.remittanceRepo.GetByID(remittanceID); err != nil {
		return nil, notFoundOr(err, "remittance")
	}
	return s.remittanceRepo.GetItems(remittanceID)
}

func (s *remittanceService) ListByClient(clientID uint) ([]models.CODRemittance, error) {
	return s.remittanceRepo.ListByClient(clientID)
}

func (s *remittanceService) AdvanceStatus(remittanceID uint, next models.RemittanceStatus) (*models.CODRemittance, error) {
	remittance, err := s.remittanceRepo.AdvanceStatus(remittanceID, next)
	if err != nil {
		return nil, notFoundOr(err, "remittance")
	}
	return remittance, nil
}

func (s *remittanceService) ListCollectedRecords(clientID uint) ([]models.CODRecord, error) {
	records, err := s.codRepo.ListByClientAndStatus(clientID, models.CODCollected)
	if err != nil {
		return nil, err
	}
	unclaimed := make([]models.CODRecord, 0, len(records))
	for _, record := range records {
		if record.RemittanceID == nil {
			unclaimed = append(unclaimed, record)
		}
	}
	return unclaimed, nil
}
