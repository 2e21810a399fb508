package services

import (
	"fmt"
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"
)

// numberAttempts bounds the retry loop when a generated document
// number loses a race on the unique index.
const numberAttempts = 3

type InvoiceAdjustment struct {
	Subtotal *float64 `json:"subtotal"`
	Taxes    *float64 `json:"taxes"`
	Notes    *string  `json:"notes"`
}

type InvoiceService interface {
	// GenerateInvoice bills every delivered, not-yet-invoiced shipment
	// of the client in the period. Fails with VALIDATION when the
	// period holds no billable shipments.
	GenerateInvoice(clientID uint, periodStart, periodEnd time.Time, createdBy uint) (*models.Invoice, error)
	GetInvoice(id uint) (*models.Invoice, error)
	GetItems(invoiceID uint) ([]models.InvoiceItem, error)
	ListByClient(clientID uint) ([]models.Invoice, error)
	// AdjustInvoice applies a manual admin edit, marking the invoice
	// adjusted and recording who and when.
	AdjustInvoice(invoiceID, adminID uint, adjustment InvoiceAdjustment) (*models.Invoice, error)
	SetStatus(invoiceID uint, next models.InvoiceStatus) (*models.Invoice, error)
	RecordPayment(invoiceID uint, amount float64) (*models.Invoice, error)
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	shipmentRepo repository.ShipmentRepository
	rateService  RateService
	settings     SettingsService
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	shipmentRepo repository.ShipmentRepository,
	rateService RateService,
	settings SettingsService,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		shipmentRepo: shipmentRepo,
		rateService:  rateService,
		settings:     settings,
	}
}

func (s *invoiceService) GenerateInvoice(clientID uint, periodStart, periodEnd time.Time, createdBy uint) (*models.Invoice, error) {
	if periodEnd.Before(periodStart) {
		return nil, apperrors.Validation("period end must not be before period start")
	}

	shipments, err := s.shipmentRepo.ListBillable(clientID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if len(shipments) == 0 {
		return nil, apperrors.Validation("no billable shipments for the period")
	}

	cfg, err := s.settings.GetConfig()
	if err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]models.InvoiceItem, 0, len(shipments))
	for i := range shipments {
		shipment := &shipments[i]
		lineTotal := shipment.TotalRate
		if lineTotal == 0 {
			// Legacy shipments created before pricing snapshots.
			quote, err := s.rateService.CalculateRate(shipment.ClientID, shipment.ServiceType,
				shipment.Weight, shipment.Length, shipment.Width, shipment.Height)
			if err != nil {
				return nil, err
			}
			lineTotal = quote.TotalRate
		}
		subtotal += lineTotal
		shipmentID := shipment.ID
		items = append(items, models.InvoiceItem{
			ShipmentID:  &shipmentID,
			Description: fmt.Sprintf("Shipment %s (%s, %.2f kg)", shipment.WaybillNumber, shipment.ServiceType, shipment.ChargeableWeight),
			Quantity:    1,
			UnitPrice:   lineTotal,
			Total:       lineTotal,
		})
	}

	taxes := subtotal * cfg.DefaultTaxPercent / 100
	total := subtotal + taxes
	invoice := &models.Invoice{
		ClientID:    clientID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Subtotal:    subtotal,
		Taxes:       taxes,
		Total:       total,
		AmountPaid:  0,
		Balance:     total,
		Status:      models.InvoicePending,
		CreatedBy:   createdBy,
	}

	var lastErr error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		lastErr = s.invoiceRepo.CreateWithItems(invoice, items)
		if lastErr == nil {
			return invoice, nil
		}
		if !isDuplicateKey(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (s *invoiceService) GetInvoice(id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "invoice")
	}
	return invoice, nil
}

func (s *invoiceService) GetItems(invoiceID uint) ([]models.InvoiceItem, error) {
	if _, err := s.invoiceRepo.GetByID(invoiceID); err != nil {
		return nil, notFoundOr(err, "invoice")
	}
	return s.invoiceRepo.GetItems(invoiceID)
}

func (s *invoiceService) ListByClient(clientID uint) ([]models.Invoice, error) {
	return s.invoiceRepo.ListByClient(clientID)
}

func (s *invoiceService) AdjustInvoice(invoiceID, adminID uint, adjustment InvoiceAdjustment) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice")
	}

	if adjustment.Subtotal != nil {
		if *adjustment.Subtotal < 0 {
			return nil, apperrors.Validation("subtotal must not be negative")
		}
		invoice.Subtotal = *adjustment.Subtotal
	}
	if adjustment.Taxes != nil {
		if *adjustment.Taxes < 0 {
			return nil, apperrors.Validation("taxes must not be negative")
		}
		invoice.Taxes = *adjustment.Taxes
	}
	if adjustment.Notes != nil {
		invoice.Notes = *adjustment.Notes
	}

	invoice.Total = invoice.Subtotal + invoice.Taxes
	invoice.Balance = invoice.Total - invoice.AmountPaid

	now := time.Now()
	invoice.IsAdjusted = true
	invoice.LastAdjustedBy = &adminID
	invoice.LastAdjustedAt = &now

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) SetStatus(invoiceID uint, next models.InvoiceStatus) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice")
	}
	if !invoice.Status.CanTransitionTo(next) {
		return nil, apperrors.Validation("cannot move invoice from %s to %s", invoice.Status, next)
	}
	invoice.Status = next
	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) RecordPayment(invoiceID uint, amount float64) (*models.Invoice, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("payment amount must be greater than zero")
	}
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice")
	}
	if invoice.Status == models.InvoicePaid {
		return nil, apperrors.Conflict("invoice %s is already paid", invoice.InvoiceNumber)
	}

	invoice.AmountPaid += amount
	invoice.Balance = invoice.Total - invoice.AmountPaid
	if invoice.Balance <= 0 && invoice.Status.CanTransitionTo(models.InvoicePaid) {
		invoice.Status = models.InvoicePaid
	}
	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}
