package repository

import (
	"errors"
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	// CreateWithItems assigns the next invoice number and persists the
	// invoice with its items in one transaction. A duplicate number or
	// an already-billed shipment surfaces as a CONFLICT error.
	CreateWithItems(invoice *models.Invoice, items []models.InvoiceItem) error
	GetByID(id uint) (*models.Invoice, error)
	GetItems(invoiceID uint) ([]models.InvoiceItem, error)
	ListByClient(clientID uint) ([]models.Invoice, error)
	Update(invoice *models.Invoice) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) CreateWithItems(invoice *models.Invoice, items []models.InvoiceItem) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, models.SequenceInvoice)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = models.FormatInvoiceNumber(time.Now(), seq)

		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		return tx.Create(&items).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.CodeConflict, "invoice number or shipment already billed", err)
	}
	return err
}

func (r *invoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetItems(invoiceID uint) ([]models.InvoiceItem, error) {
	var items []models.InvoiceItem
	err := r.db.Where("invoice_id = ?", invoiceID).Find(&items).Error
	return items, err
}

func (r *invoiceRepository) ListByClient(clientID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("client_id = ?", clientID).Order("created_at desc").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}
