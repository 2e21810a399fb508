package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Invoice status is set only by admin action; pending can become paid
// or overdue, and an overdue invoice can still be paid.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoicePending: {InvoicePaid, InvoiceOverdue},
	InvoiceOverdue: {InvoicePaid},
	InvoicePaid:    {},
}

func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Invoice struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	InvoiceNumber string `json:"invoice_number" gorm:"uniqueIndex;not null"`
	ClientID      uint   `json:"client_id" gorm:"not null;index"`

	PeriodStart time.Time `json:"period_start" gorm:"not null"`
	PeriodEnd   time.Time `json:"period_end" gorm:"not null"`

	Subtotal   float64 `json:"subtotal" gorm:"not null"`
	Taxes      float64 `json:"taxes"`
	Total      float64 `json:"total" gorm:"not null"` // subtotal + taxes
	AmountPaid float64 `json:"amount_paid"`
	Balance    float64 `json:"balance"` // total - amount_paid
	Currency   string  `json:"currency" gorm:"default:'AED'"`

	Status InvoiceStatus `json:"status" gorm:"default:'pending'"`
	Notes  string        `json:"notes"`

	// Manual admin edits to the money fields are audited.
	IsAdjusted     bool       `json:"is_adjusted" gorm:"default:false"`
	LastAdjustedBy *uint      `json:"last_adjusted_by"`
	LastAdjustedAt *time.Time `json:"last_adjusted_at"`

	CreatedBy uint           `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// InvoiceItem bills one shipment (or carries a free-form line when
// ShipmentID is nil). The unique index on ShipmentID is what makes
// double-billing a shipment across invoices impossible.
type InvoiceItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	InvoiceID   uint      `json:"invoice_id" gorm:"not null;index"`
	ShipmentID  *uint     `json:"shipment_id" gorm:"uniqueIndex"`
	Description string    `json:"description" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"default:1"`
	UnitPrice   float64   `json:"unit_price"`
	Total       float64   `json:"total" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// NumberSequence backs invoice/remittance numbering. next_value is
// advanced with an atomic UPDATE inside the transaction that persists
// the document, and the documents' unique number indexes catch any
// residue.
type NumberSequence struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	NextValue int64  `json:"next_value" gorm:"not null;default:0"`
}

const (
	SequenceInvoice    = "invoice"
	SequenceRemittance = "remittance"
)

// FormatInvoiceNumber renders an invoice number such as
// INV-202609-000042 from the issue date and sequence value.
func FormatInvoiceNumber(issuedAt time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%06d", issuedAt.Format("200601"), seq)
}

// FormatRemittanceNumber renders a remittance number such as
// REM-202609-000042.
func FormatRemittanceNumber(issuedAt time.Time, seq int64) string {
	return fmt.Sprintf("REM-%s-%06d", issuedAt.Format("200601"), seq)
}
