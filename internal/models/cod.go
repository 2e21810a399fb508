package models

import (
	"time"

	"gorm.io/gorm"
)

type CODRecordStatus string

const (
	CODPendingCollection CODRecordStatus = "pending_collection"
	CODCollected         CODRecordStatus = "collected"
	CODRemitted          CODRecordStatus = "remitted"
	CODDisputed          CODRecordStatus = "disputed"
	CODCancelled         CODRecordStatus = "cancelled"
)

var codRecordTransitions = map[CODRecordStatus][]CODRecordStatus{
	CODPendingCollection: {CODCollected, CODDisputed, CODCancelled},
	CODCollected:         {CODRemitted, CODDisputed},
	CODRemitted:          {},
	CODDisputed:          {CODCollected, CODCancelled},
	CODCancelled:         {},
}

func (s CODRecordStatus) CanTransitionTo(next CODRecordStatus) bool {
	for _, allowed := range codRecordTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CODRecord tracks the cash collected for one COD shipment, from
// collection at the door through remittance to the client.
type CODRecord struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	ShipmentID uint    `json:"shipment_id" gorm:"uniqueIndex;not null"`
	ClientID   uint    `json:"client_id" gorm:"not null;index"`
	CODAmount  float64 `json:"cod_amount" gorm:"not null"`
	Currency   string  `json:"currency" gorm:"default:'AED'"`

	Status        CODRecordStatus `json:"status" gorm:"default:'pending_collection'"`
	CollectedDate *time.Time      `json:"collected_date"`

	// RemittanceID is claimed when the record is pulled into a payout
	// batch; the status flips to remitted only once that remittance
	// completes.
	RemittanceID         *uint      `json:"remittance_id" gorm:"index"`
	RemittedToClientDate *time.Time `json:"remitted_to_client_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type RemittanceStatus string

const (
	RemittancePending   RemittanceStatus = "pending"
	RemittanceProcessed RemittanceStatus = "processed"
	RemittanceCompleted RemittanceStatus = "completed"
)

// Remittance status only moves forward. Reversals are modelled as new
// adjustment remittances, never by mutating history.
var remittanceTransitions = map[RemittanceStatus][]RemittanceStatus{
	RemittancePending:   {RemittanceProcessed},
	RemittanceProcessed: {RemittanceCompleted},
	RemittanceCompleted: {},
}

func (s RemittanceStatus) CanTransitionTo(next RemittanceStatus) bool {
	for _, allowed := range remittanceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CODRemittance is a batched payout of collected COD funds to one
// client, net of the platform's settlement fee. Items are immutable
// once attached.
type CODRemittance struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	RemittanceNumber string `json:"remittance_number" gorm:"uniqueIndex;not null"`
	ClientID         uint   `json:"client_id" gorm:"not null;index"`

	GrossAmount   float64 `json:"gross_amount" gorm:"not null"`
	FeeAmount     float64 `json:"fee_amount"`
	FeePercentage float64 `json:"fee_percentage"`
	TotalAmount   float64 `json:"total_amount" gorm:"not null"` // gross - fee
	Currency      string  `json:"currency" gorm:"default:'AED'"`
	ShipmentCount int     `json:"shipment_count"`

	Status           RemittanceStatus `json:"status" gorm:"default:'pending'"`
	PaymentMethod    string           `json:"payment_method"`
	PaymentReference string           `json:"payment_reference"`
	Notes            string           `json:"notes"`
	CompletedAt      *time.Time       `json:"completed_at"`

	CreatedBy uint           `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type CODRemittanceItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RemittanceID uint      `json:"remittance_id" gorm:"not null;index"`
	CODRecordID  uint      `json:"cod_record_id" gorm:"uniqueIndex;not null"`
	Amount       float64   `json:"amount" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
