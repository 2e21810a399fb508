package models

import (
	"time"

	"gorm.io/gorm"
)

type ShipmentStatus string

const (
	ShipmentCreated        ShipmentStatus = "created"
	ShipmentPickedUp       ShipmentStatus = "picked_up"
	ShipmentInTransit      ShipmentStatus = "in_transit"
	ShipmentOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentDelivered      ShipmentStatus = "delivered"
	ShipmentReturned       ShipmentStatus = "returned"
	ShipmentCancelled      ShipmentStatus = "cancelled"
)

var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentCreated:        {ShipmentPickedUp, ShipmentCancelled},
	ShipmentPickedUp:       {ShipmentInTransit, ShipmentReturned, ShipmentCancelled},
	ShipmentInTransit:      {ShipmentOutForDelivery, ShipmentReturned},
	ShipmentOutForDelivery: {ShipmentDelivered, ShipmentReturned},
	ShipmentDelivered:      {},
	ShipmentReturned:       {},
	ShipmentCancelled:      {},
}

func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	for _, allowed := range shipmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ShipmentStatus) Valid() bool {
	_, ok := shipmentTransitions[s]
	return ok
}

type Shipment struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	WaybillNumber string      `json:"waybill_number" gorm:"uniqueIndex;not null"`
	ClientID      uint        `json:"client_id" gorm:"not null;index"`
	ServiceType   ServiceType `json:"service_type" gorm:"not null"`

	RecipientName    string `json:"recipient_name" gorm:"not null"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	RecipientCity    string `json:"recipient_city"`

	Weight float64 `json:"weight" gorm:"not null"` // kg
	Length float64 `json:"length"`                 // cm
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Pricing snapshot taken at creation time.
	ChargeableWeight float64 `json:"chargeable_weight"`
	TotalRate        float64 `json:"total_rate"`

	CODRequired bool    `json:"cod_required" gorm:"default:false"`
	CODAmount   float64 `json:"cod_amount"`
	CODCurrency string  `json:"cod_currency" gorm:"default:'AED'"`

	Status      ShipmentStatus `json:"status" gorm:"default:'created'"`
	RouteID     *uint          `json:"route_id"`
	DeliveredAt *time.Time     `json:"delivered_at"`

	CreatedBy uint           `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TrackingEvent is one row of a shipment's public tracking history.
type TrackingEvent struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ShipmentID  uint           `json:"shipment_id" gorm:"not null;index"`
	Status      ShipmentStatus `json:"status" gorm:"not null"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	OccurredAt  time.Time      `json:"occurred_at" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
}
