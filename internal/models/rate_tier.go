package models

import (
	"time"

	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceDOM ServiceType = "DOM" // domestic next-business-day
	ServiceSDD ServiceType = "SDD" // same-day delivery
)

func (s ServiceType) Valid() bool {
	return s == ServiceDOM || s == ServiceSDD
}

// RateTier prices one service type for one monthly-volume bracket.
// MaxVolume nil means the bracket is unbounded above. Brackets within a
// service type must not overlap; that is an operational responsibility,
// not enforced here.
type RateTier struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"not null"`
	ServiceType      ServiceType    `json:"service_type" gorm:"not null;index"`
	MinVolume        int            `json:"min_volume" gorm:"not null"`
	MaxVolume        *int           `json:"max_volume"`
	BaseRate         float64        `json:"base_rate" gorm:"not null"`
	AdditionalKgRate float64        `json:"additional_kg_rate" gorm:"not null"`
	MaxWeight        float64        `json:"max_weight" gorm:"default:5"`
	IsActive         bool           `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// Covers reports whether the tier's volume bracket contains the given
// trailing monthly shipment count.
func (t *RateTier) Covers(monthlyVolume int) bool {
	if monthlyVolume < t.MinVolume {
		return false
	}
	return t.MaxVolume == nil || monthlyVolume <= *t.MaxVolume
}

// DefaultTierMaxWeight is the weight included in the base rate when a
// client bills on custom rates with no tier attached.
const DefaultTierMaxWeight = 5.0

// RateSource identifies which branch of the rate-resolution priority
// produced a quote.
type RateSource string

const (
	RateSourceCustom     RateSource = "custom"
	RateSourceManualTier RateSource = "manual_tier"
	RateSourceAutoTier   RateSource = "auto_tier"
)

// RateQuote is the result of a rate calculation.
type RateQuote struct {
	TotalRate         float64    `json:"total_rate"`
	ChargeableWeight  float64    `json:"chargeable_weight"`
	BaseRate          float64    `json:"base_rate"`
	AdditionalCharges float64    `json:"additional_charges"`
	Source            RateSource `json:"source"`
	RateTierID        *uint      `json:"rate_tier_id,omitempty"`
}
