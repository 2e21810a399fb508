package models

import (
	"time"

	"gorm.io/gorm"
)

type ClientAccount struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name" gorm:"not null"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	City        string `json:"city"`

	// COD handling agreement. Nil override fields fall back to the
	// platform-wide fee schedule in service settings.
	CODAllowed    bool     `json:"cod_allowed" gorm:"default:false"`
	CODFeePercent *float64 `json:"cod_fee_percent"`
	CODMinFee     *float64 `json:"cod_min_fee"`
	CODMaxFee     *float64 `json:"cod_max_fee"`

	// Rate resolution priority: custom rates > manual tier > volume tier.
	ManualRateTierID   *uint    `json:"manual_rate_tier_id"`
	CustomDomBaseRate  *float64 `json:"custom_dom_base_rate"`
	CustomDomPerKgRate *float64 `json:"custom_dom_per_kg_rate"`
	CustomSddBaseRate  *float64 `json:"custom_sdd_base_rate"`
	CustomSddPerKgRate *float64 `json:"custom_sdd_per_kg_rate"`

	// Freight on delivery (shipping charge collected from recipient).
	FODAllowed bool    `json:"fod_allowed" gorm:"default:false"`
	FODFee     float64 `json:"fod_fee"`

	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// HasCustomRates reports whether the client has a full custom rate pair
// for the given service type.
func (c *ClientAccount) HasCustomRates(serviceType ServiceType) bool {
	switch serviceType {
	case ServiceDOM:
		return c.CustomDomBaseRate != nil && c.CustomDomPerKgRate != nil
	case ServiceSDD:
		return c.CustomSddBaseRate != nil && c.CustomSddPerKgRate != nil
	}
	return false
}

func (c *ClientAccount) CustomRates(serviceType ServiceType) (baseRate, perKgRate float64) {
	switch serviceType {
	case ServiceDOM:
		return *c.CustomDomBaseRate, *c.CustomDomPerKgRate
	case ServiceSDD:
		return *c.CustomSddBaseRate, *c.CustomSddPerKgRate
	}
	return 0, 0
}
