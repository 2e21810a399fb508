package models

import (
	"time"
)

// ServiceSetting is one platform-wide configuration row. Settings are
// read through the typed ServiceConfig rather than by ad-hoc key
// lookups in business code.
type ServiceSetting struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SettingName  string    `json:"setting_name" gorm:"uniqueIndex;not null"`
	NumericValue float64   `json:"numeric_value"`
	TextValue    string    `json:"text_value"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	UpdatedBy    uint      `json:"updated_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	SettingCODFeePercent     = "cod_fee_percent"
	SettingCODMinFee         = "cod_min_fee"
	SettingCODMaxFee         = "cod_max_fee"
	SettingVolumetricDivisor = "volumetric_divisor"
	SettingSDDCutoff         = "sdd_cutoff"
	SettingDefaultTaxPercent = "default_tax_percent"
)

// ServiceConfig is the typed view of the settings table one request
// works with.
type ServiceConfig struct {
	CODFeePercent     float64 `json:"cod_fee_percent"`
	CODMinFee         float64 `json:"cod_min_fee"`
	CODMaxFee         float64 `json:"cod_max_fee"` // 0 = unbounded
	VolumetricDivisor float64 `json:"volumetric_divisor"`
	SDDCutoff         string  `json:"sdd_cutoff"`
	DefaultTaxPercent float64 `json:"default_tax_percent"`
}

// DefaultServiceConfig returns the platform defaults applied when a
// setting row is absent. The volumetric divisor follows the cm³→kg
// industry convention; it is configurable so operations can align it
// with historical invoices.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		CODFeePercent:     3.3,
		CODMinFee:         8.0,
		CODMaxFee:         0,
		VolumetricDivisor: 5000,
		SDDCutoff:         "14:00",
		DefaultTaxPercent: 0,
	}
}
