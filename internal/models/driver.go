package models

import (
	"time"

	"gorm.io/gorm"
)

type Driver struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Phone       string         `json:"phone" gorm:"unique;not null"`
	VehicleType string         `json:"vehicle_type"`
	PlateNumber string         `json:"plate_number"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// Route is a named delivery area a driver works; shipments are
// assigned to routes for dispatch.
type Route struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"unique;not null"`
	Area      string         `json:"area"`
	DriverID  *uint          `json:"driver_id" gorm:"index"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
