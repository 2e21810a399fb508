package repository

import (
	"pathxpress/internal/models"

	"gorm.io/gorm"
)

type DriverRepository interface {
	Create(driver *models.Driver) error
	GetByID(id uint) (*models.Driver, error)
	GetAll() ([]models.Driver, error)
	Update(driver *models.Driver) error
	Delete(id uint) error

	CreateRoute(route *models.Route) error
	GetRouteByID(id uint) (*models.Route, error)
	GetAllRoutes() ([]models.Route, error)
	UpdateRoute(route *models.Route) error
	DeleteRoute(id uint) error
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

func (r *driverRepository) GetByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.First(&driver, id).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) GetAll() ([]models.Driver, error) {
	var drivers []models.Driver
	err := r.db.Find(&drivers).Error
	return drivers, err
}

func (r *driverRepository) Update(driver *models.Driver) error {
	return r.db.Save(driver).Error
}

func (r *driverRepository) Delete(id uint) error {
	return r.db.Delete(&models.Driver{}, id).Error
}

func (r *driverRepository) CreateRoute(route *models.Route) error {
	return r.db.Create(route).Error
}

func (r *driverRepository) GetRouteByID(id uint) (*models.Route, error) {
	var route models.Route
	err := r.db.First(&route, id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *driverRepository) GetAllRoutes() ([]models.Route, error) {
	var routes []models.Route
	err := r.db.Find(&routes).Error
	return routes, err
}

func (r *driverRepository) UpdateRoute(route *models.Route) error {
	return r.db.Save(route).Error
}

func (r *driverRepository) DeleteRoute(id uint) error {
	return r.db.Delete(&models.Route{}, id).Error
}
