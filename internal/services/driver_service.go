package services

import (
	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/repository"
)

type DriverService interface {
	CreateDriver(driver *models.Driver) error
	GetDriver(id uint) (*models.Driver, error)
	GetAllDrivers() ([]models.Driver, error)
	UpdateDriver(driver *models.Driver) error
	DeleteDriver(id uint) error

	CreateRoute(route *models.Route) error
	GetRoute(id uint) (*models.Route, error)
	GetAllRoutes() ([]models.Route, error)
	UpdateRoute(route *models.Route) error
	// AssignDriverToRoute points a route at a driver; the driver must
	// exist and be active.
	AssignDriverToRoute(routeID, driverID uint) (*models.Route, error)
}

type driverService struct {
	driverRepo repository.DriverRepository
}

func NewDriverService(driverRepo repository.DriverRepository) DriverService {
	return &driverService{driverRepo: driverRepo}
}

func (s *driverService) CreateDriver(driver *models.Driver) error {
	if driver.Name == "" {
		return apperrors.Validation("driver name is required")
	}
	if driver.Phone == "" {
		return apperrors.Validation("driver phone is required")
	}
	err := s.driverRepo.Create(driver)
	if isDuplicateKey(err) {
		return apperrors.Conflict("a driver with that phone already exists")
	}
	return err
}

func (s *driverService) GetDriver(id uint) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "driver")
	}
	return driver, nil
}

func (s *driverService) GetAllDrivers() ([]models.Driver, error) {
	return s.driverRepo.GetAll()
}

func (s *driverService) UpdateDriver(driver *models.Driver) error {
	return s.driverRepo.Update(driver)
}

func (s *driverService) DeleteDriver(id uint) error {
	return s.driverRepo.Delete(id)
}

func (s *driverService) CreateRoute(route *models.Route) error {
	if route.Name == "" {
		return apperrors.Validation("route name is required")
	}
	err := s.driverRepo.CreateRoute(route)
	if isDuplicateKey(err) {
		return apperrors.Conflict("a route with that name already exists")
	}
	return err
}

func (s *driverService) GetRoute(id uint) (*models.Route, error) {
	route, err := s.driverRepo.GetRouteByID(id)
	if err != nil {
		return nil, notFoundOr(err, "route")
	}
	return route, nil
}

func (s *driverService) GetAllRoutes() ([]models.Route, error) {
	return s.driverRepo.GetAllRoutes()
}

func (s *driverService) UpdateRoute(route *models.Route) error {
	return s.driverRepo.UpdateRoute(route)
}

func (s *driverService) AssignDriverToRoute(routeID, driverID uint) (*models.Route, error) {
	route, err := s.driverRepo.GetRouteByID(routeID)
	if err != nil {
		return nil, notFoundOr(err, "route")
	}
	driver, err := s.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, notFoundOr(err, "driver")
	}
	if !driver.IsActive {
		return nil, apperrors.Validation("driver %s is inactive", driver.Name)
	}
	route.DriverID = &driver.ID
	if err := s.driverRepo.UpdateRoute(route); err != nil {
		return nil, err
	}
	return route, nil
}
