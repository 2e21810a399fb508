package handlers

import (
	"net/http"

	"pathxpress/internal/models"
	"pathxpress/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler carries the back-office CRUD surface: rate tiers,
// client accounts, drivers, routes and platform settings.
type AdminHandler struct {
	rateTiers services.RateTierService
	clients   services.ClientService
	drivers   services.DriverService
	settings  services.SettingsService
}

func NewAdminHandler(
	rateTiers services.RateTierService,
	clients services.ClientService,
	drivers services.DriverService,
	settings services.SettingsService,
) *AdminHandler {
	return &AdminHandler{
		rateTiers: rateTiers,
		clients:   clients,
		drivers:   drivers,
		settings:  settings,
	}
}

// Rate tiers

func (h *AdminHandler) CreateRateTier(c *gin.Context) {
	var tier models.RateTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.rateTiers.Create(&tier); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tier)
}

func (h *AdminHandler) ListRateTiers(c *gin.Context) {
	tiers, err := h.rateTiers.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tiers)
}

func (h *AdminHandler) UpdateRateTier(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var tier models.RateTier
	if err := c.ShouldBindJSON(&tier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	tier.ID = id
	if err := h.rateTiers.Update(&tier); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tier)
}

// Client accounts

func (h *AdminHandler) CreateClient(c *gin.Context) {
	var client models.ClientAccount
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.clients.Create(&client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *AdminHandler) ListClients(c *gin.Context) {
	clients, err := h.clients.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *AdminHandler) GetClient(c *gin.Context) {
	id, err := paramUint(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	client, err := h.clients.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *AdminHandler) UpdateClient(c *gin.Context) {
	id, err := paramUint(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	var client models.ClientAccount
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	client.ID = id
	if err := h.clients.Update(&client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Drivers and routes

func (h *AdminHandler) CreateDriver(c *gin.Context) {
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.drivers.CreateDriver(&driver); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (h *AdminHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.drivers.GetAllDrivers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *AdminHandler) UpdateDriver(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var driver models.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	driver.ID = id
	if err := h.drivers.UpdateDriver(&driver); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *AdminHandler) CreateRoute(c *gin.Context) {
	var route models.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.drivers.CreateRoute(&route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *AdminHandler) ListRoutes(c *gin.Context) {
	routes, err := h.drivers.GetAllRoutes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *AdminHandler) AssignDriverToRoute(c *gin.Context) {
	routeID, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		DriverID uint `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	route, err := h.drivers.AssignDriverToRoute(routeID, req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// Settings

func (h *AdminHandler) GetSettings(c *gin.Context) {
	cfg, err := h.settings.GetConfig()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) UpdateSetting(c *gin.Context) {
	var setting models.ServiceSetting
	if err := c.ShouldBindJSON(&setting); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	setting.IsActive = true
	setting.UpdatedBy = currentSession(c).UserID
	if err := h.settings.UpdateSetting(&setting); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
