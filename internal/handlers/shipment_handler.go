package handlers

import (
	"net/http"
	"strconv"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/services"

	"github.com/gin-gonic/gin"
)

type ShipmentHandler struct {
	shipmentService services.ShipmentService
	labelQRSize     int
}

func NewShipmentHandler(shipmentService services.ShipmentService, labelQRSize int) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService, labelQRSize: labelQRSize}
}

func (h *ShipmentHandler) Create(c *gin.Context) {
	var input services.CreateShipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session := currentSession(c)
	if session.Role != "admin" {
		// Client-portal users always ship on their own account.
		if session.ClientID == nil {
			respondError(c, apperrors.Forbidden("user is not linked to a client account"))
			return
		}
		input.ClientID = *session.ClientID
	}
	input.CreatedBy = session.UserID

	shipment, err := h.shipmentService.CreateShipment(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                shipment.ID,
		"waybill_number":    shipment.WaybillNumber,
		"chargeable_weight": shipment.ChargeableWeight,
		"total_rate":        round2(shipment.TotalRate),
		"status":            shipment.Status,
	})
}

func (h *ShipmentHandler) Get(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	shipment, err := h.shipmentService.GetShipment(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, shipment.ClientID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (h *ShipmentHandler) ListByClient(c *gin.Context) {
	clientID, err := paramUint(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, clientID); err != nil {
		respondError(c, err)
		return
	}
	shipments, err := h.shipmentService.ListByClient(clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

// Track is public: recipients follow their parcel by waybill number.
func (h *ShipmentHandler) Track(c *gin.Context) {
	info, err := h.shipmentService.Track(c.Param("waybill"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Status      models.ShipmentStatus `json:"status" binding:"required"`
		Location    string                `json:"location"`
		Description string                `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	shipment, err := h.shipmentService.UpdateStatus(id, req.Status, req.Location, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (h *ShipmentHandler) AssignRoute(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		RouteID uint `json:"route_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.shipmentService.AssignRoute(id, req.RouteID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "assigned"})
}

func (h *ShipmentHandler) Label(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	shipment, err := h.shipmentService.GetShipment(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, shipment.ClientID); err != nil {
		respondError(c, err)
		return
	}
	png, err := h.shipmentService.LabelPNG(id, h.labelQRSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func paramUint(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("invalid %s", name)
	}
	return uint(value), nil
}
