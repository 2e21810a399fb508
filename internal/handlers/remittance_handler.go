package handlers

import (
	"net/http"

	"pathxpress/internal/models"
	"pathxpress/internal/services"

	"github.com/gin-gonic/gin"
)

type RemittanceHandler struct {
	remittanceService services.RemittanceService
}

func NewRemittanceHandler(remittanceService services.RemittanceService) *RemittanceHandler {
	return &RemittanceHandler{remittanceService: remittanceService}
}

func (h *RemittanceHandler) Create(c *gin.Context) {
	var input services.CreateRemittanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	input.CreatedBy = currentSession(c).UserID

	remittance, err := h.remittanceService.CreateRemittance(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"remittance_id":     remittance.ID,
		"remittance_number": remittance.RemittanceNumber,
		"gross_amount":      round2(remittance.GrossAmount),
		"fee_amount":        round2(remittance.FeeAmount),
		"total_amount":      round2(remittance.TotalAmount),
		"shipment_count":    remittance.ShipmentCount,
		"status":            remittance.Status,
	})
}

func (h *RemittanceHandler) Get(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	remittance, err := h.remittanceService.GetRemittance(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, remittance.ClientID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, remittance)
}

func (h *RemittanceHandler) Items(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	remittance, err := h.remittanceService.GetRemittance(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, remittance.ClientID); err != nil {
		respondError(c, err)
		return
	}
	items, err := h.remittanceService.GetItems(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RemittanceHandler) ListByClient(c *gin.Context) {
	clientID, err := paramUint(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, clientID); err != nil {
		respondError(c, err)
		return
	}
	remittances, err := h.remittanceService.ListByClient(clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, remittances)
}

func (h *RemittanceHandler) AdvanceStatus(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Status models.RemittanceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	remittance, err := h.remittanceService.AdvanceStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, remittance)
}

// ListCollectedRecords shows the client's COD money waiting to be
// remitted; admins build remittance batches from this view.
func (h *RemittanceHandler) ListCollectedRecords(c *gin.Context) {
	clientID, err := paramUint(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, clientID); err != nil {
		respondError(c, err)
		return
	}
	records, err := h.remittanceService.ListCollectedRecords(clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
