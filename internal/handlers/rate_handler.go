package handlers

import (
	"net/http"

	"pathxpress/internal/models"
	"pathxpress/internal/services"

	"github.com/gin-gonic/gin"
)

type RateHandler struct {
	rateService services.RateService
}

func NewRateHandler(rateService services.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

func (h *RateHandler) CalculateRate(c *gin.Context) {
	var req struct {
		ClientID    uint               `json:"client_id" binding:"required"`
		ServiceType models.ServiceType `json:"service_type" binding:"required"`
		Weight      float64            `json:"weight"`
		Length      float64            `json:"length"`
		Width       float64            `json:"width"`
		Height      float64            `json:"height"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := authorizeClient(c, req.ClientID); err != nil {
		respondError(c, err)
		return
	}

	quote, err := h.rateService.CalculateRate(req.ClientID, req.ServiceType,
		req.Weight, req.Length, req.Width, req.Height)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_rate":         round2(quote.TotalRate),
		"chargeable_weight":  quote.ChargeableWeight,
		"base_rate":          round2(quote.BaseRate),
		"additional_charges": round2(quote.AdditionalCharges),
		"source":             quote.Source,
	})
}

func (h *RateHandler) CalculateCODFee(c *gin.Context) {
	var req struct {
		CODAmount float64 `json:"cod_amount"`
		ClientID  *uint   `json:"client_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.ClientID != nil {
		if err := authorizeClient(c, *req.ClientID); err != nil {
			respondError(c, err)
			return
		}
	}

	fee, err := h.rateService.CalculateCODFee(req.CODAmount, req.ClientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee": round2(fee)})
}
