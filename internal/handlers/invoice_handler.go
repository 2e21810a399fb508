package handlers

import (
	"net/http"
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/services"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService services.InvoiceService
}

func NewInvoiceHandler(invoiceService services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req struct {
		ClientID    uint   `json:"client_id" binding:"required"`
		PeriodStart string `json:"period_start" binding:"required"` // YYYY-MM-DD
		PeriodEnd   string `json:"period_end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		respondError(c, apperrors.Validation("period_start must be YYYY-MM-DD"))
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		respondError(c, apperrors.Validation("period_end must be YYYY-MM-DD"))
		return
	}
	// Inclusive range: bill through the end of the last day.
	periodEnd = periodEnd.Add(24*time.Hour - time.Nanosecond)

	session := currentSession(c)
	invoice, err := h.invoiceService.GenerateInvoice(req.ClientID, periodStart, periodEnd, session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoice_id":     invoice.ID,
		"invoice_number": invoice.InvoiceNumber,
		"subtotal":       round2(invoice.Subtotal),
		"taxes":          round2(invoice.Taxes),
		"total":          round2(invoice.Total),
		"balance":        round2(invoice.Balance),
	})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	invoice, err := h.invoiceService.GetInvoice(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, invoice.ClientID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Items(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	invoice, err := h.invoiceService.GetInvoice(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, invoice.ClientID); err != nil {
		respondError(c, err)
		return
	}
	items, err := h.invoiceService.GetItems(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InvoiceHandler) ListByClient(c *gin.Context) {
	clientID, err := paramUint(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authorizeClient(c, clientID); err != nil {
		respondError(c, err)
		return
	}
	invoices, err := h.invoiceService.ListByClient(clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Adjust(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var adjustment services.InvoiceAdjustment
	if err := c.ShouldBindJSON(&adjustment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session := currentSession(c)
	invoice, err := h.invoiceService.AdjustInvoice(id, session.UserID, adjustment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Status models.InvoiceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	invoice, err := h.invoiceService.SetStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	invoice, err := h.invoiceService.RecordPayment(id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"invoice_number": invoice.InvoiceNumber,
		"amount_paid":    round2(invoice.AmountPaid),
		"balance":        round2(invoice.Balance),
		"status":         invoice.Status,
	})
}
