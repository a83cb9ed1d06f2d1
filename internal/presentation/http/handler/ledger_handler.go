package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// LedgerHandler handles customer ledger HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// GetCustomerLedger returns a customer's statement
func (h *LedgerHandler) GetCustomerLedger(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	customerID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	ledger, err := h.ledgerService.GetCustomerLedger(c.Request.Context(), *shopID, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger retrieved successfully", ledger)
}

// RecordPayment posts a payment credit to a customer's ledger
func (h *LedgerHandler) RecordPayment(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.ledgerService.RecordPayment(c.Request.Context(), *shopID, req.CustomerID, req.Amount, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", entry)
}
