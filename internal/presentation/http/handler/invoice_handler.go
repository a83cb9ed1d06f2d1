package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles billing HTTP requests
type InvoiceHandler struct {
	billingService *service.BillingService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(billingService *service.BillingService) *InvoiceHandler {
	return &InvoiceHandler{billingService: billingService}
}

// Create handles invoice creation at the counter
func (h *InvoiceHandler) Create(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateInvoiceInput{
		Customer: service.CustomerRef{
			CustomerID: req.CustomerID,
			Name:       req.CustomerName,
			Phone:      req.CustomerPhone,
		},
		Discount:    req.Discount,
		PaidAmount:  req.PaidAmount,
		PaymentMode: enum.PaymentMode(req.PaymentMode),
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.InvoiceLineInput{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	invoice, err := h.billingService.CreateInvoice(c.Request.Context(), *shopID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: ParsePagination(c),
		Search:     c.Query("search"),
	}

	result, err := h.billingService.ListInvoices(c.Request.Context(), *shopID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles fetching one invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.GetInvoice(c.Request.Context(), *shopID, invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Cancel handles invoice cancellation
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.billingService.CancelInvoice(c.Request.Context(), *shopID, invoiceID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice cancelled successfully", nil)
}
