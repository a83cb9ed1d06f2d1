package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// ReturnHandler handles return request HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Create handles a retailer raising a return request
func (h *ReturnHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.returnService.CreateReturn(c.Request.Context(), &service.CreateReturnInput{
		RetailerID: *userID,
		OrderID:    req.OrderID,
		ItemID:     req.ItemID,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return request created successfully", result)
}

// List lists the shop's return requests
func (h *ReturnHandler) List(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.returnService.ListReturns(c.Request.Context(), *shopID, ParsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Return requests retrieved successfully", result)
}

// Process approves or rejects a pending return request
func (h *ReturnHandler) Process(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	returnID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return request ID")
		return
	}

	var req request.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.returnService.ProcessReturn(c.Request.Context(), *shopID, returnID, &service.ProcessReturnInput{
		Approve: req.Approve,
		Restock: req.Restock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return request processed successfully", result)
}
