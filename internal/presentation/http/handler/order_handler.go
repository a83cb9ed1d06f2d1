package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// OrderHandler handles B2B order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Catalog lists the shop's items for the authenticated retailer
func (h *OrderHandler) Catalog(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.ItemFilterParams{
		Pagination: ParsePagination(c),
		Search:     c.Query("search"),
	}
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			params.CategoryID = &categoryID
		}
	}

	result, err := h.orderService.Catalog(c.Request.Context(), *shopID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	catalog := pagination.NewPaginatedResult(response.NewCatalogItems(result.Items), result.Pagination)
	response.SuccessWithPagination(c, 200, "Catalog retrieved successfully", catalog)
}

// Place handles a retailer placing an order
func (h *OrderHandler) Place(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.PlaceOrderInput{RetailerID: *userID}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.OrderLineInput{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed successfully", order)
}

// MyOrders lists the authenticated retailer's orders
func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.orderService.MyOrders(c.Request.Context(), *userID, ParsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// ListIncoming lists the shop's incoming orders
func (h *OrderHandler) ListIncoming(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.orderService.ListIncoming(c.Request.Context(), *shopID, ParsePagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles fetching one order
func (h *OrderHandler) Get(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), *shopID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Dispatch handles dispatching a pending order
func (h *OrderHandler) Dispatch(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.DispatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.DispatchOrderInput{
		DeliveryType:   enum.DeliveryType(req.DeliveryType),
		PartnerID:      req.PartnerID,
		DriverName:     req.DriverName,
		VehicleDetails: req.VehicleDetails,
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.DispatchLineInput{
			ItemID:       line.ItemID,
			FulfilledQty: line.FulfilledQty,
		})
	}

	order, err := h.orderService.DispatchOrder(c.Request.Context(), *shopID, orderID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order dispatched successfully", order)
}

// MarkDelivered moves a dispatched order to delivered
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.MarkDelivered(c.Request.Context(), *shopID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order marked as delivered", order)
}

// Cancel cancels a pending order
func (h *OrderHandler) Cancel(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), *shopID, orderID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}
