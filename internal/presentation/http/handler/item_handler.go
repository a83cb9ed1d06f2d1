package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// ItemHandler handles catalog item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create handles item creation
func (h *ItemHandler) Create(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), *shopID, &service.CreateItemInput{
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		LocationID:       req.LocationID,
		ItemName:         req.ItemName,
		PartNumber:       req.PartNumber,
		CompatibleModels: req.CompatibleModels,
		PurchasePrice:    req.PurchasePrice,
		SellingPrice:     req.SellingPrice,
		StockQuantity:    req.StockQuantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// List handles listing items with search and filters
func (h *ItemHandler) List(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.ItemFilterParams{
		Pagination: ParsePagination(c),
		Search:     c.Query("search"),
		InStock:    c.Query("in_stock") == "true",
	}
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			params.CategoryID = &categoryID
		}
	}

	result, err := h.itemService.ListItems(c.Request.Context(), *shopID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Get handles fetching one item
func (h *ItemHandler) Get(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), *shopID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Update handles item updates
func (h *ItemHandler) Update(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), *shopID, itemID, &service.UpdateItemInput{
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		LocationID:       req.LocationID,
		ItemName:         req.ItemName,
		PartNumber:       req.PartNumber,
		CompatibleModels: req.CompatibleModels,
		PurchasePrice:    req.PurchasePrice,
		SellingPrice:     req.SellingPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles item deletion
func (h *ItemHandler) Delete(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), *shopID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}
