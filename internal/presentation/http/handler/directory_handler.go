package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// DirectoryHandler handles storage location and delivery partner requests
type DirectoryHandler struct {
	directoryService *service.DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// CreateLocation handles storage location creation
func (h *DirectoryHandler) CreateLocation(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	location, err := h.directoryService.CreateLocation(c.Request.Context(), *shopID, &service.CreateLocationInput{
		FloorName:   req.FloorName,
		RackNumber:  req.RackNumber,
		ShelfNumber: req.ShelfNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Location created successfully", location)
}

// ListLocations handles listing storage locations
func (h *DirectoryHandler) ListLocations(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	locations, err := h.directoryService.ListLocations(c.Request.Context(), *shopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Locations retrieved successfully", locations)
}

// DeleteLocation handles storage location deletion
func (h *DirectoryHandler) DeleteLocation(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	locationID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.directoryService.DeleteLocation(c.Request.Context(), *shopID, locationID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Location deleted successfully", nil)
}

// CreatePartner handles delivery partner creation
func (h *DirectoryHandler) CreatePartner(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	partner, err := h.directoryService.CreatePartner(c.Request.Context(), *shopID, &service.CreatePartnerInput{
		Name:          req.Name,
		Phone:         req.Phone,
		VehicleNumber: req.VehicleNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Delivery partner created successfully", partner)
}

// ListPartners handles listing delivery partners
func (h *DirectoryHandler) ListPartners(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	partners, err := h.directoryService.ListPartners(c.Request.Context(), *shopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery partners retrieved successfully", partners)
}

// DeletePartner handles delivery partner deletion
func (h *DirectoryHandler) DeletePartner(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	partnerID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid partner ID")
		return
	}

	if err := h.directoryService.DeletePartner(c.Request.Context(), *shopID, partnerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery partner deleted successfully", nil)
}
