package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// UserHandler handles shop user management HTTP requests
type UserHandler struct {
	shopUserService *service.ShopUserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(shopUserService *service.ShopUserService) *UserHandler {
	return &UserHandler{shopUserService: shopUserService}
}

// CreateStaff handles staff account creation
func (h *UserHandler) CreateStaff(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.shopUserService.CreateStaff(c.Request.Context(), *shopID, &service.CreateStaffInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff account created successfully", user)
}

// ListStaff handles listing staff accounts
func (h *UserHandler) ListStaff(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	users, err := h.shopUserService.ListStaff(c.Request.Context(), *shopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", users)
}

// CreateRetailer handles retailer onboarding
func (h *UserHandler) CreateRetailer(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateRetailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.shopUserService.CreateRetailer(c.Request.Context(), *shopID, &service.CreateRetailerInput{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		Password:         req.Password,
		RetailerShopName: req.RetailerShopName,
		GSTNumber:        req.GSTNumber,
		Address:          req.Address,
		CreditLimit:      req.CreditLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Retailer onboarded successfully", user)
}

// ListRetailers handles listing retailer customers
func (h *UserHandler) ListRetailers(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	users, err := h.shopUserService.ListRetailers(c.Request.Context(), *shopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Retailers retrieved successfully", users)
}

// GetUser handles fetching one shop user
func (h *UserHandler) GetUser(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	userID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.shopUserService.GetUser(c.Request.Context(), *shopID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}

// UpdateRetailer handles retailer profile updates
func (h *UserHandler) UpdateRetailer(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	userID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateRetailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.shopUserService.UpdateRetailer(c.Request.Context(), *shopID, userID, &service.UpdateRetailerInput{
		Name:             req.Name,
		Email:            req.Email,
		RetailerShopName: req.RetailerShopName,
		GSTNumber:        req.GSTNumber,
		Address:          req.Address,
		CreditLimit:      req.CreditLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Retailer updated successfully", user)
}

// Deactivate disables a shop user's login
func (h *UserHandler) Deactivate(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	userID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.shopUserService.DeactivateUser(c.Request.Context(), *shopID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deactivated successfully", nil)
}
