package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetShopID extracts the shop ID from the Gin context
func GetShopID(c *gin.Context) *uuid.UUID {
	shopIDVal, exists := c.Get("shop_id")
	if !exists {
		return nil
	}
	shopID, ok := shopIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &shopID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, ok := roleVal.(string)
	if !ok {
		return ""
	}
	return enum.UserRole(role)
}

// ParseUUIDParam parses a UUID path parameter
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ParsePagination reads page/per_page query parameters
func ParsePagination(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}
