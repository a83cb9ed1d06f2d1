package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/request"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create handles category creation
func (h *CategoryHandler) Create(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), *shopID, &service.CreateCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// List handles listing the category tree
func (h *CategoryHandler) List(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), *shopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Rename handles renaming a category
func (h *CategoryHandler) Rename(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categoryID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.RenameCategory(c.Request.Context(), *shopID, categoryID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// Delete handles deletion of an empty category
func (h *CategoryHandler) Delete(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categoryID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), *shopID, categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}

// MoveAndDelete relocates a category's contents, then deletes it
func (h *CategoryHandler) MoveAndDelete(c *gin.Context) {
	shopID := GetShopID(c)
	if shopID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categoryID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.MoveAndDeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.categoryService.MoveAndDelete(c.Request.Context(), *shopID, categoryID, &service.MoveAndDeleteInput{
		TargetCategoryID:    req.TargetCategoryID,
		TargetSubcategoryID: req.TargetSubcategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category contents moved and category deleted", nil)
}
