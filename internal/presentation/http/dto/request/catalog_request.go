package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a new catalog item
type CreateItemRequest struct {
	CategoryID       uuid.UUID       `json:"category_id" binding:"required"`
	SubcategoryID    *uuid.UUID      `json:"subcategory_id"`
	LocationID       *uuid.UUID      `json:"location_id"`
	ItemName         string          `json:"item_name" binding:"required,max=255"`
	PartNumber       *string         `json:"part_number"`
	CompatibleModels *string         `json:"compatible_models"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	StockQuantity    int             `json:"stock_quantity"`
}

// UpdateItemRequest updates item fields; absent fields are left unchanged
type UpdateItemRequest struct {
	CategoryID       *uuid.UUID       `json:"category_id"`
	SubcategoryID    *uuid.UUID       `json:"subcategory_id"`
	LocationID       *uuid.UUID       `json:"location_id"`
	ItemName         *string          `json:"item_name"`
	PartNumber       *string          `json:"part_number"`
	CompatibleModels *string          `json:"compatible_models"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price"`
	SellingPrice     *decimal.Decimal `json:"selling_price"`
}

// CreateCategoryRequest represents a new category node
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,max=255"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// RenameCategoryRequest renames a category
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// MoveAndDeleteCategoryRequest relocates a category's contents before removal
type MoveAndDeleteCategoryRequest struct {
	TargetCategoryID    uuid.UUID  `json:"target_category_id" binding:"required"`
	TargetSubcategoryID *uuid.UUID `json:"target_subcategory_id"`
}

// CreateLocationRequest represents a new storage location
type CreateLocationRequest struct {
	FloorName   string `json:"floor_name"`
	RackNumber  string `json:"rack_number"`
	ShelfNumber string `json:"shelf_number"`
}

// CreatePartnerRequest represents a new delivery partner
type CreatePartnerRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	Phone         string  `json:"phone" binding:"required,max=50"`
	VehicleNumber *string `json:"vehicle_number"`
}
