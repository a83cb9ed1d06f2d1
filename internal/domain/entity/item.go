package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a shop-scoped stock keeping unit. StockQuantity never goes
// negative: the only write paths are the stock repository's guarded deduct
// and restore operations.
type Item struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	SubcategoryID    *uuid.UUID      `gorm:"type:uuid;index" json:"subcategory_id,omitempty"`
	LocationID       *uuid.UUID      `gorm:"type:uuid;index" json:"location_id,omitempty"`
	ItemName         string          `gorm:"size:255;not null" json:"item_name"`
	PartNumber       *string         `gorm:"size:100" json:"part_number,omitempty"`
	CompatibleModels *string         `gorm:"type:text" json:"compatible_models,omitempty"`
	PurchasePrice    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"purchase_price"`
	SellingPrice     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"selling_price"`
	StockQuantity    int             `gorm:"default:0" json:"stock_quantity"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Shop        Shop      `gorm:"foreignKey:ShopID" json:"-"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Category `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Location    *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
