package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Category is a node in the two-level category tree (main -> sub).
type Category struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	ParentID  *uuid.UUID        `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Type      enum.CategoryType `gorm:"size:10;default:main" json:"type"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relationships
	Shop          Shop       `gorm:"foreignKey:ShopID" json:"-"`
	Subcategories []Category `gorm:"foreignKey:ParentID" json:"subcategories,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
