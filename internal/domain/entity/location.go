package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a physical storage slot (floor/rack/shelf) an item can sit in.
type Location struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID `gorm:"type:uuid;not null;index" json:"shop_id"`
	FloorName   string    `gorm:"size:100" json:"floor_name"`
	RackNumber  string    `gorm:"size:50" json:"rack_number"`
	ShelfNumber string    `gorm:"size:50" json:"shelf_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new location
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
