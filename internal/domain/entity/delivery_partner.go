package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryPartner is an external driver a shop can assign to dispatches.
type DeliveryPartner struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Phone         string    `gorm:"size:50;not null" json:"phone"`
	VehicleNumber *string   `gorm:"size:100" json:"vehicle_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new delivery partner
func (p *DeliveryPartner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DeliveryPartner model
func (DeliveryPartner) TableName() string {
	return "delivery_partners"
}
