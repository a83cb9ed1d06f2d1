package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is the scope root: every item, customer, invoice, order and ledger
// entry belongs to exactly one shop.
type Shop struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	Status    string    `gorm:"size:20;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new shop
func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}
