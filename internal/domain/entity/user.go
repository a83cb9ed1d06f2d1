package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is any account that can log in or be billed: the shop master, staff,
// and retailer/walk-in customers all live here, separated by role.
type User struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Phone     string        `gorm:"size:50;uniqueIndex;not null" json:"phone"`
	Email     *string       `gorm:"size:255" json:"email,omitempty"`
	Password  string        `gorm:"size:255;not null" json:"-"`
	Role      enum.UserRole `gorm:"size:20;not null;index" json:"role"`
	Status    string        `gorm:"size:20;default:active" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relationships
	Shop            Shop             `gorm:"foreignKey:ShopID" json:"-"`
	RetailerProfile *RetailerProfile `gorm:"foreignKey:UserID" json:"retailer_profile,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
