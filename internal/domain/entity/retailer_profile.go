package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// RetailerProfile is the credit account attached to a retailer user.
// CurrentBalance is signed: positive means the customer owes the shop. It must
// always equal the sum of the customer's signed ledger entries; every write
// goes through the ledger posting path under a row lock.
type RetailerProfile struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	ShopID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerType     enum.CustomerType `gorm:"size:20;default:b2b" json:"customer_type"`
	RetailerShopName *string           `gorm:"size:255" json:"retailer_shop_name,omitempty"`
	GSTNumber        *string           `gorm:"size:50;column:gst_number" json:"gst_number,omitempty"`
	Address          *string           `gorm:"type:text" json:"address,omitempty"`
	CreditLimit      decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"credit_limit"`
	CurrentBalance   decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"current_balance"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new profile
func (p *RetailerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RetailerProfile model
func (RetailerProfile) TableName() string {
	return "retailer_profiles"
}
