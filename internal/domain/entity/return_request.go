package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ReturnRequest is one retailer request to return quantity against one
// (order, item) pair. Approval posts a credit ledger entry and links it here.
type ReturnRequest struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	RetailerID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"retailer_id"`
	OrderID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity      int               `gorm:"not null" json:"quantity"`
	Reason        string            `gorm:"size:255;not null" json:"reason"`
	Status        enum.ReturnStatus `gorm:"size:20;default:pending;index" json:"status"`
	LedgerEntryID *uuid.UUID        `gorm:"type:uuid" json:"ledger_entry_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Relationships
	Shop     Shop  `gorm:"foreignKey:ShopID" json:"-"`
	Retailer User  `gorm:"foreignKey:RetailerID" json:"retailer,omitempty"`
	Order    Order `gorm:"foreignKey:OrderID" json:"-"`
	Item     *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new return request
func (r *ReturnRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnRequest model
func (ReturnRequest) TableName() string {
	return "return_requests"
}
