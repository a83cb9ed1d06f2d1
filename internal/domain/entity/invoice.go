package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is a billing document. CustomerID is nil only for walk-ins billed
// without a phone number, which the boundary rejects; the cached name/phone
// columns survive customer deletion. Line items snapshot name and price at the
// moment of sale and are never re-derived from the current item state.
type Invoice struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  *string          `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone *string          `gorm:"size:50" json:"customer_phone,omitempty"`
	InvoiceNumber string           `gorm:"size:100;uniqueIndex;not null" json:"invoice_number"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Discount      decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"discount"`
	GrandTotal    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"grand_total"`
	PaidAmount    decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"paid_amount"`
	PaymentMode   enum.PaymentMode `gorm:"size:20;default:cash" json:"payment_mode"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Relationships
	Shop     Shop          `gorm:"foreignKey:ShopID" json:"-"`
	Customer *User         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a line on an invoice, frozen at billing time.
type InvoiceItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName   string          `gorm:"size:255;not null" json:"item_name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
