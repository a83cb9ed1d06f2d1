package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order is a B2B order header. The invoice link is filled at dispatch, which
// is the only transition out of pending that touches stock or the ledger.
type Order struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ShopID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"shop_id"`
	RetailerID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"retailer_id"`
	InvoiceID      *uuid.UUID         `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	OrderNumber    string             `gorm:"size:100;uniqueIndex;not null" json:"order_number"`
	Status         enum.OrderStatus   `gorm:"size:20;default:pending;index" json:"status"`
	DeliveryType   *enum.DeliveryType `gorm:"size:20" json:"delivery_type,omitempty"`
	DriverID       *uuid.UUID         `gorm:"type:uuid" json:"driver_id,omitempty"`
	DriverName     *string            `gorm:"size:255" json:"driver_name,omitempty"`
	VehicleDetails *string            `gorm:"size:255" json:"vehicle_details,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relationships
	Shop     Shop        `gorm:"foreignKey:ShopID" json:"-"`
	Retailer User        `gorm:"foreignKey:RetailerID" json:"retailer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line on a B2B order. UnitPrice is snapshotted at order
// placement; dispatch and returns always settle at this price, never the
// item's current price.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	RequestedQty int             `gorm:"not null" json:"requested_qty"`
	FulfilledQty int             `gorm:"default:0" json:"fulfilled_qty"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
	Item  *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
