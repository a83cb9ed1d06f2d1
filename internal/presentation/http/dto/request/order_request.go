package request

import "github.com/google/uuid"

// OrderLineRequest is one requested line on a new order
type OrderLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest represents a retailer's order
type PlaceOrderRequest struct {
	Items []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// DispatchLineRequest sets the fulfilled quantity for one order line
type DispatchLineRequest struct {
	ItemID       uuid.UUID `json:"item_id" binding:"required"`
	FulfilledQty int       `json:"fulfilled_qty"`
}

// DispatchOrderRequest represents how an order leaves the shop
type DispatchOrderRequest struct {
	Lines          []DispatchLineRequest `json:"lines" binding:"required,min=1,dive"`
	DeliveryType   string                `json:"delivery_type" binding:"required"`
	PartnerID      *uuid.UUID            `json:"partner_id"`
	DriverName     *string               `json:"driver_name"`
	VehicleDetails *string               `json:"vehicle_details"`
}

// CreateReturnRequest represents a retailer's request to send goods back
type CreateReturnRequest struct {
	OrderID  uuid.UUID `json:"order_id" binding:"required"`
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
	Reason   string    `json:"reason" binding:"required,max=255"`
}

// ProcessReturnRequest decides a pending return request
type ProcessReturnRequest struct {
	Approve bool `json:"approve"`
	Restock bool `json:"restock"`
}
