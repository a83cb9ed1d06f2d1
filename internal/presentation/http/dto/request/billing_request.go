package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one cart line on a billing request
type InvoiceLineRequest struct {
	ItemID    uuid.UUID        `json:"item_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest represents a billing request from the counter.
// Either customer_id or customer_phone must be supplied.
type CreateInvoiceRequest struct {
	CustomerID    *uuid.UUID           `json:"customer_id"`
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
	Items         []InvoiceLineRequest `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal      `json:"discount"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	PaymentMode   string               `json:"payment_mode"`
}

// RecordPaymentRequest records money received outside an invoice
type RecordPaymentRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}
