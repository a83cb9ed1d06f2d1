package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// LedgerEntry is one immutable line in a customer's running ledger. Entries
// are append-only: corrections are new offsetting entries, never edits.
// BalanceAfter snapshots the customer's balance immediately after this entry
// was applied, so entries within one operation must be posted in causal order.
type LedgerEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	EntryType    enum.EntryType  `gorm:"size:10;not null" json:"entry_type"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description  string          `gorm:"size:255" json:"description"`
	InvoiceID    *uuid.UUID      `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`
	EntryDate    time.Time       `gorm:"not null" json:"entry_date"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relationships
	Shop     Shop `gorm:"foreignKey:ShopID" json:"-"`
	Customer User `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Signed returns the entry amount with its ledger sign applied: positive for
// debit, negative for credit.
func (e *LedgerEntry) Signed() decimal.Decimal {
	if e.EntryType == enum.EntryTypeCredit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
