package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
)

// LedgerRepository appends to and reads the immutable customer ledger.
// There is deliberately no Update or Delete: corrections are offsetting
// entries posted through the ledger service.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	ListByCustomer(ctx context.Context, shopID, customerID uuid.UUID) ([]entity.LedgerEntry, error)
	// SumByCustomer returns sum(debits) - sum(credits) for the customer,
	// used to audit the running balance invariant.
	SumByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}
