package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	return conn(ctx, r.db).Create(entry).Error
}

func (r *ledgerRepository) ListByCustomer(ctx context.Context, shopID, customerID uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := conn(ctx, r.db).
		Where("shop_id = ? AND customer_id = ?", shopID, customerID).
		Order("entry_date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) SumByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var entries []entity.LedgerEntry
	err := conn(ctx, r.db).
		Select("entry_type", "amount").
		Where("customer_id = ?", customerID).
		Find(&entries).Error
	if err != nil {
		return decimal.Zero, err
	}

	// Summed in Go rather than SQL so decimal arithmetic stays exact across
	// database drivers.
	sum := decimal.Zero
	for i := range entries {
		sum = sum.Add(entries[i].Signed())
	}
	return sum, nil
}
