package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	domainRepo "github.com/sparetrack/sparetrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	// Line items ride along via the association.
	return conn(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Preload("Items").
		Preload("Customer").
		First(&invoice, "id = ? AND shop_id = ?", id, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, shopID uuid.UUID, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := conn(ctx, r.db).Model(&entity.Invoice{}).Where("shop_id = ?", shopID)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("invoice_number LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	// SQLite does not enforce the CASCADE constraint GORM declares on the
	// association, so lines are removed explicitly.
	if err := db.Delete(&entity.InvoiceItem{}, "invoice_id = ?", id).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Invoice{}, "id = ?", id).Error
}
