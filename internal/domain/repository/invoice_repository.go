package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// InvoiceFilterParams filters invoice listings.
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// InvoiceRepository manages billing documents and their line items.
type InvoiceRepository interface {
	// Create persists the invoice together with its line items.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, shopID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// Delete hard-deletes the invoice and its line items.
	Delete(ctx context.Context, id uuid.UUID) error
}
