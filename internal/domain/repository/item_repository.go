package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/pkg/pagination"
)

// ItemFilterParams filters item listings.
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	InStock    bool
}

// ItemRepository manages inventory items. DeductStock and RestoreStock are
// the only stock mutation paths; both are expected to run inside the
// transaction carried in ctx when called from the billing, dispatch or
// return engines.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
	List(ctx context.Context, shopID uuid.UUID, params *ItemFilterParams) ([]entity.Item, int64, error)

	// DeductStock locks the item row, fails with ErrInsufficientStock if
	// stock_quantity < qty, otherwise decrements and returns the item as it
	// was at the moment of deduction (the price snapshot the invoice uses).
	DeductStock(ctx context.Context, shopID, id uuid.UUID, qty int) (*entity.Item, error)
	// RestoreStock adds qty back and reports whether an item row was
	// updated. A missing item is not an error: restoration is best-effort
	// when the underlying item was deleted, and callers log the miss.
	RestoreStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)

	// CountReferences reports how many invoice and order lines reference the
	// item, for the restrict-on-delete guard.
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
	// CountInCategory counts items attached to a category as main or sub.
	CountInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// MoveCategory reassigns every item in fromID (main or sub) to the given
	// category/subcategory pair.
	MoveCategory(ctx context.Context, fromID, toCategoryID uuid.UUID, toSubcategoryID *uuid.UUID) error
	// DetachLocation clears the location reference on every item stored there.
	DetachLocation(ctx context.Context, locationID uuid.UUID) error
}
